package memory

import (
	"context"
	"sync"

	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"
)

// SequenceAllocator keeps one counter per sequence key behind a mutex.
type SequenceAllocator struct {
	mu       sync.Mutex
	counters map[lifecycle.SequenceKey]int64
}

var _ interfaces.ISequenceAllocator = (*SequenceAllocator)(nil)

func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{counters: map[lifecycle.SequenceKey]int64{}}
}

func (a *SequenceAllocator) Next(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters[key]++
	return a.counters[key], nil
}
