package memory

import (
	"context"
	"sync"

	"repairshop/internal/usecase/interfaces"
)

// RecordLocker holds record locks for a single process.
type RecordLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

var _ interfaces.IRecordLocker = (*RecordLocker)(nil)

func NewRecordLocker() *RecordLocker {
	return &RecordLocker{held: map[string]struct{}{}}
}

func (l *RecordLocker) TryLock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, interfaces.ErrLockHeld
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
