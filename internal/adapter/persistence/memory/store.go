// Package memory keeps orders, repair jobs and sequence counters in process
// memory. It honours the same uniqueness and version contracts as the
// DynamoDB repositories and backs STORE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sync"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"
)

// documents is a mutex-guarded map keyed by identifier. Values are cloned on
// the way in and out so callers never share slices with the store.
type documents[T any] struct {
	mu     sync.RWMutex
	items  map[string]T
	header func(T) entities.Document
	clone  func(T) T
}

func newDocuments[T any](header func(T) entities.Document, clone func(T) T) *documents[T] {
	return &documents[T]{items: map[string]T{}, header: header, clone: clone}
}

func (s *documents[T]) create(ctx context.Context, v T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	id := s.header(v).Identifier

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return zero, interfaces.ErrDuplicateIdentifier
	}
	s.items[id] = s.clone(v)
	return s.clone(v), nil
}

func (s *documents[T]) get(ctx context.Context, identifier string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[identifier]
	if !ok {
		return zero, nil
	}
	return s.clone(v), nil
}

func (s *documents[T]) update(ctx context.Context, v T, expectedVersion int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	id := s.header(v).Identifier

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.items[id]
	if !ok || s.header(current).Version != expectedVersion {
		return zero, interfaces.ErrStaleVersion
	}
	s.items[id] = s.clone(v)
	return s.clone(v), nil
}

func (s *documents[T]) maxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prefix, err := lifecycle.PrefixFor(key.Kind)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var highest int64
	for id := range s.items {
		parsed, err := lifecycle.ParseIdentifier(id)
		if err != nil || parsed.Prefix != prefix || parsed.Year2 != key.Year2 || parsed.Month2 != key.Month2 {
			continue
		}
		if parsed.Sequence > highest {
			highest = parsed.Sequence
		}
	}
	return highest, nil
}

// OrderStore is the in-memory IOrderRepository.
type OrderStore struct {
	docs *documents[entities.Order]
}

var _ interfaces.IOrderRepository = (*OrderStore)(nil)

func NewOrderStore() *OrderStore {
	return &OrderStore{docs: newDocuments(
		func(o entities.Order) entities.Document { return o.Document },
		entities.Order.Clone,
	)}
}

func (s *OrderStore) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	return s.docs.create(ctx, o)
}

func (s *OrderStore) GetByIdentifier(ctx context.Context, identifier string) (entities.Order, error) {
	return s.docs.get(ctx, identifier)
}

func (s *OrderStore) Update(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error) {
	return s.docs.update(ctx, o, expectedVersion)
}

func (s *OrderStore) MaxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	return s.docs.maxSequence(ctx, key)
}

// RepairJobStore is the in-memory IRepairJobRepository.
type RepairJobStore struct {
	docs *documents[entities.RepairJob]
}

var _ interfaces.IRepairJobRepository = (*RepairJobStore)(nil)

func NewRepairJobStore() *RepairJobStore {
	return &RepairJobStore{docs: newDocuments(
		func(r entities.RepairJob) entities.Document { return r.Document },
		entities.RepairJob.Clone,
	)}
}

func (s *RepairJobStore) Create(ctx context.Context, r entities.RepairJob) (entities.RepairJob, error) {
	return s.docs.create(ctx, r)
}

func (s *RepairJobStore) GetByIdentifier(ctx context.Context, identifier string) (entities.RepairJob, error) {
	return s.docs.get(ctx, identifier)
}

func (s *RepairJobStore) Update(ctx context.Context, r entities.RepairJob, expectedVersion int64) (entities.RepairJob, error) {
	return s.docs.update(ctx, r, expectedVersion)
}

func (s *RepairJobStore) MaxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	return s.docs.maxSequence(ctx, key)
}
