package interfaces

import (
	"context"
	"errors"

	"repairshop/internal/domain/entities"
)

var (
	// ErrDuplicateIdentifier is returned by Create when the identifier is
	// already taken. The engine reacts by allocating a new number.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrStaleVersion is returned by Update when the stored version no longer
	// matches the version the caller loaded.
	ErrStaleVersion = errors.New("stale document version")
)

// IOrderRepository abstracts persistence for Order.
//
// GetByIdentifier returns the zero Order (empty ID) when nothing is stored.
// Update persists o only if the stored version equals expectedVersion, and
// stores o.Version as the new one.

type IOrderRepository interface {
	ISequenceFloor
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByIdentifier(ctx context.Context, identifier string) (entities.Order, error)
	Update(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error)
}

// IRepairJobRepository abstracts persistence for RepairJob with the same
// contract as IOrderRepository.

type IRepairJobRepository interface {
	ISequenceFloor
	Create(ctx context.Context, r entities.RepairJob) (entities.RepairJob, error)
	GetByIdentifier(ctx context.Context, identifier string) (entities.RepairJob, error)
	Update(ctx context.Context, r entities.RepairJob, expectedVersion int64) (entities.RepairJob, error)
}
