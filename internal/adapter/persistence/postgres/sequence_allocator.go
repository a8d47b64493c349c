// Package postgres allocates sequence numbers from a PostgreSQL counter table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createCountersSQL = `
		CREATE TABLE IF NOT EXISTS sequence_counters (
			sequence_key TEXT PRIMARY KEY,
			value        BIGINT NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	incrementSQL = `
		UPDATE sequence_counters
		SET value = value + 1, updated_at = NOW()
		WHERE sequence_key = $1
		RETURNING value`

	// A cold row starts right after the highest stored sequence ($2). The row
	// lock taken by ON CONFLICT serializes seeders racing on the same key.
	seedSQL = `
		INSERT INTO sequence_counters (sequence_key, value, updated_at)
		VALUES ($1, $2 + 1, NOW())
		ON CONFLICT (sequence_key)
		DO UPDATE SET value = GREATEST(sequence_counters.value, EXCLUDED.value - 1) + 1, updated_at = NOW()
		RETURNING value`
)

// Querier is the part of *pgxpool.Pool the allocator needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

type SequenceAllocator struct {
	db     Querier
	floors map[entities.EntityKind]interfaces.ISequenceFloor
}

var _ interfaces.ISequenceAllocator = (*SequenceAllocator)(nil)

// NewSequenceAllocator builds the allocator. floors report the highest
// sequence already stored per kind and seed counters that have no row yet.
func NewSequenceAllocator(db Querier, floors map[entities.EntityKind]interfaces.ISequenceFloor) *SequenceAllocator {
	return &SequenceAllocator{db: db, floors: floors}
}

// EnsureSchema creates the counter table when it does not exist.
func (a *SequenceAllocator) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, createCountersSQL); err != nil {
		return fmt.Errorf("create sequence_counters: %w", err)
	}
	return nil
}

func (a *SequenceAllocator) Next(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	var value int64
	err := a.db.QueryRow(ctx, incrementSQL, key.String()).Scan(&value)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}

	var floor int64
	if f, ok := a.floors[key.Kind]; ok && f != nil {
		if floor, err = f.MaxSequence(ctx, key); err != nil {
			return 0, fmt.Errorf("read sequence floor %s: %w", key, err)
		}
	}
	if err := a.db.QueryRow(ctx, seedSQL, key.String(), floor).Scan(&value); err != nil {
		return 0, fmt.Errorf("seed sequence %s: %w", key, err)
	}
	return value, nil
}
