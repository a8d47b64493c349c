package interfaces

import (
	"context"

	"repairshop/internal/domain/lifecycle"
)

// ISequenceAllocator hands out per-key sequence numbers.
//
// Contract:
//   - every call returns a number strictly greater than all numbers previously
//     returned for the same key, even under concurrent callers
//   - numbers may be skipped (a failed creation burns its number), never reused
//   - keys are independent; a new month starts again at 1

type ISequenceAllocator interface {
	Next(ctx context.Context, key lifecycle.SequenceKey) (int64, error)
}

// ISequenceFloor reports the highest sequence already persisted for a key.
// Allocators backed by a volatile counter use it to reseed after data loss.
type ISequenceFloor interface {
	MaxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error)
}
