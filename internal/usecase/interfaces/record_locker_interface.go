package interfaces

import (
	"context"
	"errors"
)

var ErrLockHeld = errors.New("record lock held by another caller")

// IRecordLocker grants exclusive work on one record at a time.
//
// TryLock never waits: it returns ErrLockHeld when key is already taken.
// The returned func releases the lock and is safe to call once.

type IRecordLocker interface {
	TryLock(ctx context.Context, key string) (release func(), err error)
}
