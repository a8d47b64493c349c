package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairshop/internal/usecase/interfaces"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const recordLockPrefix = "lock:"

// RecordLocker takes record locks shared by every instance using the same
// Redis. A lock expires after ttl if its holder never releases it.
type RecordLocker struct {
	locker *redislock.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

var _ interfaces.IRecordLocker = (*RecordLocker)(nil)

func NewRecordLocker(rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *RecordLocker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RecordLocker{
		locker: redislock.New(rdb),
		ttl:    ttl,
		log:    log.WithFields(logrus.Fields{"module": "lock", "layer": "redis"}),
	}
}

func (l *RecordLocker) TryLock(ctx context.Context, key string) (func(), error) {
	name := recordLockPrefix + key
	lock, err := l.locker.Obtain(ctx, name, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, interfaces.ErrLockHeld
	}
	if err != nil {
		return nil, fmt.Errorf("obtain %s: %w", name, err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.WithError(err).WithField("lock", name).Warn("release failed; lock expires with its ttl")
		}
	}, nil
}
