// Package redisstore allocates sequence numbers from Redis counters.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	counterPrefix = "seq:"
	seedPrefix    = "seq-seed:"
	seedLockTTL   = 5 * time.Second
)

// raiseTo lifts KEYS[1] to ARGV[1] when it is lower and returns the result.
var raiseTo = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if current < floor then
	redis.call('SET', KEYS[1], floor)
	return floor
end
return current
`)

// SequenceAllocator issues numbers with INCR on seq:<key>.
//
// A counter that comes back as 1 is treated as cold (first use of the month,
// or the cache was flushed). The first caller to see it takes a lock on
// seq-seed:<key>, asks the document store for the highest sequence already
// persisted and lifts the counter above it before taking its own number.
type SequenceAllocator struct {
	rdb    *redis.Client
	locker *redislock.Client
	floors map[entities.EntityKind]interfaces.ISequenceFloor
	log    logrus.FieldLogger
}

var _ interfaces.ISequenceAllocator = (*SequenceAllocator)(nil)

func NewSequenceAllocator(rdb *redis.Client, floors map[entities.EntityKind]interfaces.ISequenceFloor, log logrus.FieldLogger) *SequenceAllocator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SequenceAllocator{
		rdb:    rdb,
		locker: redislock.New(rdb),
		floors: floors,
		log:    log.WithFields(logrus.Fields{"module": "sequence", "layer": "redis"}),
	}
}

func (a *SequenceAllocator) Next(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	counter := counterPrefix + key.String()
	n, err := a.rdb.Incr(ctx, counter).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", counter, err)
	}
	if n != 1 {
		return n, nil
	}
	if err := a.seed(ctx, key, counter); err != nil {
		return 0, err
	}
	// The 1 we got may already be persisted; it is burned either way.
	n, err = a.rdb.Incr(ctx, counter).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", counter, err)
	}
	return n, nil
}

func (a *SequenceAllocator) seed(ctx context.Context, key lifecycle.SequenceKey, counter string) error {
	log := a.log.WithField("sequence_key", key.String())

	floor, ok := a.floors[key.Kind]
	if !ok || floor == nil {
		return nil
	}

	lock, err := a.locker.Obtain(ctx, seedPrefix+key.String(), seedLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(25*time.Millisecond), 20),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		// raiseTo is atomic; seeding twice only costs an extra floor query.
		log.Warn("could not obtain seed lock; seeding without it")
		lock = nil
	} else if err != nil {
		return fmt.Errorf("obtain seed lock: %w", err)
	}
	defer func() {
		if lock == nil {
			return
		}
		if releaseErr := lock.Release(ctx); releaseErr != nil && !errors.Is(releaseErr, redislock.ErrLockNotHeld) {
			log.WithError(releaseErr).Warn("seed lock release failed")
		}
	}()

	highest, err := floor.MaxSequence(ctx, key)
	if err != nil {
		return fmt.Errorf("read persisted floor: %w", err)
	}
	if highest < 1 {
		return nil
	}
	if _, err := raiseTo.Run(ctx, a.rdb, []string{counter}, highest).Int64(); err != nil {
		return fmt.Errorf("seed %s: %w", counter, err)
	}
	log.WithField("floor", highest).Info("sequence counter seeded from store")
	return nil
}
