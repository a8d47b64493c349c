package redisstore

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type floorFunc func(ctx context.Context, key lifecycle.SequenceKey) (int64, error)

func (f floorFunc) MaxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	return f(ctx, key)
}

func fixedFloor(n int64) floorFunc {
	return func(context.Context, lifecycle.SequenceKey) (int64, error) { return n, nil }
}

var jan24 = lifecycle.SequenceKey{Kind: entities.EntityKindOrder, Year2: 24, Month2: 1}

func newAllocator(t *testing.T, floor interfaces.ISequenceFloor) (*SequenceAllocator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	floors := map[entities.EntityKind]interfaces.ISequenceFloor{entities.EntityKindOrder: floor}
	return NewSequenceAllocator(rdb, floors, log), mr
}

func TestSequenceAllocator_FreshMonth(t *testing.T) {
	a, mr := newAllocator(t, fixedFloor(0))

	for want := int64(2); want <= 4; want++ {
		got, err := a.Next(context.Background(), jan24)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	v, err := mr.Get("seq:order#2401")
	require.NoError(t, err)
	assert.Equal(t, "4", v)
}

func TestSequenceAllocator_SeedsFromStore(t *testing.T) {
	a, _ := newAllocator(t, fixedFloor(41))

	got, err := a.Next(context.Background(), jan24)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	got, err = a.Next(context.Background(), jan24)
	require.NoError(t, err)
	assert.Equal(t, int64(43), got)
}

func TestSequenceAllocator_ReseedsAfterFlush(t *testing.T) {
	var persisted int64
	a, mr := newAllocator(t, floorFunc(func(context.Context, lifecycle.SequenceKey) (int64, error) {
		return persisted, nil
	}))

	for i := 0; i < 3; i++ {
		n, err := a.Next(context.Background(), jan24)
		require.NoError(t, err)
		persisted = n
	}
	mr.FlushAll()

	got, err := a.Next(context.Background(), jan24)
	require.NoError(t, err)
	assert.Greater(t, got, persisted)
}

func TestSequenceAllocator_KeysAreIndependent(t *testing.T) {
	a, _ := newAllocator(t, fixedFloor(0))
	feb := lifecycle.SequenceKey{Kind: entities.EntityKindOrder, Year2: 24, Month2: 2}
	jobs := lifecycle.SequenceKey{Kind: entities.EntityKindRepairJob, Year2: 24, Month2: 1}

	_, err := a.Next(context.Background(), jan24)
	require.NoError(t, err)
	_, err = a.Next(context.Background(), jan24)
	require.NoError(t, err)

	got, err := a.Next(context.Background(), feb)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	// No floor is registered for repair jobs, so the cold 1 is burned only.
	got, err = a.Next(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestSequenceAllocator_FloorError(t *testing.T) {
	a, _ := newAllocator(t, floorFunc(func(context.Context, lifecycle.SequenceKey) (int64, error) {
		return 0, errors.New("store down")
	}))

	_, err := a.Next(context.Background(), jan24)
	assert.ErrorContains(t, err, "store down")
}

func TestSequenceAllocator_RedisDown(t *testing.T) {
	a, mr := newAllocator(t, fixedFloor(0))
	mr.Close()

	_, err := a.Next(context.Background(), jan24)
	assert.Error(t, err)
}

func TestSequenceAllocator_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	a, _ := newAllocator(t, fixedFloor(10))

	const n = 40
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got []int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := a.Next(context.Background(), jan24)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, got, n)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i := 1; i < len(got); i++ {
		assert.NotEqual(t, got[i-1], got[i], "duplicate sequence %d", got[i])
	}
}
