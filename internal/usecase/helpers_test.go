package usecase

import (
	"io"
	"sync"
	"time"

	"repairshop/internal/adapter/persistence/memory"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newMemoryOrders(clock *fakeClock) (*OrderUseCase, *memory.OrderStore) {
	store := memory.NewOrderStore()
	uc := NewOrderUseCase(store, memory.NewSequenceAllocator(), WithClock(clock.Now), WithLogger(quietLogger()))
	return uc, store
}

func newMemoryRepairJobs(clock *fakeClock) (*RepairJobUseCase, *memory.RepairJobStore) {
	store := memory.NewRepairJobStore()
	uc := NewRepairJobUseCase(store, memory.NewSequenceAllocator(), WithClock(clock.Now), WithLogger(quietLogger()))
	return uc, store
}
