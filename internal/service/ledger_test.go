package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/commission"
	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/internal/repo"
	"github.com/SergeyBogomolovv/order-ledger/internal/service"
	"github.com/SergeyBogomolovv/order-ledger/pkg/cache"
	"github.com/SergeyBogomolovv/order-ledger/pkg/lock"
	"github.com/SergeyBogomolovv/order-ledger/pkg/trm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitioner interface {
	Transition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error)
}

type ledger struct {
	store *repo.MemoryStore
	svc   transitioner
}

// flakyEarnings fails the next failures platform upserts.
type flakyEarnings struct {
	*repo.MemoryStore
	mu       sync.Mutex
	failures int
}

func (f *flakyEarnings) UpsertPlatformEarning(ctx context.Context, e entities.PlatformEarning) (bool, error) {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return false, fmt.Errorf("%w: connection reset", entities.ErrStoreUnavailable)
	}
	f.mu.Unlock()
	return f.MemoryStore.UpsertPlatformEarning(ctx, e)
}

func newLedger(t *testing.T, earnings service.EarningRepo, store *repo.MemoryStore, attempts int) ledger {
	t.Helper()
	if store == nil {
		store = repo.NewMemoryStore()
	}
	if earnings == nil {
		earnings = store
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	retry := fastRetry()
	retry.MaxAttempts = attempts

	svc := service.NewOrderService(logger, trm.NewNoopManager(), store, earnings,
		cache.NewLRUCache[entities.Order](16, time.Minute), lock.NewLocal(), commission.Default(),
		service.WithRetry(retry),
		service.WithClock(func() time.Time { return fixedNow }),
	)
	return ledger{store: store, svc: svc}
}

func (l ledger) seed(t *testing.T, total int64, status entities.Status) entities.Order {
	t.Helper()
	o := order(status)
	o.Items[0].UnitPrice = total
	o.TotalAmount = total
	o.Version = 0
	require.NoError(t, l.store.CreateOrder(context.Background(), o))
	return o
}

func (l ledger) move(target entities.Status) (entities.TransitionResult, error) {
	return l.svc.Transition(context.Background(), entities.TransitionRequest{
		OrderID:   "order-1",
		ActorID:   "vendor-1",
		ActorRole: entities.RoleVendor,
		Target:    target,
	})
}

func (l ledger) assertBalanced(t *testing.T, total int64) {
	t.Helper()
	v, ok := l.store.VendorEarning("order-1")
	require.True(t, ok, "vendor earning missing")
	p, ok := l.store.PlatformEarning("order-1")
	require.True(t, ok, "platform earning missing")
	assert.Equal(t, total, v.Amount+p.CommissionAmount)

	report, err := l.store.Inconsistencies(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent(), "%+v", report)
}

func (l ledger) assertNoEarnings(t *testing.T) {
	t.Helper()
	_, ok := l.store.VendorEarning("order-1")
	assert.False(t, ok)
	_, ok = l.store.PlatformEarning("order-1")
	assert.False(t, ok)
}

func TestLedger_Scenarios(t *testing.T) {
	testCases := []struct {
		name         string
		total        int64
		wantVendor   int64
		wantPlatform int64
	}{
		{name: "A: round total", total: 10000, wantVendor: 9500, wantPlatform: 500},
		{name: "B: tiny total rounds commission down", total: 3, wantVendor: 3, wantPlatform: 0},
		{name: "half unit rounds up", total: 10, wantVendor: 9, wantPlatform: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(t, nil, nil, 3)
			l.seed(t, tc.total, entities.StatusInProgress)

			res, err := l.move(entities.StatusFulfilled)
			require.NoError(t, err)
			assert.True(t, res.Changed())
			assert.Equal(t, entities.PaymentPaid, res.Order.PaymentStatus)

			v, _ := l.store.VendorEarning("order-1")
			p, _ := l.store.PlatformEarning("order-1")
			assert.Equal(t, tc.wantVendor, v.Amount)
			assert.Equal(t, tc.wantPlatform, p.CommissionAmount)
			l.assertBalanced(t, tc.total)
		})
	}
}

func TestLedger_FullLifecycle(t *testing.T) {
	l := newLedger(t, nil, nil, 3)
	l.seed(t, 10000, entities.StatusCreated)

	for _, target := range []entities.Status{entities.StatusInProgress, entities.StatusFulfilled} {
		_, err := l.move(target)
		require.NoError(t, err)
	}

	got, err := l.store.GetOrderByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFulfilled, got.Status)
	assert.Equal(t, int64(2), got.Version)
	l.assertBalanced(t, 10000)
}

func TestLedger_Idempotence(t *testing.T) {
	l := newLedger(t, nil, nil, 3)
	l.seed(t, 12345, entities.StatusInProgress)

	_, err := l.move(entities.StatusFulfilled)
	require.NoError(t, err)
	firstVendor, _ := l.store.VendorEarning("order-1")
	firstPlatform, _ := l.store.PlatformEarning("order-1")

	res, err := l.move(entities.StatusFulfilled)
	require.NoError(t, err)
	assert.False(t, res.Changed())

	secondVendor, _ := l.store.VendorEarning("order-1")
	secondPlatform, _ := l.store.PlatformEarning("order-1")
	assert.Equal(t, firstVendor, secondVendor)
	assert.Equal(t, firstPlatform, secondPlatform)
	l.assertBalanced(t, 12345)
}

func TestLedger_Reversal(t *testing.T) {
	l := newLedger(t, nil, nil, 3)
	l.seed(t, 10000, entities.StatusInProgress)

	_, err := l.move(entities.StatusFulfilled)
	require.NoError(t, err)

	res, err := l.move(entities.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFulfilled, res.Previous)

	got, err := l.store.GetOrderByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCancelled, got.Status)
	assert.Equal(t, entities.PaymentRefunded, got.PaymentStatus)
	require.NotNil(t, got.FulfilledAt)
	assert.True(t, got.FulfilledAt.Equal(fixedNow))
	l.assertNoEarnings(t)
}

func TestLedger_CancelledIsTerminal(t *testing.T) {
	for _, target := range []entities.Status{
		entities.StatusCreated, entities.StatusInProgress, entities.StatusFulfilled, entities.StatusCancelled,
	} {
		t.Run(string(target), func(t *testing.T) {
			l := newLedger(t, nil, nil, 3)
			seeded := l.seed(t, 10000, entities.StatusCancelled)

			_, err := l.move(target)
			assert.ErrorIs(t, err, entities.ErrInvalidTransition)

			got, err := l.store.GetOrderByID(context.Background(), "order-1")
			require.NoError(t, err)
			assert.Equal(t, seeded, got)
			l.assertNoEarnings(t)
		})
	}
}

func TestLedger_ForeignActor(t *testing.T) {
	l := newLedger(t, nil, nil, 3)
	seeded := l.seed(t, 10000, entities.StatusInProgress)

	_, err := l.svc.Transition(context.Background(), entities.TransitionRequest{
		OrderID:   "order-1",
		ActorID:   "vendor-2",
		ActorRole: entities.RoleVendor,
		Target:    entities.StatusFulfilled,
	})
	assert.ErrorIs(t, err, entities.ErrForbidden)

	got, err := l.store.GetOrderByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, seeded, got)
	l.assertNoEarnings(t)
}

func TestLedger_ConcurrentFulfil(t *testing.T) {
	l := newLedger(t, nil, nil, 3)
	l.seed(t, 10000, entities.StatusInProgress)

	const callers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.move(entities.StatusFulfilled)
			if !assert.NoError(t, err) {
				return
			}
			if res.Changed() {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, changed)
	l.assertBalanced(t, 10000)
}

func TestLedger_PartialFailureIsRepairedByRetry(t *testing.T) {
	store := repo.NewMemoryStore()
	flaky := &flakyEarnings{MemoryStore: store, failures: 1}
	l := newLedger(t, flaky, store, 3)
	l.seed(t, 10000, entities.StatusInProgress)

	_, err := l.move(entities.StatusFulfilled)
	require.NoError(t, err)
	l.assertBalanced(t, 10000)
}

func TestLedger_CrashLeavesOrderBehindLedger(t *testing.T) {
	store := repo.NewMemoryStore()
	flaky := &flakyEarnings{MemoryStore: store, failures: 1}
	l := newLedger(t, flaky, store, 1)
	l.seed(t, 10000, entities.StatusInProgress)

	_, err := l.move(entities.StatusFulfilled)
	require.ErrorIs(t, err, entities.ErrStoreUnavailable)

	got, err := store.GetOrderByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInProgress, got.Status)
	_, ok := store.VendorEarning("order-1")
	assert.True(t, ok)

	// the caller re-runs the same transition
	_, err = l.move(entities.StatusFulfilled)
	require.NoError(t, err)
	l.assertBalanced(t, 10000)
}

func TestLedger_VanishedOrder(t *testing.T) {
	l := newLedger(t, nil, nil, 3)
	l.seed(t, 10000, entities.StatusCreated)
	l.store.RemoveOrder("order-1")

	_, err := l.move(entities.StatusInProgress)
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

// vanishingEarnings deletes the order right after its platform earning is
// written, before the engine saves the new status.
type vanishingEarnings struct {
	*repo.MemoryStore
}

func (v vanishingEarnings) UpsertPlatformEarning(ctx context.Context, e entities.PlatformEarning) (bool, error) {
	created, err := v.MemoryStore.UpsertPlatformEarning(ctx, e)
	v.RemoveOrder(e.OrderID)
	return created, err
}

func TestLedger_OrderVanishesBeforeStatusWrite(t *testing.T) {
	store := repo.NewMemoryStore()
	l := newLedger(t, vanishingEarnings{MemoryStore: store}, store, 3)
	l.seed(t, 10000, entities.StatusInProgress)

	_, err := l.move(entities.StatusFulfilled)
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	l.assertNoEarnings(t)

	ctx := context.Background()
	vendorEarnings, err := store.VendorEarnings(ctx, "vendor-1", entities.Period{})
	require.NoError(t, err)
	assert.Empty(t, vendorEarnings)

	platform, err := store.PlatformEarningsTotal(ctx, entities.Period{})
	require.NoError(t, err)
	assert.Equal(t, entities.EarningsTotal{}, platform)

	report, err := store.Inconsistencies(ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent(), "%+v", report)
}

// pausingOrders holds the first order read until release is closed.
type pausingOrders struct {
	*repo.MemoryStore
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (p *pausingOrders) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	o, err := p.MemoryStore.GetOrderByID(ctx, orderID)
	p.once.Do(func() {
		close(p.loaded)
		<-p.release
	})
	return o, err
}

func TestLedger_SlowReadDoesNotResurrectOldStatus(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	seeded := order(entities.StatusCreated)
	seeded.Version = 0
	require.NoError(t, store.CreateOrder(ctx, seeded))

	orders := &pausingOrders{MemoryStore: store, loaded: make(chan struct{}), release: make(chan struct{})}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewOrderService(logger, trm.NewNoopManager(), orders, store,
		cache.NewLRUCache[entities.Order](16, time.Minute), lock.NewLocal(), commission.Default(),
		service.WithRetry(fastRetry()),
		service.WithClock(func() time.Time { return fixedNow }),
	)
	vendor := entities.Actor{ID: "vendor-1", Role: entities.RoleVendor}

	stale := make(chan entities.Order, 1)
	go func() {
		o, _ := svc.GetOrderByID(ctx, vendor, "order-1")
		stale <- o
	}()
	<-orders.loaded

	_, err := svc.Transition(ctx, entities.TransitionRequest{
		OrderID:   "order-1",
		ActorID:   "vendor-1",
		ActorRole: entities.RoleVendor,
		Target:    entities.StatusInProgress,
	})
	require.NoError(t, err)

	close(orders.release)
	assert.Equal(t, entities.StatusCreated, (<-stale).Status)

	got, err := svc.GetOrderByID(ctx, vendor, "order-1")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInProgress, got.Status)
	assert.Equal(t, int64(1), got.Version)
}
