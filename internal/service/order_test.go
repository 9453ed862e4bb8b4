package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/commission"
	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/internal/service"
	mocks "github.com/SergeyBogomolovv/order-ledger/internal/service/mocks"
	"github.com/SergeyBogomolovv/order-ledger/pkg/lock"
	txMocks "github.com/SergeyBogomolovv/order-ledger/pkg/trm/mocks"
	"github.com/SergeyBogomolovv/order-ledger/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 14, 9, 30, 0, 0, time.UTC)

func fastRetry() utils.RetryConfig {
	return utils.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func order(status entities.Status) entities.Order {
	return entities.Order{
		ID:            "order-1",
		Number:        "ORD202600001",
		CustomerID:    "customer-1",
		VendorID:      "vendor-1",
		Items:         []entities.LineItem{{OfferingID: "suit-1", Name: "Tailored suit", UnitPrice: 10000, Quantity: 1}},
		TotalAmount:   10000,
		Status:        status,
		PaymentStatus: entities.PaymentPending,
		Version:       3,
	}
}

func TestOrderService_Transition(t *testing.T) {
	type MockBehavior func(orders *mocks.MockOrderRepo, earnings *mocks.MockEarningRepo, cache *mocks.MockCache)

	dbError := errors.New("db error")
	fulfilled := order(entities.StatusFulfilled)
	fulfilledAt := fixedNow.Add(-time.Hour)
	fulfilled.FulfilledAt = &fulfilledAt
	fulfilled.PaymentStatus = entities.PaymentPaid

	testCases := []struct {
		name         string
		req          entities.TransitionRequest
		mockBehavior MockBehavior
		wantErr      error
		wantPrevious entities.Status
		wantStatus   entities.Status
	}{
		{
			name:         "unknown target status",
			req:          entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: "shipped"},
			mockBehavior: func(*mocks.MockOrderRepo, *mocks.MockEarningRepo, *mocks.MockCache) {},
			wantErr:      entities.ErrInvalidArgument,
		},
		{
			name: "order not found",
			req:  entities.TransitionRequest{OrderID: "missing", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "missing").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
				cache.EXPECT().Delete("missing").Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "actor is another vendor",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-2", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, _ *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusCreated), nil).Once()
			},
			wantErr: entities.ErrForbidden,
		},
		{
			name: "actor is the customer",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "customer-1", ActorRole: entities.RoleCustomer, Target: entities.StatusCancelled},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, _ *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusCreated), nil).Once()
			},
			wantErr: entities.ErrForbidden,
		},
		{
			name: "created to fulfilled is illegal",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusFulfilled},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, _ *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusCreated), nil).Once()
			},
			wantErr: entities.ErrInvalidTransition,
		},
		{
			name: "cancelled accepts nothing",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusCancelled},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, _ *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusCancelled), nil).Once()
			},
			wantErr: entities.ErrInvalidTransition,
		},
		{
			name: "created to in progress",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusCreated), nil).Once()
				orders.EXPECT().UpdateOrderStatus(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
					return o.Status == entities.StatusInProgress && o.FulfilledAt == nil
				}), int64(3)).Return(nil).Once()
				cache.EXPECT().SetIf("order-1", mock.MatchedBy(func(o entities.Order) bool {
					return o.Status == entities.StatusInProgress && o.Version == 4
				}), mock.Anything).Once()
			},
			wantPrevious: entities.StatusCreated,
			wantStatus:   entities.StatusInProgress,
		},
		{
			name: "same status is a no-op",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusInProgress), nil).Once()
				cache.EXPECT().SetIf("order-1", mock.Anything, mock.Anything).Once()
			},
			wantPrevious: entities.StatusInProgress,
			wantStatus:   entities.StatusInProgress,
		},
		{
			name: "fulfil records both earnings before the order",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusFulfilled},
			mockBehavior: func(orders *mocks.MockOrderRepo, earnings *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusInProgress), nil).Once()

				vendor := earnings.EXPECT().UpsertVendorEarning(mock.Anything, mock.MatchedBy(func(e entities.VendorEarning) bool {
					return e.OrderID == "order-1" && e.Amount == 9500 && e.CompletedAt.Equal(fixedNow) &&
						e.EarningMonth == "2026-05" && e.ItemNames[0] == "Tailored suit"
				})).Return(true, nil).Once()
				platform := earnings.EXPECT().UpsertPlatformEarning(mock.Anything, mock.MatchedBy(func(e entities.PlatformEarning) bool {
					return e.OrderID == "order-1" && e.CommissionAmount == 500 && e.RecognizedAt.Equal(fixedNow)
				})).Return(true, nil).Once().NotBefore(vendor)
				orders.EXPECT().UpdateOrderStatus(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
					return o.Status == entities.StatusFulfilled && o.PaymentStatus == entities.PaymentPaid &&
						o.FulfilledAt != nil && o.FulfilledAt.Equal(fixedNow)
				}), int64(3)).Return(nil).Once().NotBefore(platform)
				cache.EXPECT().SetIf("order-1", mock.Anything, mock.Anything).Once()
			},
			wantPrevious: entities.StatusInProgress,
			wantStatus:   entities.StatusFulfilled,
		},
		{
			name: "re-fulfil rewrites earnings with the original timestamp",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusFulfilled},
			mockBehavior: func(orders *mocks.MockOrderRepo, earnings *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").Return(fulfilled, nil).Once()
				earnings.EXPECT().UpsertVendorEarning(mock.Anything, mock.MatchedBy(func(e entities.VendorEarning) bool {
					return e.Amount == 9500 && e.CompletedAt.Equal(fulfilledAt)
				})).Return(false, nil).Once()
				earnings.EXPECT().UpsertPlatformEarning(mock.Anything, mock.MatchedBy(func(e entities.PlatformEarning) bool {
					return e.CommissionAmount == 500 && e.RecognizedAt.Equal(fulfilledAt)
				})).Return(false, nil).Once()
				cache.EXPECT().SetIf("order-1", mock.Anything, mock.Anything).Once()
			},
			wantPrevious: entities.StatusFulfilled,
			wantStatus:   entities.StatusFulfilled,
		},
		{
			name: "cancel after fulfil reverses earnings",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusCancelled},
			mockBehavior: func(orders *mocks.MockOrderRepo, earnings *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").Return(fulfilled, nil).Once()
				earnings.EXPECT().DeleteVendorEarning(mock.Anything, "order-1").Return(true, nil).Once()
				// already removed by an earlier partial run
				earnings.EXPECT().DeletePlatformEarning(mock.Anything, "order-1").Return(false, nil).Once()
				orders.EXPECT().UpdateOrderStatus(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
					return o.Status == entities.StatusCancelled && o.PaymentStatus == entities.PaymentRefunded &&
						o.FulfilledAt != nil && o.FulfilledAt.Equal(fulfilledAt)
				}), int64(3)).Return(nil).Once()
				cache.EXPECT().SetIf("order-1", mock.Anything, mock.Anything).Once()
			},
			wantPrevious: entities.StatusFulfilled,
			wantStatus:   entities.StatusCancelled,
		},
		{
			name: "order vanishing before the status write discards its earnings",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusFulfilled},
			mockBehavior: func(orders *mocks.MockOrderRepo, earnings *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusInProgress), nil).Once()
				earnings.EXPECT().UpsertVendorEarning(mock.Anything, mock.Anything).Return(true, nil).Once()
				platform := earnings.EXPECT().UpsertPlatformEarning(mock.Anything, mock.Anything).Return(true, nil).Once()
				update := orders.EXPECT().UpdateOrderStatus(mock.Anything, mock.Anything, int64(3)).
					Return(entities.ErrOrderNotFound).Once().NotBefore(platform)
				earnings.EXPECT().DeleteVendorEarning(mock.Anything, "order-1").Return(true, nil).Once().NotBefore(update)
				earnings.EXPECT().DeletePlatformEarning(mock.Anything, "order-1").Return(true, nil).Once().NotBefore(update)
				cache.EXPECT().Delete("order-1").Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "version conflict is retried",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, cache *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusCreated), nil).Twice()
				orders.EXPECT().UpdateOrderStatus(mock.Anything, mock.Anything, int64(3)).
					Return(entities.ErrStoreConflict).Once()
				orders.EXPECT().UpdateOrderStatus(mock.Anything, mock.Anything, int64(3)).
					Return(nil).Once()
				cache.EXPECT().SetIf("order-1", mock.Anything, mock.Anything).Once()
			},
			wantPrevious: entities.StatusCreated,
			wantStatus:   entities.StatusInProgress,
		},
		{
			name: "store outage outlasts retries",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress},
			mockBehavior: func(orders *mocks.MockOrderRepo, _ *mocks.MockEarningRepo, _ *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(entities.Order{}, entities.ErrStoreUnavailable).Times(3)
			},
			wantErr: entities.ErrStoreUnavailable,
		},
		{
			name: "terminal ledger failure is not retried",
			req:  entities.TransitionRequest{OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusFulfilled},
			mockBehavior: func(orders *mocks.MockOrderRepo, earnings *mocks.MockEarningRepo, _ *mocks.MockCache) {
				orders.EXPECT().GetOrderForUpdate(mock.Anything, "order-1").
					Return(order(entities.StatusInProgress), nil).Once()
				earnings.EXPECT().UpsertVendorEarning(mock.Anything, mock.Anything).
					Return(false, dbError).Once()
			},
			wantErr: dbError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := mocks.NewMockOrderRepo(t)
			earnings := mocks.NewMockEarningRepo(t)
			cache := mocks.NewMockCache(t)
			tx := txMocks.NewMockManager(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			tx.EXPECT().
				Do(mock.Anything, mock.Anything).
				RunAndReturn(
					func(ctx context.Context, cb func(ctx context.Context) error) error {
						return cb(ctx)
					}).Maybe()

			tc.mockBehavior(orders, earnings, cache)

			svc := service.NewOrderService(logger, tx, orders, earnings, cache, lock.NewLocal(), commission.Default(),
				service.WithRetry(fastRetry()),
				service.WithClock(func() time.Time { return fixedNow }),
			)

			res, err := svc.Transition(context.Background(), tc.req)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantPrevious, res.Previous)
			assert.Equal(t, tc.wantStatus, res.Order.Status)
		})
	}
}

func TestOrderService_Transition_LockNotAcquired(t *testing.T) {
	orders := mocks.NewMockOrderRepo(t)
	earnings := mocks.NewMockEarningRepo(t)
	cache := mocks.NewMockCache(t)
	locker := mocks.NewMockLocker(t)
	tx := txMocks.NewMockManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	locker.EXPECT().Lock(mock.Anything, "order:order-1").Return(nil, lock.ErrNotAcquired).Times(3)

	svc := service.NewOrderService(logger, tx, orders, earnings, cache, locker, commission.Default(),
		service.WithRetry(fastRetry()),
	)

	_, err := svc.Transition(context.Background(), entities.TransitionRequest{
		OrderID: "order-1", ActorID: "vendor-1", ActorRole: entities.RoleVendor, Target: entities.StatusInProgress,
	})
	assert.ErrorIs(t, err, entities.ErrStoreConflict)
	assert.ErrorIs(t, err, lock.ErrNotAcquired)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	type MockBehavior func(orders *mocks.MockOrderRepo, cache *mocks.MockCache)

	stored := order(entities.StatusCreated)

	testCases := []struct {
		name         string
		actor        entities.Actor
		mockBehavior MockBehavior
		wantErr      error
	}{
		{
			name:  "cache hit",
			actor: entities.Actor{ID: "vendor-1", Role: entities.RoleVendor},
			mockBehavior: func(_ *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("order-1").Return(stored, true).Once()
			},
		},
		{
			name:  "cache miss loads and stores",
			actor: entities.Actor{ID: "customer-1", Role: entities.RoleCustomer},
			mockBehavior: func(orders *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("order-1").Return(entities.Order{}, false).Once()
				orders.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(stored, nil).Once()
				cache.EXPECT().SetIf("order-1", stored, mock.Anything).Once()
			},
		},
		{
			name:  "admin sees every order",
			actor: entities.Actor{ID: "admin-1", Role: entities.RoleAdmin},
			mockBehavior: func(_ *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("order-1").Return(stored, true).Once()
			},
		},
		{
			name:  "foreign vendor",
			actor: entities.Actor{ID: "vendor-2", Role: entities.RoleVendor},
			mockBehavior: func(_ *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("order-1").Return(stored, true).Once()
			},
			wantErr: entities.ErrForbidden,
		},
		{
			name:  "not found is not retried",
			actor: entities.Actor{ID: "vendor-1", Role: entities.RoleVendor},
			mockBehavior: func(orders *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("order-1").Return(entities.Order{}, false).Once()
				orders.EXPECT().GetOrderByID(mock.Anything, "order-1").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := mocks.NewMockOrderRepo(t)
			cache := mocks.NewMockCache(t)
			tx := txMocks.NewMockManager(t)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			tc.mockBehavior(orders, cache)

			svc := service.NewOrderService(logger, tx, orders, mocks.NewMockEarningRepo(t), cache, lock.NewLocal(), commission.Default(),
				service.WithRetry(fastRetry()),
			)

			got, err := svc.GetOrderByID(context.Background(), tc.actor, "order-1")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored, got)
		})
	}
}

func TestOrderService_WarmUpCache(t *testing.T) {
	orders := mocks.NewMockOrderRepo(t)
	cache := mocks.NewMockCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, second := order(entities.StatusCreated), order(entities.StatusInProgress)
	second.ID = "order-2"

	orders.EXPECT().LatestOrders(mock.Anything, 2).Return([]entities.Order{first, second}, nil).Once()
	cache.EXPECT().Set("order-1", first).Once()
	cache.EXPECT().Set("order-2", second).Once()

	svc := service.NewOrderService(logger, txMocks.NewMockManager(t), orders, mocks.NewMockEarningRepo(t), cache, lock.NewLocal(), commission.Default())
	require.NoError(t, svc.WarmUpCache(context.Background(), 2))
}
