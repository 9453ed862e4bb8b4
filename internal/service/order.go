package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/commission"
	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/pkg/lock"
	"github.com/SergeyBogomolovv/order-ledger/pkg/trm"
	"github.com/SergeyBogomolovv/order-ledger/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/SergeyBogomolovv/order-ledger/internal/service")

type OrderRepo interface {
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	// GetOrderForUpdate holds a row lock until the surrounding transaction ends.
	GetOrderForUpdate(ctx context.Context, orderID string) (entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
	// UpdateOrderStatus fails with entities.ErrStoreConflict when the stored
	// version differs from expectedVersion.
	UpdateOrderStatus(ctx context.Context, o entities.Order, expectedVersion int64) error
}

// Upserts report whether a record was created, deletes whether one existed.
type EarningRepo interface {
	UpsertVendorEarning(ctx context.Context, e entities.VendorEarning) (bool, error)
	UpsertPlatformEarning(ctx context.Context, e entities.PlatformEarning) (bool, error)
	DeleteVendorEarning(ctx context.Context, orderID string) (bool, error)
	DeletePlatformEarning(ctx context.Context, orderID string) (bool, error)
}

type Cache interface {
	Get(key string) (entities.Order, bool)
	Set(key string, value entities.Order)
	// SetIf stores value unless a live entry exists and replace rejects it.
	SetIf(key string, value entities.Order, replace func(current entities.Order) bool)
	Delete(key string)
}

type Locker interface {
	Lock(ctx context.Context, key string) (lock.UnlockFunc, error)
}

type Option func(*orderService)

func WithRetry(cfg utils.RetryConfig) Option {
	return func(s *orderService) {
		s.retry = cfg
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *orderService) {
		s.now = now
	}
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	orders    OrderRepo
	earnings  EarningRepo
	cache     Cache
	locker    Locker
	policy    commission.Policy

	retry utils.RetryConfig
	now   func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	orders OrderRepo,
	earnings EarningRepo,
	cache Cache,
	locker Locker,
	policy commission.Policy,
	opts ...Option,
) *orderService {
	s := &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		orders:    orders,
		earnings:  earnings,
		cache:     cache,
		locker:    locker,
		policy:    policy,
		retry: utils.RetryConfig{
			InitialDelay: 100 * time.Millisecond,
			MaxAttempts:  5,
			Multiplier:   2,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.retry.ShouldRetry = entities.IsRetryable
	return s
}

// Transition moves an order to req.Target and brings its earnings in line
// with the new status. Store conflicts and outages are retried as a whole;
// every other error is returned on the first attempt.
func (s *orderService) Transition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error) {
	ctx, span := tracer.Start(ctx, "OrderService.Transition", trace.WithAttributes(
		attribute.String("order.id", req.OrderID),
		attribute.String("order.target_status", string(req.Target)),
	))
	defer span.End()

	start := time.Now()
	result, err := s.transitionWithRetry(ctx, req)
	observeTransition(result.Previous, req.Target, err, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return entities.TransitionResult{}, err
	}

	span.SetAttributes(attribute.String("order.previous_status", string(result.Previous)))
	if result.Changed() {
		s.logger.InfoContext(ctx, "order status changed",
			slog.String("order_id", req.OrderID),
			slog.String("from", string(result.Previous)),
			slog.String("to", string(result.Order.Status)),
		)
	}
	return result, nil
}

func (s *orderService) transitionWithRetry(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error) {
	if req.OrderID == "" {
		return entities.TransitionResult{}, fmt.Errorf("%w: empty order id", entities.ErrInvalidArgument)
	}
	if !req.Target.Valid() {
		return entities.TransitionResult{}, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, req.Target)
	}

	var result entities.TransitionResult
	attempt := 0
	err := utils.Retry(ctx, s.retry, func() error {
		attempt++
		var err error
		result, err = s.transition(ctx, req)
		if err != nil && entities.IsRetryable(err) {
			s.logger.WarnContext(ctx, "transition attempt failed",
				slog.String("order_id", req.OrderID),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
		}
		return err
	})
	if errors.Is(err, entities.ErrOrderNotFound) {
		s.cache.Delete(req.OrderID)
	}
	if err != nil {
		return entities.TransitionResult{}, err
	}

	s.cacheOrder(result.Order)
	return result, nil
}

func (s *orderService) transition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error) {
	unlock, err := s.locker.Lock(ctx, orderLockKey(req.OrderID))
	if err != nil {
		if ctx.Err() != nil {
			return entities.TransitionResult{}, fmt.Errorf("failed to lock order: %w", err)
		}
		return entities.TransitionResult{}, fmt.Errorf("%w: %w", entities.ErrStoreConflict, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.WarnContext(ctx, "failed to release order lock", slog.String("order_id", req.OrderID), slog.Any("error", err))
		}
	}()

	var result entities.TransitionResult
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetOrderForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if req.ActorRole != entities.RoleVendor || order.VendorID != req.ActorID {
			return entities.ErrForbidden
		}
		if !order.Status.CanTransitionTo(req.Target) {
			return fmt.Errorf("%w: %s -> %s", entities.ErrInvalidTransition, order.Status, req.Target)
		}

		previous := order.Status
		expectedVersion := order.Version
		dirty := previous != req.Target

		switch {
		case req.Target == entities.StatusFulfilled:
			if order.FulfilledAt == nil {
				now := s.now().UTC()
				order.FulfilledAt = &now
				dirty = true
			}
			if err := s.recordEarnings(ctx, order); err != nil {
				return err
			}
			if order.PaymentStatus != entities.PaymentPaid {
				order.PaymentStatus = entities.PaymentPaid
				dirty = true
			}

		case req.Target == entities.StatusCancelled && previous == entities.StatusFulfilled:
			if err := s.reverseEarnings(ctx, order.ID); err != nil {
				return err
			}
			if order.PaymentStatus == entities.PaymentPaid {
				order.PaymentStatus = entities.PaymentRefunded
			}
		}

		if dirty {
			order.Status = req.Target
			order.UpdatedAt = s.now().UTC()
			if err := s.orders.UpdateOrderStatus(ctx, order, expectedVersion); err != nil {
				if errors.Is(err, entities.ErrOrderNotFound) && req.Target == entities.StatusFulfilled {
					return s.discardEarnings(ctx, order.ID, err)
				}
				return err
			}
			order.Version = expectedVersion + 1
		}

		result = entities.TransitionResult{Order: order, Previous: previous}
		return nil
	})
	if err != nil {
		return entities.TransitionResult{}, err
	}
	return result, nil
}

// recordEarnings upserts both earnings of a fulfilled order. Re-running it
// for the same order rewrites identical records.
func (s *orderService) recordEarnings(ctx context.Context, order entities.Order) error {
	vendorShare, platformShare, err := s.policy.Split(order.TotalAmount)
	if err != nil {
		return fmt.Errorf("failed to split order total: %w", err)
	}

	completedAt := *order.FulfilledAt

	created, err := s.earnings.UpsertVendorEarning(ctx, entities.NewVendorEarning(order, vendorShare, completedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert vendor earning: %w", err)
	}
	s.logEarning(ctx, "vendor", order.ID, created, vendorShare)

	created, err = s.earnings.UpsertPlatformEarning(ctx, entities.NewPlatformEarning(order, platformShare, completedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert platform earning: %w", err)
	}
	s.logEarning(ctx, "platform", order.ID, created, platformShare)

	return nil
}

func (s *orderService) reverseEarnings(ctx context.Context, orderID string) error {
	removed, err := s.earnings.DeleteVendorEarning(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete vendor earning: %w", err)
	}
	if removed {
		earningsWritten.WithLabelValues("vendor", "deleted").Inc()
	}

	removed, err = s.earnings.DeletePlatformEarning(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete platform earning: %w", err)
	}
	if removed {
		earningsWritten.WithLabelValues("platform", "deleted").Inc()
	}

	s.logger.DebugContext(ctx, "earnings reversed", slog.String("order_id", orderID))
	return nil
}

// discardEarnings drops the earnings written for an order that vanished
// before its status could be saved, then returns cause.
func (s *orderService) discardEarnings(ctx context.Context, orderID string, cause error) error {
	if err := s.reverseEarnings(ctx, orderID); err != nil {
		return errors.Join(cause, err)
	}
	s.logger.WarnContext(ctx, "order vanished during transition, earnings discarded", slog.String("order_id", orderID))
	return cause
}

func (s *orderService) logEarning(ctx context.Context, kind, orderID string, created bool, amount int64) {
	op := "updated"
	if created {
		op = "created"
	}
	earningsWritten.WithLabelValues(kind, op).Inc()
	s.logger.DebugContext(ctx, "earning "+op,
		slog.String("kind", kind),
		slog.String("order_id", orderID),
		slog.Int64("amount", amount),
	)
}

// GetOrderByID returns the order if actor may see it. Reads go through the
// cache; Transition refreshes it.
func (s *orderService) GetOrderByID(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !order.VisibleTo(actor) {
		return entities.Order{}, entities.ErrForbidden
	}
	return order, nil
}

func (s *orderService) getOrder(ctx context.Context, orderID string) (entities.Order, error) {
	if order, ok := s.cache.Get(orderID); ok {
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.orders.GetOrderByID(ctx, orderID)
		return err
	}
	if err := utils.Retry(ctx, s.retry, fn); err != nil {
		return entities.Order{}, err
	}

	s.cacheOrder(order)
	return order, nil
}

// cacheOrder keeps the highest version seen for an order.
func (s *orderService) cacheOrder(order entities.Order) {
	s.cache.SetIf(order.ID, order, func(current entities.Order) bool {
		return order.Version >= current.Version
	})
}

// WarmUpCache loads the most recent orders into the cache.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}

	orders, err := s.orders.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}
	for _, order := range orders {
		s.cache.Set(order.ID, order)
	}

	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func orderLockKey(orderID string) string {
	return "order:" + orderID
}
