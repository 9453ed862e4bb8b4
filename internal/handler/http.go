package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/SergeyBogomolovv/order-ledger/internal/middleware"
	"github.com/SergeyBogomolovv/order-ledger/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Transitioner interface {
	Transition(ctx context.Context, req entities.TransitionRequest) (entities.TransitionResult, error)
}

type OrderService interface {
	Transitioner
	GetOrderByID(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
}

type EarningsService interface {
	VendorEarnings(ctx context.Context, vendorID string, period entities.Period) (entities.VendorEarningsReport, error)
	PlatformEarnings(ctx context.Context, period entities.Period) (entities.PlatformEarningsReport, error)
	PlatformTrend(ctx context.Context, months int) ([]entities.MonthlyTotal, error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, res entities.TransitionResult) error
}

type HTTPHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	orders    OrderService
	earnings  EarningsService
	publisher EventPublisher
	now       func() time.Time
}

func NewHTTPHandler(logger *slog.Logger, orders OrderService, earnings EarningsService, publisher EventPublisher) *HTTPHandler {
	return &HTTPHandler{
		logger:    logger.With(slog.String("handler", "http")),
		validate:  validator.New(),
		orders:    orders,
		earnings:  earnings,
		publisher: publisher,
		now:       time.Now,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Actor)

		r.Get("/orders/{order_id}", h.GetOrderByID)
		r.Put("/orders/{order_id}/status", h.UpdateStatus)

		r.Get("/earnings/vendor", h.VendorEarnings)
		r.Get("/earnings/platform", h.PlatformEarnings)
		r.Get("/earnings/platform/trend", h.PlatformTrend)
	})
}

func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body UpdateStatusRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	res, err := h.orders.Transition(ctx, entities.TransitionRequest{
		OrderID:   orderID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Target:    entities.Status(body.Status),
	})
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("order_id", orderID))
		return
	}

	if res.Changed() {
		if err := h.publisher.PublishStatusChanged(ctx, res); err != nil {
			h.logger.ErrorContext(ctx, "failed to publish status change", slog.String("order_id", orderID), slog.Any("error", err))
		}
	}

	utils.WriteJSON(w, TransitionEntityToJSON(res), http.StatusOK)
}

func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := h.orders.GetOrderByID(ctx, actor, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("order_id", orderID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// VendorEarnings returns the caller's earnings. Admins may pass vendor_id
// to read any vendor.
func (h *HTTPHandler) VendorEarnings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var vendorID string
	switch actor.Role {
	case entities.RoleVendor:
		vendorID = actor.ID
	case entities.RoleAdmin:
		vendorID = r.URL.Query().Get("vendor_id")
		if err := h.validate.Var(vendorID, "required"); err != nil {
			utils.WriteValidationError(w, err)
			return
		}
	default:
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return
	}

	period, err := entities.PeriodFromFilter(r.URL.Query().Get("period"), h.now())
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	report, err := h.earnings.VendorEarnings(ctx, vendorID, period)
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("vendor_id", vendorID))
		return
	}

	utils.WriteJSON(w, VendorReportEntityToJSON(report), http.StatusOK)
}

func (h *HTTPHandler) PlatformEarnings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.requireAdmin(w, r) {
		return
	}

	period, err := entities.PeriodFromFilter(r.URL.Query().Get("period"), h.now())
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	report, err := h.earnings.PlatformEarnings(ctx, period)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, PlatformReportEntityToJSON(report), http.StatusOK)
}

func (h *HTTPHandler) PlatformTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.requireAdmin(w, r) {
		return
	}

	var months int
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteError(w, "months must be an integer", http.StatusBadRequest)
			return
		}
		months = n
	}

	trend, err := h.earnings.PlatformTrend(ctx, months)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, TrendEntityToJSON(trend), http.StatusOK)
}

func (h *HTTPHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	if actor.Role != entities.RoleAdmin {
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, attrs ...any) {
	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, entities.ErrInvalidArgument):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidTransition):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, entities.ErrStoreConflict):
		utils.WriteError(w, "concurrent update, retry the request", http.StatusConflict)
	case errors.Is(err, entities.ErrStoreUnavailable):
		h.logger.ErrorContext(ctx, "store unavailable", append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "service unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.ErrorContext(ctx, "request failed", append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
