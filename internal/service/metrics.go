package service

import (
	"errors"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_ledger",
		Name:      "transitions_total",
		Help:      "Total number of order status transitions by outcome.",
	}, []string{"from", "to", "result"})

	transitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "order_ledger",
		Name:      "transition_duration_seconds",
		Help:      "Duration of order status transitions including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})

	earningsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_ledger",
		Name:      "earnings_written_total",
		Help:      "Earning records created, updated or deleted by kind.",
	}, []string{"kind", "op"})
)

func observeTransition(from, to entities.Status, err error, elapsed time.Duration) {
	result := transitionResult(err)
	if from == "" {
		from = "unknown"
	}
	if !to.Valid() {
		to = "invalid"
	}
	transitionsTotal.WithLabelValues(string(from), string(to), result).Inc()
	transitionDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrForbidden):
		return "forbidden"
	case errors.Is(err, entities.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, entities.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, entities.ErrStoreConflict):
		return "conflict"
	case errors.Is(err, entities.ErrStoreUnavailable):
		return "unavailable"
	}
	return "error"
}
