package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

var (
	inconsistencies = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "order_ledger",
		Subsystem: "audit",
		Name:      "inconsistencies",
		Help:      "Orders breaking ledger invariants at the last audit run.",
	}, []string{"kind"})

	lastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "order_ledger",
		Subsystem: "audit",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last successful audit run.",
	})

	runErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "order_ledger",
		Subsystem: "audit",
		Name:      "run_errors_total",
		Help:      "Total number of failed audit runs.",
	})
)

type Checker interface {
	Inconsistencies(ctx context.Context) (entities.AuditReport, error)
}

// Auditor periodically checks that every fulfilled order has exactly one
// balanced earnings pair and that no earnings outlive their order's
// fulfilment. It only reports; repairs happen by re-running transitions.
type Auditor struct {
	logger   *slog.Logger
	checker  Checker
	schedule string
	timeout  time.Duration
}

func New(logger *slog.Logger, checker Checker, schedule string) *Auditor {
	return &Auditor{
		logger:   logger.With(slog.String("service", "audit")),
		checker:  checker,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Start schedules the audit and stops the scheduler when ctx is done.
func (a *Auditor) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(a.schedule, a.scheduled(ctx)); err != nil {
		return fmt.Errorf("failed to schedule audit %q: %w", a.schedule, err)
	}
	c.Start()
	a.logger.Info("audit scheduled", slog.String("schedule", a.schedule))

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}

// scheduled adapts Run to a cron job. Run records failures in logs and
// metrics, which is all a scheduled run can do with them.
func (a *Auditor) scheduled(ctx context.Context) func() {
	return func() {
		_, _ = a.Run(ctx)
	}
}

func (a *Auditor) Run(ctx context.Context) (entities.AuditReport, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	report, err := a.checker.Inconsistencies(ctx)
	if err != nil {
		runErrors.Inc()
		a.logger.Error("audit failed", slog.Any("error", err))
		return entities.AuditReport{}, err
	}

	inconsistencies.WithLabelValues("missing_earnings").Set(float64(report.MissingEarnings))
	inconsistencies.WithLabelValues("orphaned_earnings").Set(float64(report.OrphanedEarnings))
	inconsistencies.WithLabelValues("split_mismatch").Set(float64(report.SplitMismatches))
	lastRun.SetToCurrentTime()

	if report.Consistent() {
		a.logger.Debug("ledger consistent")
	} else {
		a.logger.Warn("ledger inconsistent",
			slog.Int("missing_earnings", report.MissingEarnings),
			slog.Int("orphaned_earnings", report.OrphanedEarnings),
			slog.Int("split_mismatches", report.SplitMismatches),
		)
	}
	return report, nil
}
