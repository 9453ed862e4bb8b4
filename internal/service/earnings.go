package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const DefaultTrendMonths = 12

type EarningsReader interface {
	VendorEarnings(ctx context.Context, vendorID string, period entities.Period) ([]entities.VendorEarning, error)
	PlatformEarningsTotal(ctx context.Context, period entities.Period) (entities.EarningsTotal, error)
	// PlatformMonthlyTotals returns totals per UTC month starting at the
	// month containing from, oldest first. Empty months may be omitted.
	PlatformMonthlyTotals(ctx context.Context, from time.Time) ([]entities.MonthlyTotal, error)
}

type earningsService struct {
	logger *slog.Logger
	reader EarningsReader
	now    func() time.Time
}

type EarningsOption func(*earningsService)

func WithEarningsClock(now func() time.Time) EarningsOption {
	return func(s *earningsService) {
		s.now = now
	}
}

func NewEarningsService(logger *slog.Logger, reader EarningsReader, opts ...EarningsOption) *earningsService {
	s := &earningsService{
		logger: logger.With(slog.String("service", "earnings")),
		reader: reader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *earningsService) VendorEarnings(ctx context.Context, vendorID string, period entities.Period) (entities.VendorEarningsReport, error) {
	ctx, span := tracer.Start(ctx, "EarningsService.VendorEarnings", trace.WithAttributes(
		attribute.String("vendor.id", vendorID),
	))
	defer span.End()

	if vendorID == "" {
		return entities.VendorEarningsReport{}, fmt.Errorf("%w: empty vendor id", entities.ErrInvalidArgument)
	}

	earnings, err := s.reader.VendorEarnings(ctx, vendorID, period)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "failed to read vendor earnings", slog.String("vendor_id", vendorID), slog.Any("error", err))
		return entities.VendorEarningsReport{}, fmt.Errorf("failed to get vendor earnings: %w", err)
	}

	report := entities.VendorEarningsReport{
		VendorID: vendorID,
		Period:   period,
		Earnings: earnings,
	}
	for _, e := range earnings {
		report.Total += e.Amount
	}
	return report, nil
}

func (s *earningsService) PlatformEarnings(ctx context.Context, period entities.Period) (entities.PlatformEarningsReport, error) {
	ctx, span := tracer.Start(ctx, "EarningsService.PlatformEarnings")
	defer span.End()

	total, err := s.reader.PlatformEarningsTotal(ctx, period)
	if err != nil {
		span.RecordError(err)
		return entities.PlatformEarningsReport{}, fmt.Errorf("failed to get platform earnings: %w", err)
	}
	return entities.PlatformEarningsReport{Period: period, EarningsTotal: total}, nil
}

// PlatformTrend returns one entry per calendar month for the last months
// months, current month included and oldest first. Months without earnings
// are reported as zero.
func (s *earningsService) PlatformTrend(ctx context.Context, months int) ([]entities.MonthlyTotal, error) {
	ctx, span := tracer.Start(ctx, "EarningsService.PlatformTrend", trace.WithAttributes(
		attribute.Int("months", months),
	))
	defer span.End()

	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 0 || months > 120 {
		return nil, fmt.Errorf("%w: months must be between 1 and 120", entities.ErrInvalidArgument)
	}

	from := entities.MonthStart(s.now()).AddDate(0, -(months - 1), 0)
	totals, err := s.reader.PlatformMonthlyTotals(ctx, from)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get platform trend: %w", err)
	}

	byMonth := make(map[time.Time]entities.EarningsTotal, len(totals))
	for _, t := range totals {
		byMonth[entities.MonthStart(t.Month)] = t.EarningsTotal
	}

	trend := make([]entities.MonthlyTotal, 0, months)
	for i := 0; i < months; i++ {
		month := from.AddDate(0, i, 0)
		trend = append(trend, entities.MonthlyTotal{Month: month, EarningsTotal: byMonth[month]})
	}
	return trend, nil
}
