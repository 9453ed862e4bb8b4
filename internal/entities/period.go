package entities

import (
	"fmt"
	"time"
)

// Period is a half-open time range [From, To). A zero bound is unbounded.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) Contains(t time.Time) bool {
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && !t.Before(p.To) {
		return false
	}
	return true
}

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// PeriodFromFilter resolves a named filter relative to now. Weeks start on
// Monday. An empty filter means all time.
func PeriodFromFilter(filter string, now time.Time) (Period, error) {
	y, m, d := now.Date()
	loc := now.Location()

	switch filter {
	case "", PeriodAll:
		return Period{}, nil
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7
		return Period{From: time.Date(y, m, d-offset, 0, 0, 0, 0, loc)}, nil
	case PeriodMonth:
		return Period{From: time.Date(y, m, 1, 0, 0, 0, 0, loc)}, nil
	case PeriodYear:
		return Period{From: time.Date(y, time.January, 1, 0, 0, 0, 0, loc)}, nil
	}
	return Period{}, fmt.Errorf("%w: unknown period %q", ErrInvalidArgument, filter)
}

// MonthStart truncates t to the first instant of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
