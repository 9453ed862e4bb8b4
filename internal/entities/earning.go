package entities

import "time"

// VendorEarning is the vendor's share of a fulfilled order. There is at most
// one per order.
type VendorEarning struct {
	OrderID     string
	OrderNumber string
	VendorID    string
	Amount      int64
	ItemNames   []string
	CompletedAt time.Time

	// reporting keys derived from CompletedAt
	EarningMonth string
	EarningYear  int
}

// PlatformEarning is the commission kept by the platform for a fulfilled
// order. There is at most one per order.
type PlatformEarning struct {
	OrderID          string
	OrderNumber      string
	VendorID         string
	CommissionAmount int64
	RecognizedAt     time.Time
}

func NewVendorEarning(o Order, amount int64, completedAt time.Time) VendorEarning {
	completedAt = completedAt.UTC()
	return VendorEarning{
		OrderID:      o.ID,
		OrderNumber:  o.Number,
		VendorID:     o.VendorID,
		Amount:       amount,
		ItemNames:    o.ItemNames(),
		CompletedAt:  completedAt,
		EarningMonth: completedAt.Format("2006-01"),
		EarningYear:  completedAt.Year(),
	}
}

func NewPlatformEarning(o Order, amount int64, recognizedAt time.Time) PlatformEarning {
	return PlatformEarning{
		OrderID:          o.ID,
		OrderNumber:      o.Number,
		VendorID:         o.VendorID,
		CommissionAmount: amount,
		RecognizedAt:     recognizedAt.UTC(),
	}
}

type VendorEarningsReport struct {
	VendorID string
	Period   Period
	Earnings []VendorEarning
	Total    int64
}

type EarningsTotal struct {
	Total int64
	Count int
}

type PlatformEarningsReport struct {
	Period Period
	EarningsTotal
}

type MonthlyTotal struct {
	// Month is the first instant of the month in UTC.
	Month time.Time
	EarningsTotal
}

// AuditReport counts orders that break the ledger invariants.
type AuditReport struct {
	// fulfilled orders with zero or one earning record
	MissingEarnings int
	// earnings whose order is absent or not fulfilled
	OrphanedEarnings int
	// vendor amount + commission differs from the order total
	SplitMismatches int
}

func (r AuditReport) Consistent() bool {
	return r.MissingEarnings == 0 && r.OrphanedEarnings == 0 && r.SplitMismatches == 0
}
