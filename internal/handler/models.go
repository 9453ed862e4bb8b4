package handler

import (
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
)

// Order представляет заказ
type Order struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerID    string     `json:"customer_id"`
	VendorID      string     `json:"vendor_id"`
	Items         []LineItem `json:"items"`
	TotalAmount   int64      `json:"total_amount"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	FulfilledAt   *time.Time `json:"fulfilled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Version       int64      `json:"version"`
}

type LineItem struct {
	OfferingID string `json:"offering_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TransitionResponse struct {
	Order          Order  `json:"order"`
	PreviousStatus string `json:"previous_status"`
	Changed        bool   `json:"changed"`
}

type Period struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type VendorEarning struct {
	OrderID      string    `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	Amount       int64     `json:"amount"`
	ItemNames    []string  `json:"item_names"`
	CompletedAt  time.Time `json:"completed_at"`
	EarningMonth string    `json:"earning_month"`
	EarningYear  int       `json:"earning_year"`
}

type VendorEarningsReport struct {
	VendorID string          `json:"vendor_id"`
	Period   Period          `json:"period"`
	Total    int64           `json:"total"`
	Earnings []VendorEarning `json:"earnings"`
}

type PlatformEarningsReport struct {
	Period Period `json:"period"`
	Total  int64  `json:"total"`
	Count  int    `json:"count"`
}

type MonthlyTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

// StatusCommand is a status change requested over Kafka.
type StatusCommand struct {
	OrderID   string `json:"order_id" validate:"required"`
	ActorID   string `json:"actor_id" validate:"required"`
	ActorRole string `json:"actor_role" validate:"required,oneof=customer vendor admin"`
	Status    string `json:"status" validate:"required"`
}

// StatusChangedEvent is published after every transition that changed an
// order's status.
type StatusChangedEvent struct {
	EventID        string    `json:"event_id"`
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	VendorID       string    `json:"vendor_id"`
	CustomerID     string    `json:"customer_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItem{
			OfferingID: it.OfferingID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		})
	}

	return Order{
		ID:            o.ID,
		Number:        o.Number,
		CustomerID:    o.CustomerID,
		VendorID:      o.VendorID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		FulfilledAt:   o.FulfilledAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.Version,
	}
}

func TransitionEntityToJSON(r entities.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Order:          OrderEntityToJSON(r.Order),
		PreviousStatus: string(r.Previous),
		Changed:        r.Changed(),
	}
}

func PeriodEntityToJSON(p entities.Period) Period {
	var res Period
	if !p.From.IsZero() {
		from := p.From
		res.From = &from
	}
	if !p.To.IsZero() {
		to := p.To
		res.To = &to
	}
	return res
}

func VendorReportEntityToJSON(r entities.VendorEarningsReport) VendorEarningsReport {
	earnings := make([]VendorEarning, 0, len(r.Earnings))
	for _, e := range r.Earnings {
		earnings = append(earnings, VendorEarning{
			OrderID:      e.OrderID,
			OrderNumber:  e.OrderNumber,
			Amount:       e.Amount,
			ItemNames:    e.ItemNames,
			CompletedAt:  e.CompletedAt,
			EarningMonth: e.EarningMonth,
			EarningYear:  e.EarningYear,
		})
	}

	return VendorEarningsReport{
		VendorID: r.VendorID,
		Period:   PeriodEntityToJSON(r.Period),
		Total:    r.Total,
		Earnings: earnings,
	}
}

func PlatformReportEntityToJSON(r entities.PlatformEarningsReport) PlatformEarningsReport {
	return PlatformEarningsReport{
		Period: PeriodEntityToJSON(r.Period),
		Total:  r.Total,
		Count:  r.Count,
	}
}

func TrendEntityToJSON(totals []entities.MonthlyTotal) []MonthlyTotal {
	res := make([]MonthlyTotal, 0, len(totals))
	for _, t := range totals {
		res = append(res, MonthlyTotal{
			Month: t.Month.Format("2006-01"),
			Total: t.Total,
			Count: t.Count,
		})
	}
	return res
}

func StatusChangedEntityToJSON(r entities.TransitionResult, eventID string, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		EventID:        eventID,
		OrderID:        r.Order.ID,
		OrderNumber:    r.Order.Number,
		VendorID:       r.Order.VendorID,
		CustomerID:     r.Order.CustomerID,
		PreviousStatus: string(r.Previous),
		Status:         string(r.Order.Status),
		OccurredAt:     at.UTC(),
	}
}
