package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"

	"github.com/lib/pq"
)

type Order struct {
	ID            string       `db:"id"`
	Number        string       `db:"number"`
	CustomerID    string       `db:"customer_id"`
	VendorID      string       `db:"vendor_id"`
	TotalAmount   int64        `db:"total_amount"`
	Status        string       `db:"status"`
	PaymentStatus string       `db:"payment_status"`
	FulfilledAt   sql.NullTime `db:"fulfilled_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
	Version       int64        `db:"version"`
}

type Item struct {
	OrderID    string `db:"order_id"`
	Position   int    `db:"position"`
	OfferingID string `db:"offering_id"`
	Name       string `db:"name"`
	UnitPrice  int64  `db:"unit_price"`
	Quantity   int    `db:"quantity"`
}

type VendorEarning struct {
	OrderID      string         `db:"order_id"`
	OrderNumber  string         `db:"order_number"`
	VendorID     string         `db:"vendor_id"`
	Amount       int64          `db:"amount"`
	ItemNames    pq.StringArray `db:"item_names"`
	CompletedAt  time.Time      `db:"completed_at"`
	EarningMonth string         `db:"earning_month"`
	EarningYear  int            `db:"earning_year"`
}

type MonthlyTotal struct {
	Month time.Time `db:"month"`
	Total int64     `db:"total"`
	Count int       `db:"count"`
}

type Total struct {
	Total int64 `db:"total"`
	Count int   `db:"count"`
}

var (
	orderColumns = []string{
		"id", "number", "customer_id", "vendor_id", "total_amount", "status",
		"payment_status", "fulfilled_at", "created_at", "updated_at", "version",
	}
	itemColumns = []string{
		"order_id", "position", "offering_id", "name", "unit_price", "quantity",
	}
	vendorEarningColumns = []string{
		"order_id", "order_number", "vendor_id", "amount", "item_names",
		"completed_at", "earning_month", "earning_year",
	}
)

func OrderToEntity(o Order, items []Item) entities.Order {
	order := entities.Order{
		ID:            o.ID,
		Number:        o.Number,
		CustomerID:    o.CustomerID,
		VendorID:      o.VendorID,
		TotalAmount:   o.TotalAmount,
		Status:        entities.Status(o.Status),
		PaymentStatus: entities.PaymentStatus(o.PaymentStatus),
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
		Version:       o.Version,
	}
	if o.FulfilledAt.Valid {
		t := o.FulfilledAt.Time.UTC()
		order.FulfilledAt = &t
	}

	if len(items) > 0 {
		order.Items = make([]entities.LineItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, entities.LineItem{
				OfferingID: it.OfferingID,
				Name:       it.Name,
				UnitPrice:  it.UnitPrice,
				Quantity:   it.Quantity,
			})
		}
	}

	return order
}

func VendorEarningToEntity(e VendorEarning) entities.VendorEarning {
	names := []string(e.ItemNames)
	if names == nil {
		names = []string{}
	}
	return entities.VendorEarning{
		OrderID:      e.OrderID,
		OrderNumber:  e.OrderNumber,
		VendorID:     e.VendorID,
		Amount:       e.Amount,
		ItemNames:    names,
		CompletedAt:  e.CompletedAt.UTC(),
		EarningMonth: e.EarningMonth,
		EarningYear:  e.EarningYear,
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
