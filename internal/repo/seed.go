package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
)

type seedItem struct {
	OfferingID string `json:"offering_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

type seedOrder struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	CustomerID string     `json:"customer_id"`
	VendorID   string     `json:"vendor_id"`
	Items      []seedItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, o entities.Order) error
}

// LoadSeedFile creates the orders listed in a JSON file. Every order
// starts as created with a pending payment and the total is derived from
// its items. Orders that already exist are kept as they are.
func LoadSeedFile(ctx context.Context, path string, dst OrderCreator) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed []seedOrder
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, so := range seed {
		if so.ID == "" || so.VendorID == "" {
			return 0, fmt.Errorf("%w: seed order needs id and vendor_id", entities.ErrInvalidArgument)
		}

		items := make([]entities.LineItem, 0, len(so.Items))
		for _, it := range so.Items {
			items = append(items, entities.LineItem{
				OfferingID: it.OfferingID,
				Name:       it.Name,
				UnitPrice:  it.UnitPrice,
				Quantity:   it.Quantity,
			})
		}

		created := so.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}

		order := entities.Order{
			ID:            so.ID,
			Number:        so.Number,
			CustomerID:    so.CustomerID,
			VendorID:      so.VendorID,
			Items:         items,
			TotalAmount:   entities.TotalOf(items),
			Status:        entities.StatusCreated,
			PaymentStatus: entities.PaymentPending,
			CreatedAt:     created.UTC(),
			UpdatedAt:     created.UTC(),
		}
		if err := dst.CreateOrder(ctx, order); err != nil {
			return 0, err
		}
	}

	return len(seed), nil
}
