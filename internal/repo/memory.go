package repo

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
)

// MemoryStore keeps orders and earnings in process memory. Each call is
// atomic on its own but there is no transaction spanning several calls, so
// a failed engine run may leave partial writes for the next attempt to
// reconcile.
type MemoryStore struct {
	mu       sync.RWMutex
	orders   map[string]entities.Order
	vendor   map[string]entities.VendorEarning
	platform map[string]entities.PlatformEarning
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:   make(map[string]entities.Order),
		vendor:   make(map[string]entities.VendorEarning),
		platform: make(map[string]entities.PlatformEarning),
	}
}

func (s *MemoryStore) CreateOrder(_ context.Context, o entities.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID]; ok {
		return nil
	}
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

// RemoveOrder physically deletes an order, leaving its earnings in place.
func (s *MemoryStore) RemoveOrder(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, orderID)
}

func (s *MemoryStore) GetOrderByID(_ context.Context, orderID string) (entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

// GetOrderForUpdate is a plain read; serialisation comes from the
// per-order lock and the version check in UpdateOrderStatus.
func (s *MemoryStore) GetOrderForUpdate(ctx context.Context, orderID string) (entities.Order, error) {
	return s.GetOrderByID(ctx, orderID)
}

func (s *MemoryStore) LatestOrders(_ context.Context, count int) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]entities.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, cloneOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if count >= 0 && len(orders) > count {
		orders = orders[:count]
	}
	return orders, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, o entities.Order, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.orders[o.ID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: order %s changed since read", entities.ErrStoreConflict, o.ID)
	}

	current.Status = o.Status
	current.PaymentStatus = o.PaymentStatus
	current.FulfilledAt = cloneTime(o.FulfilledAt)
	current.UpdatedAt = o.UpdatedAt
	current.Version = expectedVersion + 1
	s.orders[o.ID] = current
	return nil
}

func (s *MemoryStore) UpsertVendorEarning(_ context.Context, e entities.VendorEarning) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.vendor[e.OrderID]
	e.ItemNames = slices.Clone(e.ItemNames)
	s.vendor[e.OrderID] = e
	return !exists, nil
}

func (s *MemoryStore) UpsertPlatformEarning(_ context.Context, e entities.PlatformEarning) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.platform[e.OrderID]
	s.platform[e.OrderID] = e
	return !exists, nil
}

func (s *MemoryStore) DeleteVendorEarning(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.vendor[orderID]
	delete(s.vendor, orderID)
	return ok, nil
}

func (s *MemoryStore) DeletePlatformEarning(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.platform[orderID]
	delete(s.platform, orderID)
	return ok, nil
}

func (s *MemoryStore) VendorEarning(orderID string) (entities.VendorEarning, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.vendor[orderID]
	e.ItemNames = slices.Clone(e.ItemNames)
	return e, ok
}

func (s *MemoryStore) PlatformEarning(orderID string) (entities.PlatformEarning, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.platform[orderID]
	return e, ok
}

func (s *MemoryStore) VendorEarnings(_ context.Context, vendorID string, period entities.Period) ([]entities.VendorEarning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.VendorEarning, 0)
	for _, e := range s.vendor {
		if e.VendorID != vendorID || !period.Contains(e.CompletedAt) {
			continue
		}
		e.ItemNames = slices.Clone(e.ItemNames)
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})
	return result, nil
}

func (s *MemoryStore) PlatformEarningsTotal(_ context.Context, period entities.Period) (entities.EarningsTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total entities.EarningsTotal
	for _, e := range s.platform {
		if !period.Contains(e.RecognizedAt) {
			continue
		}
		total.Total += e.CommissionAmount
		total.Count++
	}
	return total, nil
}

func (s *MemoryStore) PlatformMonthlyTotals(_ context.Context, from time.Time) ([]entities.MonthlyTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from = entities.MonthStart(from)
	byMonth := make(map[time.Time]entities.EarningsTotal)
	for _, e := range s.platform {
		if e.RecognizedAt.Before(from) {
			continue
		}
		month := entities.MonthStart(e.RecognizedAt)
		t := byMonth[month]
		t.Total += e.CommissionAmount
		t.Count++
		byMonth[month] = t
	}

	result := make([]entities.MonthlyTotal, 0, len(byMonth))
	for month, t := range byMonth {
		result = append(result, entities.MonthlyTotal{Month: month, EarningsTotal: t})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})
	return result, nil
}

func (s *MemoryStore) Inconsistencies(_ context.Context) (entities.AuditReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var report entities.AuditReport
	for id, o := range s.orders {
		if o.Status != entities.StatusFulfilled {
			continue
		}
		v, hasVendor := s.vendor[id]
		p, hasPlatform := s.platform[id]
		if !hasVendor || !hasPlatform {
			report.MissingEarnings++
			continue
		}
		if v.Amount+p.CommissionAmount != o.TotalAmount {
			report.SplitMismatches++
		}
	}

	seen := make(map[string]struct{}, len(s.vendor))
	for id := range s.vendor {
		seen[id] = struct{}{}
	}
	for id := range s.platform {
		seen[id] = struct{}{}
	}
	for id := range seen {
		if o, ok := s.orders[id]; !ok || o.Status != entities.StatusFulfilled {
			report.OrphanedEarnings++
		}
	}

	return report, nil
}

func cloneOrder(o entities.Order) entities.Order {
	o.Items = slices.Clone(o.Items)
	o.FulfilledAt = cloneTime(o.FulfilledAt)
	return o
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
