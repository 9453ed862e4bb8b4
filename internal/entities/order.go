package entities

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// LineItem is a snapshot of an offering taken when the order was placed.
// Prices are never re-read from the catalog.
type LineItem struct {
	OfferingID string
	Name       string
	UnitPrice  int64
	Quantity   int
}

func (i LineItem) Total() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

type Order struct {
	ID string
	// Number is the human readable sequence string, e.g. ORD202600001.
	Number     string
	CustomerID string
	VendorID   string

	Items []LineItem
	// TotalAmount is in minor currency units and fixed at creation.
	TotalAmount int64

	Status        Status
	PaymentStatus PaymentStatus

	// FulfilledAt is set the first time the order becomes fulfilled and is
	// never cleared afterwards.
	FulfilledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

func (o Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		names = append(names, it.Name)
	}
	return names
}

func TotalOf(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Total()
	}
	return total
}

// VisibleTo reports whether the actor may read the order.
func (o Order) VisibleTo(actor Actor) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleVendor:
		return o.VendorID == actor.ID
	case RoleCustomer:
		return o.CustomerID == actor.ID
	}
	return false
}

type Actor struct {
	ID   string
	Role Role
}

type TransitionRequest struct {
	OrderID   string
	ActorID   string
	ActorRole Role
	Target    Status
}

type TransitionResult struct {
	Order    Order
	Previous Status
}

// Changed is false for idempotent re-applications of the current status.
func (r TransitionResult) Changed() bool {
	return r.Previous != r.Order.Status
}
