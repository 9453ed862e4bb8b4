package commission

import (
	"fmt"

	"github.com/SergeyBogomolovv/order-ledger/internal/entities"
	"github.com/shopspring/decimal"
)

// DefaultRate is the platform's share of every fulfilled order.
var DefaultRate = decimal.RequireFromString("0.05")

// Policy splits an order total into the vendor's and the platform's share.
// The platform share is rounded half-up to a whole minor unit and the vendor
// share is whatever remains, so the two always add up to the total.
type Policy struct {
	rate decimal.Decimal
}

func NewPolicy(rate decimal.Decimal) (Policy, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Policy{}, fmt.Errorf("%w: commission rate %s out of [0, 1]", entities.ErrInvalidArgument, rate)
	}
	return Policy{rate: rate}, nil
}

func Default() Policy {
	return Policy{rate: DefaultRate}
}

func (p Policy) Rate() decimal.Decimal {
	return p.rate
}

func (p Policy) Split(total int64) (vendorShare, platformShare int64, err error) {
	if total < 0 {
		return 0, 0, fmt.Errorf("%w: negative order total %d", entities.ErrInvalidArgument, total)
	}

	// Round rounds half away from zero, which is half-up for non-negative values.
	platformShare = decimal.NewFromInt(total).Mul(p.rate).Round(0).IntPart()
	vendorShare = total - platformShare
	return vendorShare, platformShare, nil
}
