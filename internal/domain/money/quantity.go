package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrQuantityNotPositive = errors.New("quantity must be positive")

// Quantity is a normalized item quantity. Units that allow fractions keep
// four decimal places in storage and two for display; unit-only quantities
// are rounded to whole numbers.
type Quantity struct {
	d             decimal.Decimal
	allowFraction bool
}

// NormalizeQuantity quantizes a raw quantity per the unit's fraction rule,
// half-up like all other rounding in this package.
func NormalizeQuantity(d decimal.Decimal, allowFraction bool) Quantity {
	places := int32(0)
	if allowFraction {
		places = 4
	}
	return Quantity{d: d.Round(places), allowFraction: allowFraction}
}

func QuantityFromFloat(v float64, allowFraction bool) Quantity {
	return NormalizeQuantity(decimal.NewFromFloat(v), allowFraction)
}

func (q Quantity) Decimal() decimal.Decimal { return q.d }
func (q Quantity) IsPositive() bool         { return q.d.IsPositive() }

// Display renders the quantity for receipts: fractions at 2 places,
// whole units without a decimal point.
func (q Quantity) Display() string {
	if q.allowFraction {
		return q.d.Round(2).String()
	}
	return q.d.Round(0).String()
}

// Subtotal computes quantity x unit price as rounded Money.
func (q Quantity) Subtotal(unitPrice Money) Money {
	return Round(q.d.Mul(unitPrice.Decimal()))
}
