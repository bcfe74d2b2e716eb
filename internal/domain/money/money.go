// Package money provides currency-safe arithmetic for the sales and booking
// core. Every amount that reaches persistence or a ledger row goes through
// Round first; downstream code never does raw float math.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("amount cannot be negative")

// Money is an immutable amount quantized to 2 decimal places, half-up.
type Money struct {
	d decimal.Decimal
}

var (
	zero = decimal.Zero
	cent = decimal.New(1, -2)
)

// Round quantizes an arbitrary decimal to 2 places using round-half-up.
// Amounts in this system are non-negative, so decimal's half-away-from-zero
// rounding is equivalent to half-up.
func Round(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

func FromFloat(v float64) Money {
	return Round(decimal.NewFromFloat(v))
}

func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Round(d), nil
}

func Zero() Money {
	return Money{d: zero}
}

func (m Money) Decimal() decimal.Decimal { return m.d }
func (m Money) Float64() float64         { f, _ := m.d.Float64(); return f }
func (m Money) String() string           { return m.d.StringFixed(2) }

func (m Money) Add(other Money) Money {
	return Round(m.d.Add(other.d))
}

func (m Money) Sub(other Money) Money {
	return Round(m.d.Sub(other.d))
}

func (m Money) MulInt(n int64) Money {
	return Round(m.d.Mul(decimal.NewFromInt(n)))
}

func (m Money) Cmp(other Money) int   { return m.d.Cmp(other.d) }
func (m Money) IsZero() bool          { return m.d.IsZero() }
func (m Money) IsPositive() bool      { return m.d.IsPositive() }
func (m Money) IsNegative() bool      { return m.d.IsNegative() }
func (m Money) LessThan(o Money) bool { return m.d.Cmp(o.d) < 0 }

func (m Money) Abs() Money {
	return Money{d: m.d.Abs()}
}

// ClampNonNegative returns the amount, or zero when it is negative.
// Balances are reported through this so a clamped overpayment can never
// surface as a negative remainder.
func (m Money) ClampNonNegative() Money {
	if m.d.IsNegative() {
		return Zero()
	}
	return m
}

// Min returns the smaller of the two amounts.
func Min(a, b Money) Money {
	if a.d.Cmp(b.d) <= 0 {
		return a
	}
	return b
}

// FormatWith renders the amount with a currency symbol, "S/ 12.50" style.
func (m Money) FormatWith(symbol string) string {
	if symbol == "" {
		symbol = "S/"
	}
	return symbol + " " + m.d.StringFixed(2)
}

// SplitEven divides a total into n parts that sum exactly to the total.
// The rounded base part is repeated and any remainder cents are distributed
// one at a time over the leading parts, so the conservation invariant holds
// for every (total, n).
func SplitEven(total Money, n int) []Money {
	if n <= 0 {
		return nil
	}
	base := Round(total.d.Div(decimal.NewFromInt(int64(n))))
	parts := make([]Money, n)
	for i := range parts {
		parts[i] = base
	}
	distributed := base.MulInt(int64(n))
	remainder := total.Sub(distributed)
	step := cent
	if remainder.IsNegative() {
		step = cent.Neg()
	}
	steps := int(remainder.d.Abs().Div(cent).IntPart())
	for i := 0; i < steps && i < n; i++ {
		parts[i] = Round(parts[i].d.Add(step))
	}
	return parts
}
