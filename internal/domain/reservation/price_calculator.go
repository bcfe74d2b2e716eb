package reservation

import (
	"errors"

	"courtdesk/internal/domain/money"
)

var ErrNoRateForCategory = errors.New("no hourly rate configured for category")

// PriceCalculator resolves the total price of a booking.
type PriceCalculator interface {
	Calculate(category Category, timeRange TimeRange) (money.Money, error)
}

// HourlyPriceCalculator charges a per-category hourly rate multiplied by the
// ceiling hour count of the range. Partial hours bill as a full hour.
type HourlyPriceCalculator struct {
	rates map[Category]money.Money
}

func NewHourlyPriceCalculator(rates map[Category]money.Money) *HourlyPriceCalculator {
	return &HourlyPriceCalculator{rates: rates}
}

func (c *HourlyPriceCalculator) Calculate(category Category, timeRange TimeRange) (money.Money, error) {
	rate, ok := c.rates[category]
	if !ok {
		return money.Zero(), ErrNoRateForCategory
	}
	return rate.MulInt(int64(timeRange.Hours())), nil
}
