package pnl

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrEmptyRateCache is returned when a conversion is requested but no rate
// was ever recorded. Any other lookup miss degrades to the latest known rate.
var ErrEmptyRateCache = errors.New("rate cache is empty")

// RateCache is a date-indexed cache of conversion rates into the base
// currency (how many base units one foreign unit is worth).
//
// It is append-only and chronologically ordered by construction, so the
// last-inserted entry is the definitionally most current rate; Latest makes
// that explicit instead of relying on incidental map iteration order.
// The engine only reads it.
type RateCache struct {
	dates []Date
	rates map[Date]decimal.Decimal
}

func NewRateCache() *RateCache {
	return &RateCache{rates: make(map[Date]decimal.Decimal)}
}

// Add records the rate for a date. Re-adding a date updates the rate in
// place without disturbing the chronological order.
func (c *RateCache) Add(on Date, rate decimal.Decimal) {
	if _, ok := c.rates[on]; !ok {
		c.dates = append(c.dates, on)
	}
	c.rates[on] = rate
}

// Len returns the number of dated rates in the cache.
func (c *RateCache) Len() int { return len(c.dates) }

// Dates returns the dates of the cache in insertion order.
func (c *RateCache) Dates() []Date {
	out := make([]Date, len(c.dates))
	copy(out, c.dates)
	return out
}

// Rate returns the rate recorded for the given date.
func (c *RateCache) Rate(on Date) (decimal.Decimal, bool) {
	rate, ok := c.rates[on]
	return rate, ok
}

// Latest returns the most recent known rate and its date.
func (c *RateCache) Latest() (Date, decimal.Decimal, error) {
	if len(c.dates) == 0 {
		return Date{}, decimal.Decimal{}, ErrEmptyRateCache
	}
	on := c.dates[len(c.dates)-1]
	return on, c.rates[on], nil
}

// Convert converts an amount of foreign currency into the base currency
// using the rate for the given date, falling back to the latest known rate
// when that date has none. A zero amount converts to zero without touching
// the cache; an empty cache is the only error.
func (c *RateCache) Convert(on Date, amount Money) (Money, error) {
	if amount.IsZero() {
		return CAD(0), nil
	}
	rate, ok := c.Rate(on)
	if !ok {
		var err error
		_, rate, err = c.Latest()
		if err != nil {
			return Money{}, err
		}
	}
	return M(amount.value.Mul(rate), BaseCurrency), nil
}
