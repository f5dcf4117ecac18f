package cache

import (
	"errors"
	"fmt"

	"github.com/dalfonso89/currency-converter-cli/internal/currency"
)

// ErrNotFound is returned by Get when the code has no cached rate.
var ErrNotFound = errors.New("rate not found")

// RateCache holds the most recent rate set, keyed by currency code.
// It is owned by a single goroutine and is not safe for concurrent use.
type RateCache struct {
	order []currency.Code
	base  currency.Code
	rates map[currency.Code]float64
}

// New returns an empty cache that lists rates following order.
func New(order []currency.Code) *RateCache {
	return &RateCache{
		order: order,
		rates: map[currency.Code]float64{},
	}
}

// IsEmpty reports whether the cache has never been populated.
func (c *RateCache) IsEmpty() bool {
	return len(c.rates) == 0
}

// Len returns the number of cached rates, base included.
func (c *RateCache) Len() int {
	return len(c.rates)
}

// ReplaceAll swaps the whole content of the cache for rates, with base pinned to 1.0.
// The previous content is dropped, never merged.
func (c *RateCache) ReplaceAll(base currency.Code, rates map[currency.Code]float64) {
	next := make(map[currency.Code]float64, len(rates)+1)
	for code, rate := range rates {
		next[code] = rate
	}
	next[base] = 1.0

	c.base = base
	c.rates = next
}

// Get returns the cached rate for code.
func (c *RateCache) Get(code currency.Code) (float64, error) {
	rate, ok := c.rates[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return rate, nil
}

// ForEach calls fn for every cached rate. The base comes first when it is not part of the
// canonical order; the remaining codes follow the canonical order and absent codes are skipped.
func (c *RateCache) ForEach(fn func(code currency.Code, rate float64)) {
	if c.IsEmpty() {
		return
	}

	inOrder := false
	for _, code := range c.order {
		if code == c.base {
			inOrder = true
			break
		}
	}
	if !inOrder {
		fn(c.base, c.rates[c.base])
	}

	for _, code := range c.order {
		if rate, ok := c.rates[code]; ok {
			fn(code, rate)
		}
	}
}
