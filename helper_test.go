package stocktracker

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// closeTo compares decimals with a tolerance suitable for repeated divisions.
func closeTo(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(decimal.New(1, -9))
}

var errNoPrice = errors.New("no price")

// fakeSource is a PriceSource backed by a map that counts lookups.
type fakeSource struct {
	mu     sync.Mutex
	prices map[string]float64
	calls  map[string]int
}

func newFakeSource(prices map[string]float64) *fakeSource {
	return &fakeSource{prices: prices, calls: make(map[string]int)}
}

func (s *fakeSource) Price(_ context.Context, symbol string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[symbol]++
	p, ok := s.prices[symbol]
	if !ok {
		return decimal.Zero, errNoPrice
	}
	return decimal.NewFromFloat(p), nil
}
