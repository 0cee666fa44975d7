package quotes

import (
	"context"
	"errors"
	"fmt"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// Yahoo fetches live prices from Yahoo Finance.
type Yahoo struct {
	// get is quote.Get, replaced in tests.
	get func(symbol string) (*finance.Quote, error)
}

// NewYahoo returns a Yahoo Finance price source.
func NewYahoo() *Yahoo {
	return &Yahoo{get: quote.Get}
}

// Price returns the regular market price, or the previous close when the
// market price is missing.
func (y *Yahoo) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	type result struct {
		q   *finance.Quote
		err error
	}
	// quote.Get does not take a context.
	done := make(chan result, 1)
	go func() {
		q, err := y.get(symbol)
		done <- result{q, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("yahoo %s: %w", symbol, ctx.Err())
	case r = <-done:
	}
	if r.err != nil {
		return decimal.Zero, fmt.Errorf("yahoo %s: %w", symbol, r.err)
	}
	if r.q == nil {
		return decimal.Zero, fmt.Errorf("yahoo %s: %w", symbol, errUnknownSymbol)
	}
	for _, p := range []float64{r.q.RegularMarketPrice, r.q.RegularMarketPreviousClose} {
		if p > 0 {
			return decimal.NewFromFloat(p), nil
		}
	}
	return decimal.Zero, fmt.Errorf("yahoo %s: no price in quote", symbol)
}

var errUnknownSymbol = errors.New("unknown symbol")
