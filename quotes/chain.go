package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/stocktracker"
	"github.com/shopspring/decimal"
)

// Chain tries each source in order and returns the first price found.
type Chain []stocktracker.PriceSource

func (c Chain) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if len(c) == 0 {
		return decimal.Zero, errors.New("no price source configured")
	}
	var errs []error
	for _, src := range c {
		p, err := src.Price(ctx, symbol)
		if err == nil {
			return p, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return decimal.Zero, errors.Join(errs...)
}

// Static is a fixed table of prices, by symbol.
type Static map[string]decimal.Decimal

func (s Static) Price(_ context.Context, symbol string) (decimal.Decimal, error) {
	p, ok := s[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("static %s: %w", symbol, errUnknownSymbol)
	}
	return p, nil
}
