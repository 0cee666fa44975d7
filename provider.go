package stocktracker

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource returns the latest known market price of a symbol.
//
// Any error means the price is unavailable, whatever the reason (network,
// unknown symbol, unreadable answer).
type PriceSource interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// PriceFunc adapts an ordinary function into a PriceSource.
type PriceFunc func(ctx context.Context, symbol string) (decimal.Decimal, error)

func (f PriceFunc) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return f(ctx, symbol)
}
