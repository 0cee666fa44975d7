package quotes

import (
	"context"
	"errors"
	"testing"

	finance "github.com/piquette/finance-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Price(t *testing.T) {
	first := Static{"AAPL": decimal.NewFromInt(190)}
	second := Static{"AAPL": decimal.NewFromInt(1), "MSFT": decimal.NewFromInt(410)}
	chain := Chain{first, second}

	price, err := chain.Price(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(190)))

	price, err = chain.Price(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(410)))

	_, err = chain.Price(context.Background(), "GOOG")
	assert.ErrorIs(t, err, errUnknownSymbol)

	_, err = Chain{}.Price(context.Background(), "GOOG")
	assert.Error(t, err)
}

func TestYahoo_Price(t *testing.T) {
	quotes := map[string]*finance.Quote{
		"AAPL":   {Symbol: "AAPL", RegularMarketPrice: 189.84, RegularMarketPreviousClose: 188.1},
		"CLOSED": {Symbol: "CLOSED", RegularMarketPreviousClose: 42.5},
		"EMPTY":  {Symbol: "EMPTY"},
	}
	y := &Yahoo{get: func(symbol string) (*finance.Quote, error) {
		if symbol == "BROKEN" {
			return nil, errors.New("remote failure")
		}
		return quotes[symbol], nil
	}}

	price, err := y.Price(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("189.84")), "price = %v", price)

	price, err = y.Price(context.Background(), "CLOSED")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("42.5")), "price = %v", price)

	for _, symbol := range []string{"EMPTY", "UNKNOWN", "BROKEN"} {
		_, err := y.Price(context.Background(), symbol)
		assert.Error(t, err, symbol)
	}
}

func TestYahoo_PriceHonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	y := &Yahoo{get: func(symbol string) (*finance.Quote, error) {
		<-block
		return nil, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := y.Price(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
}
