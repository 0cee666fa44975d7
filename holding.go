package stocktracker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is a position in a single symbol.
type Holding struct {
	Symbol    string
	Shares    Quantity
	CostBasis Money // average cost per share, not the total cost.
}

// NormalizeSymbol returns the canonical form of a symbol: trimmed and uppercase.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Normalize converts a raw entry, as found in a holdings file, into a Holding.
//
// The symbol is trimmed and uppercased. "shares" and "price" (the cost basis
// per share) accept JSON numbers and numeric strings; anything missing, null or
// not numeric reads as 0. Nothing is rejected here, validation only happens
// when new data is created, see [Holdings.Upsert].
func Normalize(raw map[string]any, currency string) Holding {
	var symbol string
	switch v := raw["symbol"].(type) {
	case nil:
	case string:
		symbol = v
	default:
		symbol = fmt.Sprint(v)
	}
	return Holding{
		Symbol:    NormalizeSymbol(symbol),
		Shares:    Quantity{value: coerce(raw["shares"])},
		CostBasis: Money{value: coerce(raw["price"]), cur: currency},
	}
}

// coerce reads a loosely typed JSON value as a number, 0 when it can't.
func coerce(v any) decimal.Decimal {
	switch v := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := parseDecimal(v)
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// Raw returns the holding in the raw form accepted by [Normalize].
func (h Holding) Raw() map[string]any {
	return map[string]any{
		"symbol": h.Symbol,
		"shares": json.Number(h.Shares.String()),
		"price":  json.Number(h.CostBasis.Decimal().String()),
	}
}

// CostTotal is the amount paid for the whole position.
func (h Holding) CostTotal() Money { return h.CostBasis.Mul(h.Shares) }

// merge combines a lot into h using a weighted average cost basis.
//
// The cost basis is only recomputed when the resulting shares are positive.
func (h Holding) merge(shares Quantity, costBasis Money) Holding {
	total := h.Shares.Add(shares)
	if total.IsPositive() {
		paid := h.CostTotal().Add(costBasis.Mul(shares))
		h.CostBasis = paid.Div(total)
	}
	h.Shares = total
	return h
}

// MarshalJSON writes the holding in the persisted field order: symbol, shares, price.
func (h Holding) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol string      `json:"symbol"`
		Shares Quantity    `json:"shares"`
		Price  json.Number `json:"price"`
	}{h.Symbol, h.Shares, json.Number(h.CostBasis.Decimal().String())})
}

func (h Holding) String() string {
	return fmt.Sprintf("%s: %s shares @ %s", h.Symbol, h.Shares, h.CostBasis)
}
