package stocktracker

import (
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// parseDecimal reads a loosely formatted number ("1 234,5", " 12.00 ").
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	return decimal.NewFromString(s)
}

// Quantity is an exact number of shares.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a user provided number of shares.
func ParseQuantity(s string) (Quantity, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: d}, nil
}

func (q Quantity) Decimal() decimal.Decimal        { return q.value }
func (q Quantity) Equal(p Quantity) bool           { return q.value.Equal(p.value) }
func (q Quantity) LessThan(quantity Quantity) bool { return q.value.LessThan(quantity.value) }
func (q Quantity) Add(p Quantity) Quantity         { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity         { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) IsNegative() bool                { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool                { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                    { return q.value.IsZero() }
func (q Quantity) String() string                  { return q.value.String() }

// MarshalJSON writes the quantity as a bare JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.value.String()), nil
}

func (q *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return q.value.UnmarshalJSON(decimalBytes)
}
