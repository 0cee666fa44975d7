package stocktracker

import (
	"fmt"
)

// ValidationError reports an invalid input to [Holdings.Upsert]. The store is
// left untouched when it is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// validateLot checks a new lot before it enters the store.
func validateLot(symbol string, shares Quantity, costBasis Money) error {
	if symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if !shares.IsPositive() {
		return &ValidationError{Field: "shares", Value: shares.String(), Reason: "must be > 0"}
	}
	if costBasis.IsNegative() {
		return &ValidationError{Field: "cost", Value: costBasis.Decimal().String(), Reason: "cannot be negative"}
	}
	return nil
}
