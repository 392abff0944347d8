package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is a non-negative fractional lot size. Arithmetic is closed
// under addition; construction rejects negative volumes.
type Quantity struct {
	value decimal.Decimal
}

// NewQuantity validates and wraps a lot size.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, fmt.Errorf("%w: negative quantity %s", ErrInvalidArgument, value.String())
	}
	return Quantity{value: value}, nil
}

// QuantityFromFloat is a convenience constructor for literals in tests and
// strategy parameter decoding.
func QuantityFromFloat(f float64) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(f))
}

func (q Quantity) Decimal() decimal.Decimal { return q.value }

func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

func (q Quantity) IsZero() bool { return q.value.IsZero() }

func (q Quantity) String() string { return q.value.String() }
