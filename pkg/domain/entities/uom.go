package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitOfMeasure represents a unit a quantity can be expressed in.
// Factor is the number of reference units of the category in one unit of this
// measure (kg: 1, g: 0.001, dozen: 12).
type UnitOfMeasure struct {
	ID       string
	Symbol   string
	Category string
	Factor   decimal.Decimal
	Rounding decimal.Decimal
}

// NewUnitOfMeasure creates a validated UnitOfMeasure
func NewUnitOfMeasure(id, symbol, category string, factor, rounding decimal.Decimal) (*UnitOfMeasure, error) {
	if id == "" {
		return nil, fmt.Errorf("unit of measure id cannot be empty")
	}
	if symbol == "" {
		return nil, fmt.Errorf("unit of measure symbol cannot be empty")
	}
	if category == "" {
		return nil, fmt.Errorf("unit of measure category cannot be empty")
	}
	if !factor.IsPositive() {
		return nil, fmt.Errorf("unit of measure factor must be positive, got %s", factor)
	}
	if rounding.IsNegative() {
		return nil, fmt.Errorf("unit of measure rounding cannot be negative, got %s", rounding)
	}

	return &UnitOfMeasure{
		ID:       id,
		Symbol:   symbol,
		Category: category,
		Factor:   factor,
		Rounding: rounding,
	}, nil
}

// Round rounds a quantity to the nearest multiple of the unit's rounding.
func (u *UnitOfMeasure) Round(quantity decimal.Decimal) decimal.Decimal {
	return roundTo(quantity, u.Rounding)
}

// ComputeQty converts quantity from one unit to another of the same category.
// The result is rounded to the target unit when round is true.
func ComputeQty(from *UnitOfMeasure, quantity decimal.Decimal, to *UnitOfMeasure, round bool) (decimal.Decimal, error) {
	if from == nil || to == nil || from.ID == to.ID {
		return quantity, nil
	}
	if from.Category != to.Category {
		return decimal.Zero, fmt.Errorf("cannot convert %s to %s: incompatible categories %s and %s",
			from.Symbol, to.Symbol, from.Category, to.Category)
	}

	converted := quantity.Mul(from.Factor).Div(to.Factor)
	if round {
		converted = to.Round(converted)
	}
	return converted, nil
}

// ComputePrice converts a price per from unit into a price per to unit.
func ComputePrice(from *UnitOfMeasure, price decimal.Decimal, to *UnitOfMeasure) (decimal.Decimal, error) {
	if from == nil || to == nil || from.ID == to.ID {
		return price, nil
	}
	if from.Category != to.Category {
		return decimal.Zero, fmt.Errorf("cannot convert price from %s to %s: incompatible categories %s and %s",
			from.Symbol, to.Symbol, from.Category, to.Category)
	}
	return price.Mul(to.Factor).Div(from.Factor), nil
}

// roundTo rounds value half away from zero to a multiple of step; a zero step leaves value untouched.
func roundTo(value, step decimal.Decimal) decimal.Decimal {
	if step.IsZero() {
		return value
	}
	return value.Div(step).Round(0).Mul(step)
}
