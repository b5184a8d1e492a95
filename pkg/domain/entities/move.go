package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Move represents a single inventory transfer line.
// UnitPrice is left invalid for consumed moves, which keep the default cost basis.
type Move struct {
	ID           uuid.UUID
	ProductionID uuid.UUID
	Product      *Product
	UOM          *UnitOfMeasure
	Quantity     decimal.Decimal
	FromLocation *Location
	ToLocation   *Location
	Company      *Company
	Currency     *Currency
	UnitPrice    decimal.NullDecimal
}

// SetUnitPrice fixes the move's unit price
func (m *Move) SetUnitPrice(price decimal.Decimal) {
	m.UnitPrice = decimal.NullDecimal{Decimal: price, Valid: true}
}

// Value returns quantity × unit price, zero when no price is set
func (m *Move) Value() decimal.Decimal {
	if !m.UnitPrice.Valid {
		return decimal.Zero
	}
	return m.Quantity.Mul(m.UnitPrice.Decimal)
}

// SumValues totals Value over moves
func SumValues(moves []*Move) decimal.Decimal {
	total := decimal.Zero
	for _, m := range moves {
		total = total.Add(m.Value())
	}
	return total
}
