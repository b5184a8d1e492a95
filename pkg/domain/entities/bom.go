package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineSpec is the product, unit and quantity a move is derived from
type LineSpec struct {
	Product  *Product
	UOM      *UnitOfMeasure
	Quantity decimal.Decimal
}

// BOMEntry represents a single input or output line of a Bill of Materials
type BOMEntry struct {
	Product  *Product
	UOM      *UnitOfMeasure
	Quantity decimal.Decimal
}

// NewBOMEntry creates a validated BOMEntry
func NewBOMEntry(product *Product, uom *UnitOfMeasure, quantity decimal.Decimal) (*BOMEntry, error) {
	if product == nil {
		return nil, fmt.Errorf("product cannot be nil")
	}
	if uom == nil {
		return nil, fmt.Errorf("unit of measure cannot be nil")
	}
	if product.DefaultUOM != nil && product.DefaultUOM.Category != uom.Category {
		return nil, fmt.Errorf("unit %s is not compatible with product %s", uom.Symbol, product.Code)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive, got %s", quantity)
	}

	return &BOMEntry{
		Product:  product,
		UOM:      uom,
		Quantity: quantity,
	}, nil
}

// ComputeQuantity scales the entry quantity by factor, rounded to the entry's unit
func (e *BOMEntry) ComputeQuantity(factor decimal.Decimal) decimal.Decimal {
	return e.UOM.Round(e.Quantity.Mul(factor))
}

// Line returns the entry's product and unit with the given quantity
func (e *BOMEntry) Line(quantity decimal.Decimal) LineSpec {
	return LineSpec{
		Product:  e.Product,
		UOM:      e.UOM,
		Quantity: quantity,
	}
}

// BOM is a recipe relating produced items (Outputs) to consumed items (Inputs)
type BOM struct {
	ID      string
	Name    string
	Inputs  []*BOMEntry
	Outputs []*BOMEntry
}

// ComputeFactor returns the scaling coefficient for producing quantity of product
// expressed in uom. The first output carrying product is the reference; a
// product the BOM does not output yields a zero factor.
func (b *BOM) ComputeFactor(product *Product, quantity decimal.Decimal, uom *UnitOfMeasure) (decimal.Decimal, error) {
	if product == nil {
		return decimal.Zero, nil
	}
	for _, output := range b.Outputs {
		if output.Product.ID != product.ID {
			continue
		}
		converted, err := ComputeQty(uom, quantity, output.UOM, false)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to compute factor for %s: %w", product.Code, err)
		}
		factor := converted.Div(output.Quantity)
		if factor.IsNegative() {
			return decimal.Zero, nil
		}
		return factor, nil
	}
	return decimal.Zero, nil
}

// IsEmpty reports whether the BOM declares no entries at all
func (b *BOM) IsEmpty() bool {
	return len(b.Inputs) == 0 && len(b.Outputs) == 0
}
