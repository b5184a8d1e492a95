package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testUnits(t *testing.T) (unit, dozen, kg, gram *UnitOfMeasure) {
	t.Helper()
	var err error
	if unit, err = NewUnitOfMeasure("u", "u", "units", decimal.NewFromInt(1), decimal.NewFromInt(1)); err != nil {
		t.Fatalf("unit: %v", err)
	}
	if dozen, err = NewUnitOfMeasure("dozen", "dz", "units", decimal.NewFromInt(12), decimal.RequireFromString("0.01")); err != nil {
		t.Fatalf("dozen: %v", err)
	}
	if kg, err = NewUnitOfMeasure("kg", "kg", "weight", decimal.NewFromInt(1), decimal.RequireFromString("0.001")); err != nil {
		t.Fatalf("kg: %v", err)
	}
	if gram, err = NewUnitOfMeasure("g", "g", "weight", decimal.RequireFromString("0.001"), decimal.NewFromInt(1)); err != nil {
		t.Fatalf("g: %v", err)
	}
	return unit, dozen, kg, gram
}

func TestBOMEntry_Validation(t *testing.T) {
	unit, _, kg, _ := testUnits(t)
	product, err := NewProduct("p1", "WIDGET", "Widget", Goods, unit, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Expected valid product creation to succeed: %v", err)
	}

	entry, err := NewBOMEntry(product, unit, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("Expected valid BOM entry creation to succeed: %v", err)
	}
	if !entry.Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Expected quantity 2, got %s", entry.Quantity)
	}

	testCases := []struct {
		name        string
		product     *Product
		uom         *UnitOfMeasure
		quantity    decimal.Decimal
		expectError string
	}{
		{"nil product", nil, unit, decimal.NewFromInt(1), "product cannot be nil"},
		{"nil uom", product, nil, decimal.NewFromInt(1), "unit of measure cannot be nil"},
		{"incompatible uom", product, kg, decimal.NewFromInt(1), "unit kg is not compatible with product WIDGET"},
		{"zero quantity", product, unit, decimal.Zero, "quantity must be positive, got 0"},
		{"negative quantity", product, unit, decimal.NewFromInt(-3), "quantity must be positive, got -3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBOMEntry(tc.product, tc.uom, tc.quantity)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestBOMEntry_ComputeQuantity(t *testing.T) {
	unit, dozen, _, _ := testUnits(t)
	product, _ := NewProduct("p1", "BOLT", "Bolt", Goods, unit, decimal.NewFromInt(1))

	tests := []struct {
		name     string
		uom      *UnitOfMeasure
		quantity string
		factor   string
		expected string
	}{
		{"whole units", unit, "2", "3", "6"},
		{"rounded to unit", unit, "3", "0.5", "2"},
		{"dozen keeps two decimals", dozen, "1", "0.333333", "0.33"},
		{"zero factor", unit, "4", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewBOMEntry(product, tt.uom, decimal.RequireFromString(tt.quantity))
			if err != nil {
				t.Fatalf("NewBOMEntry: %v", err)
			}
			got := entry.ComputeQuantity(decimal.RequireFromString(tt.factor))
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestBOM_ComputeFactor(t *testing.T) {
	unit, dozen, _, _ := testUnits(t)
	widget, _ := NewProduct("p1", "WIDGET", "Widget", Goods, unit, decimal.NewFromInt(100))
	part, _ := NewProduct("p2", "PART", "Part", Goods, unit, decimal.NewFromInt(10))
	other, _ := NewProduct("p3", "OTHER", "Other", Goods, unit, decimal.NewFromInt(10))

	output, _ := NewBOMEntry(widget, unit, decimal.NewFromInt(2))
	input, _ := NewBOMEntry(part, unit, decimal.NewFromInt(4))
	bom := &BOM{ID: "b1", Name: "Widget", Inputs: []*BOMEntry{input}, Outputs: []*BOMEntry{output}}

	factor, err := bom.ComputeFactor(widget, decimal.NewFromInt(6), unit)
	if err != nil {
		t.Fatalf("ComputeFactor failed: %v", err)
	}
	if !factor.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected factor 3, got %s", factor)
	}

	factor, err = bom.ComputeFactor(widget, decimal.NewFromInt(1), dozen)
	if err != nil {
		t.Fatalf("ComputeFactor failed: %v", err)
	}
	if !factor.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected factor 6 for one dozen, got %s", factor)
	}

	factor, err = bom.ComputeFactor(other, decimal.NewFromInt(5), unit)
	if err != nil {
		t.Fatalf("ComputeFactor failed: %v", err)
	}
	if !factor.IsZero() {
		t.Errorf("Expected zero factor for a product the BOM does not output, got %s", factor)
	}

	if bom.IsEmpty() {
		t.Error("Expected BOM with entries not to be empty")
	}
	if !(&BOM{}).IsEmpty() {
		t.Error("Expected BOM without entries to be empty")
	}
}
