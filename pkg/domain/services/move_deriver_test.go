package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/domain/entities"
)

func TestStockMoveDeriver_Derive(t *testing.T) {
	unit, _ := entities.NewUnitOfMeasure("u", "u", "units", decimal.NewFromInt(1), decimal.NewFromInt(1))
	usd, _ := entities.NewCurrency("USD", decimal.RequireFromString("0.01"))
	company := &entities.Company{ID: "c1", Name: "ACME", Currency: usd}
	storage := &entities.Location{ID: "stor", Code: "STOR", Type: entities.StorageLocation}
	prod := &entities.Location{ID: "prod", Code: "PROD", Type: entities.ProductionLocation}

	goods, _ := entities.NewProduct("p1", "PART", "Part", entities.Goods, unit, decimal.NewFromInt(10))
	service, _ := entities.NewProduct("p2", "LABOUR", "Labour", entities.Service, unit, decimal.NewFromInt(10))

	deriver := NewStockMoveDeriver()

	move := deriver.Derive(storage, prod, company, entities.LineSpec{Product: goods, UOM: unit, Quantity: decimal.NewFromInt(3)})
	if move == nil {
		t.Fatal("Expected move for stockable product")
	}
	if move.FromLocation != storage || move.ToLocation != prod {
		t.Errorf("Expected move from STOR to PROD, got %v -> %v", move.FromLocation, move.ToLocation)
	}
	if !move.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected quantity 3, got %s", move.Quantity)
	}
	if move.Currency != usd {
		t.Error("Expected move currency to be the company currency")
	}
	if move.UnitPrice.Valid {
		t.Error("Expected derived move without unit price")
	}

	tests := []struct {
		name string
		line entities.LineSpec
	}{
		{"zero quantity", entities.LineSpec{Product: goods, UOM: unit, Quantity: decimal.Zero}},
		{"negative quantity", entities.LineSpec{Product: goods, UOM: unit, Quantity: decimal.NewFromInt(-1)}},
		{"service product", entities.LineSpec{Product: service, UOM: unit, Quantity: decimal.NewFromInt(1)}},
		{"missing product", entities.LineSpec{UOM: unit, Quantity: decimal.NewFromInt(1)}},
		{"missing uom", entities.LineSpec{Product: goods, Quantity: decimal.NewFromInt(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriver.Derive(storage, prod, company, tt.line); got != nil {
				t.Errorf("Expected no move for %s, got %+v", tt.name, got)
			}
		})
	}
}
