package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/application/services/production"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/infrastructure/events"
	"github.com/vsinha/production/pkg/infrastructure/lock"
	"github.com/vsinha/production/pkg/infrastructure/logging"
	"github.com/vsinha/production/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	logger := logging.New(logging.Options{Level: "info", Format: "text", Output: os.Stderr})

	unit, _ := entities.NewUnitOfMeasure("u", "Unit", "unit", decimal.NewFromInt(1), decimal.NewFromInt(1))
	eur, _ := entities.NewCurrency("EUR", decimal.RequireFromString("0.01"))
	company := &entities.Company{ID: "C1", Name: "Bike Works", Currency: eur}
	storage := &entities.Location{ID: "STO", Code: "STO", Name: "Stock", Type: entities.StorageLocation}
	floor := &entities.Location{ID: "PROD", Code: "PROD", Name: "Workshop", Type: entities.ProductionLocation}
	warehouse := &entities.Warehouse{ID: "WH", Name: "Main", StorageLocation: storage}

	bicycle := mustProduct("bicycle", "BICYCLE", 450, unit)
	frame := mustProduct("frame", "FRAME", 180, unit)
	wheel := mustProduct("wheel", "WHEEL", 95, unit)
	chain := mustProduct("chain", "CHAIN", 25, unit)
	difference := mustProduct("diff", "DISASSEMBLY_DIFF", 0, unit)

	// A bicycle is worth 450 but its parts only 395: 55 goes to the difference product
	bom := &entities.BOM{ID: "BOM-BICYCLE", Name: "Bicycle"}
	bom.Inputs = []*entities.BOMEntry{mustEntry(frame, unit, 1), mustEntry(wheel, unit, 2), mustEntry(chain, unit, 1)}
	bom.Outputs = []*entities.BOMEntry{mustEntry(bicycle, unit, 1)}

	order, err := entities.NewProduction("MO-BIKE", bicycle, bom, unit, decimal.NewFromInt(3), floor, warehouse, company)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	repo := memory.NewProductionRepository()
	if err := repo.SaveProduction(ctx, order); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	svc := production.NewProductionService(
		repo,
		memory.NewConfigurationRepository(&entities.Configuration{DisassemblyDifferenceProduct: difference}),
		production.NewEngine(logger),
		lock.NewLocalLocker(),
		events.NewInMemoryEventStore(logger),
		logger,
	)

	fmt.Println("🔧 Disassembling 3 bicycles...")
	if _, err := svc.Disassemble(ctx, []uuid.UUID{order.ID}); err != nil {
		fmt.Printf("❌ Disassembly failed: %v\n", err)
		return
	}

	done, err := svc.GetProduction(ctx, order.ID)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	fmt.Printf("Consumed (cost %s):\n", done.Cost)
	for _, m := range done.Inputs {
		fmt.Printf("  %-18s %4s %s  %s -> %s\n", m.Product.Code, m.Quantity, m.UOM.Symbol, m.FromLocation.Code, m.ToLocation.Code)
	}
	fmt.Println("Produced:")
	for _, m := range done.Outputs {
		fmt.Printf("  %-18s %4s %s @ %-8s = %s\n", m.Product.Code, m.Quantity, m.UOM.Symbol, m.UnitPrice.Decimal, m.Value())
	}
	fmt.Printf("Produced value: %s\n", entities.SumValues(done.Outputs))
}

func mustProduct(id, code string, cost int64, unit *entities.UnitOfMeasure) *entities.Product {
	p, err := entities.NewProduct(id, code, code, entities.Goods, unit, decimal.NewFromInt(cost))
	if err != nil {
		panic(err)
	}
	return p
}

func mustEntry(product *entities.Product, unit *entities.UnitOfMeasure, qty int64) *entities.BOMEntry {
	entry, err := entities.NewBOMEntry(product, unit, decimal.NewFromInt(qty))
	if err != nil {
		panic(err)
	}
	return entry
}
