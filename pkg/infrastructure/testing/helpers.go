package testing

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/domain/entities"
)

// WidgetScenario is the reference disassembly fixture: one Widget (cost 100)
// is assembled from 2 Part A (cost 40) and 1 Part B (cost 15).
type WidgetScenario struct {
	Unit     *entities.UnitOfMeasure
	Dozen    *entities.UnitOfMeasure
	Kilogram *entities.UnitOfMeasure
	Gram     *entities.UnitOfMeasure

	Currency  *entities.Currency
	Company   *entities.Company
	Storage   *entities.Location
	Floor     *entities.Location
	Warehouse *entities.Warehouse

	Widget     *entities.Product
	PartA      *entities.Product
	PartB      *entities.Product
	Difference *entities.Product
	Labour     *entities.Product

	BOM    *entities.BOM
	Config *entities.Configuration
}

// BuildWidgetScenario builds the Widget fixture with a configured difference product
func BuildWidgetScenario() *WidgetScenario {
	s := &WidgetScenario{}

	s.Unit = mustUOM("u", "Unit", "unit", "1", "1")
	s.Dozen = mustUOM("dozen", "Dozen", "unit", "12", "1")
	s.Kilogram = mustUOM("kg", "Kilogram", "weight", "1", "0.001")
	s.Gram = mustUOM("g", "Gram", "weight", "0.001", "1")

	currency, err := entities.NewCurrency("EUR", decimal.RequireFromString("0.01"))
	if err != nil {
		panic(err)
	}
	s.Currency = currency
	s.Company = &entities.Company{ID: "C1", Name: "Acme", Currency: currency}
	s.Storage = &entities.Location{ID: "STO", Code: "STO", Name: "Storage", Type: entities.StorageLocation}
	s.Floor = &entities.Location{ID: "PROD", Code: "PROD", Name: "Production", Type: entities.ProductionLocation}
	s.Warehouse = &entities.Warehouse{ID: "WH", Name: "Warehouse", StorageLocation: s.Storage}

	s.Widget = mustProduct("widget", "WIDGET", entities.Goods, s.Unit, "100")
	s.PartA = mustProduct("part-a", "PART_A", entities.Goods, s.Unit, "40")
	s.PartB = mustProduct("part-b", "PART_B", entities.Goods, s.Unit, "15")
	s.Difference = mustProduct("diff", "DISASSEMBLY_DIFF", entities.Goods, s.Unit, "0")
	s.Labour = mustProduct("labour", "LABOUR", entities.Service, s.Unit, "25")

	s.BOM = &entities.BOM{
		ID:   "BOM-WIDGET",
		Name: "Widget",
		Inputs: []*entities.BOMEntry{
			mustEntry(s.PartA, s.Unit, "2"),
			mustEntry(s.PartB, s.Unit, "1"),
		},
		Outputs: []*entities.BOMEntry{
			mustEntry(s.Widget, s.Unit, "1"),
		},
	}

	s.Config = &entities.Configuration{DisassemblyDifferenceProduct: s.Difference}
	return s
}

// NewProduction returns a draft order for quantity Widgets on the scenario's BOM
func (s *WidgetScenario) NewProduction(number string, quantity int64) *entities.Production {
	production, err := entities.NewProduction(
		number,
		s.Widget,
		s.BOM,
		s.Unit,
		decimal.NewFromInt(quantity),
		s.Floor,
		s.Warehouse,
		s.Company,
	)
	if err != nil {
		panic(err)
	}
	return production
}

// Products returns every product of the scenario
func (s *WidgetScenario) Products() []*entities.Product {
	return []*entities.Product{s.Widget, s.PartA, s.PartB, s.Difference, s.Labour}
}

// Entry builds a validated BOM entry, panicking on invalid input
func Entry(product *entities.Product, uom *entities.UnitOfMeasure, quantity string) *entities.BOMEntry {
	return mustEntry(product, uom, quantity)
}

// Product builds a validated product, panicking on invalid input
func Product(id, code string, productType entities.ProductType, uom *entities.UnitOfMeasure, cost string) *entities.Product {
	return mustProduct(id, code, productType, uom, cost)
}

func mustUOM(id, symbol, category, factor, rounding string) *entities.UnitOfMeasure {
	uom, err := entities.NewUnitOfMeasure(id, symbol, category,
		decimal.RequireFromString(factor), decimal.RequireFromString(rounding))
	if err != nil {
		panic(err)
	}
	return uom
}

func mustProduct(id, code string, productType entities.ProductType, uom *entities.UnitOfMeasure, cost string) *entities.Product {
	product, err := entities.NewProduct(id, code, code, productType, uom, decimal.RequireFromString(cost))
	if err != nil {
		panic(err)
	}
	return product
}

func mustEntry(product *entities.Product, uom *entities.UnitOfMeasure, quantity string) *entities.BOMEntry {
	entry, err := entities.NewBOMEntry(product, uom, decimal.RequireFromString(quantity))
	if err != nil {
		panic(err)
	}
	return entry
}
