package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductType represents how stock of a product is tracked
type ProductType int

const (
	Goods ProductType = iota
	Assets
	Service
)

// String method for ProductType enum
func (t ProductType) String() string {
	switch t {
	case Goods:
		return "goods"
	case Assets:
		return "assets"
	case Service:
		return "service"
	default:
		return "unknown"
	}
}

// ParseProductType maps the textual form back to a ProductType
func ParseProductType(s string) (ProductType, error) {
	switch s {
	case "goods", "":
		return Goods, nil
	case "assets":
		return Assets, nil
	case "service":
		return Service, nil
	default:
		return Goods, fmt.Errorf("unknown product type: %s", s)
	}
}

// Stockable reports whether moves can be created for the product type
func (t ProductType) Stockable() bool {
	return t == Goods || t == Assets
}

// Product represents an item that can be stocked, consumed and produced
type Product struct {
	ID         string
	Code       string
	Name       string
	Type       ProductType
	DefaultUOM *UnitOfMeasure
	CostPrice  decimal.Decimal
}

// NewProduct creates a validated Product
func NewProduct(id, code, name string, productType ProductType, defaultUOM *UnitOfMeasure, costPrice decimal.Decimal) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if code == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if defaultUOM == nil {
		return nil, fmt.Errorf("product %s must have a default unit of measure", code)
	}
	if costPrice.IsNegative() {
		return nil, fmt.Errorf("cost price cannot be negative, got %s", costPrice)
	}

	return &Product{
		ID:         id,
		Code:       code,
		Name:       name,
		Type:       productType,
		DefaultUOM: defaultUOM,
		CostPrice:  costPrice,
	}, nil
}

// Currency carries the rounding convention used to compare amounts
type Currency struct {
	Code     string
	Rounding decimal.Decimal
}

// NewCurrency creates a validated Currency
func NewCurrency(code string, rounding decimal.Decimal) (*Currency, error) {
	if code == "" {
		return nil, fmt.Errorf("currency code cannot be empty")
	}
	if !rounding.IsPositive() {
		return nil, fmt.Errorf("currency rounding must be positive, got %s", rounding)
	}
	return &Currency{Code: code, Rounding: rounding}, nil
}

// Round rounds an amount to the currency's smallest unit
func (c *Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return roundTo(amount, c.Rounding)
}

// IsZero reports whether amount rounds to zero in this currency
func (c *Currency) IsZero(amount decimal.Decimal) bool {
	return c.Round(amount).IsZero()
}

// LocationType distinguishes stock locations from production locations
type LocationType int

const (
	StorageLocation LocationType = iota
	ProductionLocation
	LostFoundLocation
)

// String method for LocationType enum
func (t LocationType) String() string {
	switch t {
	case StorageLocation:
		return "storage"
	case ProductionLocation:
		return "production"
	case LostFoundLocation:
		return "lost_found"
	default:
		return "unknown"
	}
}

// Location is a place stock moves from or to
type Location struct {
	ID   string
	Code string
	Name string
	Type LocationType
}

// Warehouse groups locations; moves are exploded from and into its storage location
type Warehouse struct {
	ID              string
	Name            string
	StorageLocation *Location
}

// Company owns productions and moves
type Company struct {
	ID       string
	Name     string
	Currency *Currency
}
