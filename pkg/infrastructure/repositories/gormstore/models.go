package gormstore

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	sideInput  = "input"
	sideOutput = "output"
)

type UnitOfMeasureModel struct {
	ID       string          `gorm:"primaryKey;type:varchar(64)"`
	Symbol   string          `gorm:"type:varchar(32);not null"`
	Category string          `gorm:"type:varchar(64);not null;index"`
	Factor   decimal.Decimal `gorm:"type:decimal(24,12);not null"`
	Rounding decimal.Decimal `gorm:"type:decimal(24,12);not null"`
}

func (UnitOfMeasureModel) TableName() string { return "units_of_measure" }

type CurrencyModel struct {
	Code     string          `gorm:"primaryKey;type:varchar(8)"`
	Rounding decimal.Decimal `gorm:"type:decimal(20,6);not null"`
}

func (CurrencyModel) TableName() string { return "currencies" }

type CompanyModel struct {
	ID           string `gorm:"primaryKey;type:varchar(64)"`
	Name         string `gorm:"type:varchar(255)"`
	CurrencyCode string `gorm:"type:varchar(8);not null"`
}

func (CompanyModel) TableName() string { return "companies" }

type LocationModel struct {
	ID   string `gorm:"primaryKey;type:varchar(64)"`
	Code string `gorm:"type:varchar(64);not null"`
	Name string `gorm:"type:varchar(255)"`
	Type string `gorm:"type:varchar(32);not null"`
}

func (LocationModel) TableName() string { return "locations" }

type WarehouseModel struct {
	ID                string  `gorm:"primaryKey;type:varchar(64)"`
	Name              string  `gorm:"type:varchar(255)"`
	StorageLocationID *string `gorm:"type:varchar(64)"`
}

func (WarehouseModel) TableName() string { return "warehouses" }

type ProductModel struct {
	ID           string          `gorm:"primaryKey;type:varchar(64)"`
	Code         string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(255)"`
	Type         string          `gorm:"type:varchar(16);not null"`
	DefaultUOMID string          `gorm:"column:default_uom_id;type:varchar(64);not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(20,6);not null"`
}

func (ProductModel) TableName() string { return "products" }

type BOMModel struct {
	ID      string          `gorm:"primaryKey;type:varchar(64)"`
	Name    string          `gorm:"type:varchar(255)"`
	Entries []BOMEntryModel `gorm:"foreignKey:BOMID"`
}

func (BOMModel) TableName() string { return "boms" }

type BOMEntryModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	BOMID     string          `gorm:"column:bom_id;type:varchar(64);not null;index"`
	Side      string          `gorm:"type:varchar(8);not null"`
	LineNo    int             `gorm:"not null"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	UOMID     string          `gorm:"column:uom_id;type:varchar(64);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(24,8);not null"`
}

func (BOMEntryModel) TableName() string { return "bom_entries" }

type ProductionModel struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)"`
	Number      string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	ProductID   *string         `gorm:"type:varchar(64)"`
	BOMID       *string         `gorm:"column:bom_id;type:varchar(64)"`
	UOMID       *string         `gorm:"column:uom_id;type:varchar(64)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	LocationID  string          `gorm:"type:varchar(64);not null"`
	WarehouseID *string         `gorm:"type:varchar(64)"`
	CompanyID   string          `gorm:"type:varchar(64);not null"`
	Disassembly bool            `gorm:"not null"`
	State       string          `gorm:"type:varchar(16);not null;index"`
	Cost        decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Moves       []MoveModel     `gorm:"foreignKey:ProductionID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductionModel) TableName() string { return "productions" }

type MoveModel struct {
	ID             string              `gorm:"primaryKey;type:varchar(36)"`
	ProductionID   string              `gorm:"type:varchar(36);not null;index"`
	Side           string              `gorm:"type:varchar(8);not null"`
	LineNo         int                 `gorm:"not null"`
	ProductID      string              `gorm:"type:varchar(64);not null"`
	UOMID          string              `gorm:"column:uom_id;type:varchar(64);not null"`
	Quantity       decimal.Decimal     `gorm:"type:decimal(24,8);not null"`
	FromLocationID *string             `gorm:"type:varchar(64)"`
	ToLocationID   *string             `gorm:"type:varchar(64)"`
	CompanyID      *string             `gorm:"type:varchar(64)"`
	CurrencyCode   *string             `gorm:"type:varchar(8)"`
	UnitPrice      decimal.NullDecimal `gorm:"type:decimal(20,6)"`
}

func (MoveModel) TableName() string { return "production_moves" }

// ConfigurationModel is a single-row table keyed by configurationID
type ConfigurationModel struct {
	ID                             uint    `gorm:"primaryKey"`
	DisassemblyDifferenceProductID *string `gorm:"type:varchar(64)"`
}

func (ConfigurationModel) TableName() string { return "production_configuration" }

const configurationID = 1

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
