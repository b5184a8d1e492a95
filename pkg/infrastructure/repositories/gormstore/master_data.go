package gormstore

import (
	"context"
	"fmt"

	"github.com/vsinha/production/pkg/domain/entities"
	"gorm.io/gorm"
)

// SaveUnitOfMeasure upserts a unit of measure
func (s *Store) SaveUnitOfMeasure(ctx context.Context, uom *entities.UnitOfMeasure) error {
	return saveUnitOfMeasure(s.db.WithContext(ctx), uom)
}

func saveUnitOfMeasure(tx *gorm.DB, uom *entities.UnitOfMeasure) error {
	if uom == nil {
		return fmt.Errorf("unit of measure cannot be nil")
	}
	model := UnitOfMeasureModel{
		ID:       uom.ID,
		Symbol:   uom.Symbol,
		Category: uom.Category,
		Factor:   uom.Factor,
		Rounding: uom.Rounding,
	}
	if err := upsert(tx, &model); err != nil {
		return fmt.Errorf("failed to save unit of measure %s: %w", uom.ID, err)
	}
	return nil
}

// SaveCompany upserts a company and its currency
func (s *Store) SaveCompany(ctx context.Context, company *entities.Company) error {
	if company == nil || company.Currency == nil {
		return fmt.Errorf("company with a currency is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currency := CurrencyModel{Code: company.Currency.Code, Rounding: company.Currency.Rounding}
		if err := upsert(tx, &currency); err != nil {
			return fmt.Errorf("failed to save currency %s: %w", currency.Code, err)
		}
		model := CompanyModel{ID: company.ID, Name: company.Name, CurrencyCode: company.Currency.Code}
		if err := upsert(tx, &model); err != nil {
			return fmt.Errorf("failed to save company %s: %w", company.ID, err)
		}
		return nil
	})
}

// SaveLocation upserts a location
func (s *Store) SaveLocation(ctx context.Context, location *entities.Location) error {
	if location == nil {
		return fmt.Errorf("location cannot be nil")
	}
	model := LocationModel{
		ID:   location.ID,
		Code: location.Code,
		Name: location.Name,
		Type: location.Type.String(),
	}
	if err := upsert(s.db.WithContext(ctx), &model); err != nil {
		return fmt.Errorf("failed to save location %s: %w", location.ID, err)
	}
	return nil
}

// SaveWarehouse upserts a warehouse and its storage location
func (s *Store) SaveWarehouse(ctx context.Context, warehouse *entities.Warehouse) error {
	if warehouse == nil {
		return fmt.Errorf("warehouse cannot be nil")
	}
	model := WarehouseModel{ID: warehouse.ID, Name: warehouse.Name}
	if warehouse.StorageLocation != nil {
		if err := s.SaveLocation(ctx, warehouse.StorageLocation); err != nil {
			return err
		}
		model.StorageLocationID = optionalID(warehouse.StorageLocation.ID)
	}
	if err := upsert(s.db.WithContext(ctx), &model); err != nil {
		return fmt.Errorf("failed to save warehouse %s: %w", warehouse.ID, err)
	}
	return nil
}
