package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the production domain through gorm
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Verify interface compliance
var _ repositories.ProductionRepository = (*Store)(nil)
var _ repositories.ProductRepository = (*Store)(nil)
var _ repositories.BOMRepository = (*Store)(nil)
var _ repositories.ConfigurationRepository = (*Store)(nil)

func upsert(tx *gorm.DB, value interface{}) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

func preloadMoves(db *gorm.DB) *gorm.DB {
	return db.Order("side, line_no")
}

// GetProduction loads a production with its moves
func (s *Store) GetProduction(ctx context.Context, id uuid.UUID) (*entities.Production, error) {
	db := s.db.WithContext(ctx)

	var model ProductionModel
	err := db.Preload("Moves", preloadMoves).Where("id = ?", id.String()).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("production %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load production %s: %w", id, err)
	}

	return newResolver(db).production(model)
}

// ListProductions loads every production ordered by number
func (s *Store) ListProductions(ctx context.Context) ([]*entities.Production, error) {
	db := s.db.WithContext(ctx)

	var models []ProductionModel
	if err := db.Preload("Moves", preloadMoves).Order("number").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list productions: %w", err)
	}

	r := newResolver(db)
	productions := make([]*entities.Production, 0, len(models))
	for _, model := range models {
		production, err := r.production(model)
		if err != nil {
			return nil, err
		}
		productions = append(productions, production)
	}
	return productions, nil
}

// SaveProduction upserts the production header and replaces its moves in one transaction
func (s *Store) SaveProduction(ctx context.Context, production *entities.Production) error {
	if production == nil {
		return fmt.Errorf("production cannot be nil")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := productionModel(production)
		if err := upsert(tx, &model); err != nil {
			return fmt.Errorf("failed to save production %s: %w", production.Number, err)
		}
		return replaceMoves(tx, production)
	})
}

// ReplaceMoves swaps moves, cost and disassembly flag in one transaction
func (s *Store) ReplaceMoves(ctx context.Context, production *entities.Production) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ProductionModel{}).Where("id = ?", production.ID.String()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to load production %s: %w", production.Number, err)
		}
		if count == 0 {
			return fmt.Errorf("production %s: %w", production.ID, repositories.ErrNotFound)
		}

		err := tx.Model(&ProductionModel{}).
			Where("id = ?", production.ID.String()).
			Updates(map[string]interface{}{
				"cost":        production.Cost,
				"disassembly": production.Disassembly,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update production %s: %w", production.Number, err)
		}
		return replaceMoves(tx, production)
	})
}

func replaceMoves(tx *gorm.DB, production *entities.Production) error {
	if err := tx.Where("production_id = ?", production.ID.String()).Delete(&MoveModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete moves of %s: %w", production.Number, err)
	}
	moves := moveModels(production)
	if len(moves) == 0 {
		return nil
	}
	if err := tx.Create(&moves).Error; err != nil {
		return fmt.Errorf("failed to create moves of %s: %w", production.Number, err)
	}
	return nil
}

// GetProduct loads a product by id
func (s *Store) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	return newResolver(s.db.WithContext(ctx)).product(id)
}

// GetProductByCode loads a product by code
func (s *Store) GetProductByCode(ctx context.Context, code string) (*entities.Product, error) {
	r := newResolver(s.db.WithContext(ctx))
	var model ProductModel
	if err := r.first(&model, "product", code, "code"); err != nil {
		return nil, err
	}
	return r.productFromModel(model)
}

// GetAllProducts loads every product ordered by code
func (s *Store) GetAllProducts(ctx context.Context) ([]*entities.Product, error) {
	db := s.db.WithContext(ctx)

	var models []ProductModel
	if err := db.Order("code").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	r := newResolver(db)
	products := make([]*entities.Product, 0, len(models))
	for _, model := range models {
		product, err := r.productFromModel(model)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// SaveProduct upserts a product and its default unit
func (s *Store) SaveProduct(ctx context.Context, product *entities.Product) error {
	if product == nil {
		return fmt.Errorf("product cannot be nil")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveUnitOfMeasure(tx, product.DefaultUOM); err != nil {
			return err
		}
		model := ProductModel{
			ID:           product.ID,
			Code:         product.Code,
			Name:         product.Name,
			Type:         product.Type.String(),
			DefaultUOMID: product.DefaultUOM.ID,
			CostPrice:    product.CostPrice,
		}
		if err := upsert(tx, &model); err != nil {
			return fmt.Errorf("failed to save product %s: %w", product.Code, err)
		}
		return nil
	})
}

// GetBOM loads a BOM with its ordered entries
func (s *Store) GetBOM(ctx context.Context, id string) (*entities.BOM, error) {
	return newResolver(s.db.WithContext(ctx)).bom(id)
}

// GetAllBOMs loads every BOM
func (s *Store) GetAllBOMs(ctx context.Context) ([]*entities.BOM, error) {
	db := s.db.WithContext(ctx)

	var models []BOMModel
	err := db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("side, line_no")
	}).Order("id").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list boms: %w", err)
	}

	r := newResolver(db)
	boms := make([]*entities.BOM, 0, len(models))
	for _, model := range models {
		bom, err := r.bomFromModel(model)
		if err != nil {
			return nil, err
		}
		boms = append(boms, bom)
	}
	return boms, nil
}

// SaveBOM upserts a BOM and replaces its entries
func (s *Store) SaveBOM(ctx context.Context, bom *entities.BOM) error {
	if bom == nil {
		return fmt.Errorf("bom cannot be nil")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx, &BOMModel{ID: bom.ID, Name: bom.Name}); err != nil {
			return fmt.Errorf("failed to save bom %s: %w", bom.ID, err)
		}
		if err := tx.Where("bom_id = ?", bom.ID).Delete(&BOMEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete entries of bom %s: %w", bom.ID, err)
		}

		entries := make([]BOMEntryModel, 0, len(bom.Inputs)+len(bom.Outputs))
		for side, list := range map[string][]*entities.BOMEntry{sideInput: bom.Inputs, sideOutput: bom.Outputs} {
			for i, entry := range list {
				entries = append(entries, BOMEntryModel{
					BOMID:     bom.ID,
					Side:      side,
					LineNo:    i,
					ProductID: entry.Product.ID,
					UOMID:     entry.UOM.ID,
					Quantity:  entry.Quantity,
				})
			}
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to save entries of bom %s: %w", bom.ID, err)
		}
		return nil
	})
}

// GetConfiguration loads the configuration row; a missing row is an empty configuration
func (s *Store) GetConfiguration(ctx context.Context) (*entities.Configuration, error) {
	db := s.db.WithContext(ctx)

	var model ConfigurationModel
	err := db.Where("id = ?", configurationID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entities.Configuration{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := &entities.Configuration{}
	if model.DisassemblyDifferenceProductID != nil {
		product, err := newResolver(db).product(*model.DisassemblyDifferenceProductID)
		if err != nil {
			return nil, err
		}
		cfg.DisassemblyDifferenceProduct = product
	}
	return cfg, nil
}

// SaveConfiguration stores the configuration row
func (s *Store) SaveConfiguration(ctx context.Context, cfg *entities.Configuration) error {
	model := ConfigurationModel{ID: configurationID}
	if cfg != nil && cfg.DisassemblyDifferenceProduct != nil {
		model.DisassemblyDifferenceProductID = optionalID(cfg.DisassemblyDifferenceProduct.ID)
	}
	if err := upsert(s.db.WithContext(ctx), &model); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
