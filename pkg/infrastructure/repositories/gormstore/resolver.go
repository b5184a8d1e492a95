package gormstore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
	"gorm.io/gorm"
)

// resolver rebuilds the domain graph behind foreign keys, loading each
// referenced row at most once per call
type resolver struct {
	db         *gorm.DB
	uoms       map[string]*entities.UnitOfMeasure
	currencies map[string]*entities.Currency
	companies  map[string]*entities.Company
	locations  map[string]*entities.Location
	warehouses map[string]*entities.Warehouse
	products   map[string]*entities.Product
	boms       map[string]*entities.BOM
}

func newResolver(db *gorm.DB) *resolver {
	return &resolver{
		db:         db,
		uoms:       make(map[string]*entities.UnitOfMeasure),
		currencies: make(map[string]*entities.Currency),
		companies:  make(map[string]*entities.Company),
		locations:  make(map[string]*entities.Location),
		warehouses: make(map[string]*entities.Warehouse),
		products:   make(map[string]*entities.Product),
		boms:       make(map[string]*entities.BOM),
	}
}

func (r *resolver) first(dest interface{}, kind, key, column string) error {
	err := r.db.Where(column+" = ?", key).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, key, repositories.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s %s: %w", kind, key, err)
	}
	return nil
}

func (r *resolver) uom(id string) (*entities.UnitOfMeasure, error) {
	if uom, ok := r.uoms[id]; ok {
		return uom, nil
	}
	var model UnitOfMeasureModel
	if err := r.first(&model, "unit of measure", id, "id"); err != nil {
		return nil, err
	}
	uom := &entities.UnitOfMeasure{
		ID:       model.ID,
		Symbol:   model.Symbol,
		Category: model.Category,
		Factor:   model.Factor,
		Rounding: model.Rounding,
	}
	r.uoms[id] = uom
	return uom, nil
}

func (r *resolver) currency(code string) (*entities.Currency, error) {
	if currency, ok := r.currencies[code]; ok {
		return currency, nil
	}
	var model CurrencyModel
	if err := r.first(&model, "currency", code, "code"); err != nil {
		return nil, err
	}
	currency := &entities.Currency{Code: model.Code, Rounding: model.Rounding}
	r.currencies[code] = currency
	return currency, nil
}

func (r *resolver) company(id string) (*entities.Company, error) {
	if company, ok := r.companies[id]; ok {
		return company, nil
	}
	var model CompanyModel
	if err := r.first(&model, "company", id, "id"); err != nil {
		return nil, err
	}
	currency, err := r.currency(model.CurrencyCode)
	if err != nil {
		return nil, err
	}
	company := &entities.Company{ID: model.ID, Name: model.Name, Currency: currency}
	r.companies[id] = company
	return company, nil
}

func (r *resolver) location(id string) (*entities.Location, error) {
	if location, ok := r.locations[id]; ok {
		return location, nil
	}
	var model LocationModel
	if err := r.first(&model, "location", id, "id"); err != nil {
		return nil, err
	}
	locationType, err := parseLocationType(model.Type)
	if err != nil {
		return nil, err
	}
	location := &entities.Location{ID: model.ID, Code: model.Code, Name: model.Name, Type: locationType}
	r.locations[id] = location
	return location, nil
}

func (r *resolver) optionalLocation(id *string) (*entities.Location, error) {
	if id == nil {
		return nil, nil
	}
	return r.location(*id)
}

func (r *resolver) warehouse(id string) (*entities.Warehouse, error) {
	if warehouse, ok := r.warehouses[id]; ok {
		return warehouse, nil
	}
	var model WarehouseModel
	if err := r.first(&model, "warehouse", id, "id"); err != nil {
		return nil, err
	}
	storage, err := r.optionalLocation(model.StorageLocationID)
	if err != nil {
		return nil, err
	}
	warehouse := &entities.Warehouse{ID: model.ID, Name: model.Name, StorageLocation: storage}
	r.warehouses[id] = warehouse
	return warehouse, nil
}

func (r *resolver) product(id string) (*entities.Product, error) {
	if product, ok := r.products[id]; ok {
		return product, nil
	}
	var model ProductModel
	if err := r.first(&model, "product", id, "id"); err != nil {
		return nil, err
	}
	return r.productFromModel(model)
}

func (r *resolver) productFromModel(model ProductModel) (*entities.Product, error) {
	if product, ok := r.products[model.ID]; ok {
		return product, nil
	}
	uom, err := r.uom(model.DefaultUOMID)
	if err != nil {
		return nil, err
	}
	productType, err := entities.ParseProductType(model.Type)
	if err != nil {
		return nil, err
	}
	product := &entities.Product{
		ID:         model.ID,
		Code:       model.Code,
		Name:       model.Name,
		Type:       productType,
		DefaultUOM: uom,
		CostPrice:  model.CostPrice,
	}
	r.products[model.ID] = product
	return product, nil
}

func (r *resolver) bom(id string) (*entities.BOM, error) {
	if bom, ok := r.boms[id]; ok {
		return bom, nil
	}
	var model BOMModel
	err := r.db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("side, line_no")
	}).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("bom %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bom %s: %w", id, err)
	}
	return r.bomFromModel(model)
}

func (r *resolver) bomFromModel(model BOMModel) (*entities.BOM, error) {
	bom := &entities.BOM{
		ID:      model.ID,
		Name:    model.Name,
		Inputs:  make([]*entities.BOMEntry, 0),
		Outputs: make([]*entities.BOMEntry, 0),
	}
	for _, entryModel := range model.Entries {
		product, err := r.product(entryModel.ProductID)
		if err != nil {
			return nil, err
		}
		uom, err := r.uom(entryModel.UOMID)
		if err != nil {
			return nil, err
		}
		entry := &entities.BOMEntry{Product: product, UOM: uom, Quantity: entryModel.Quantity}
		if entryModel.Side == sideOutput {
			bom.Outputs = append(bom.Outputs, entry)
		} else {
			bom.Inputs = append(bom.Inputs, entry)
		}
	}
	r.boms[model.ID] = bom
	return bom, nil
}

func (r *resolver) production(model ProductionModel) (*entities.Production, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid production id %s: %w", model.ID, err)
	}
	state, err := entities.ParseProductionState(model.State)
	if err != nil {
		return nil, err
	}

	production := &entities.Production{
		ID:          id,
		Number:      model.Number,
		Quantity:    model.Quantity,
		Disassembly: model.Disassembly,
		State:       state,
		Cost:        model.Cost,
		Inputs:      make([]*entities.Move, 0),
		Outputs:     make([]*entities.Move, 0),
	}

	if model.ProductID != nil {
		if production.Product, err = r.product(*model.ProductID); err != nil {
			return nil, err
		}
	}
	if model.BOMID != nil {
		if production.BOM, err = r.bom(*model.BOMID); err != nil {
			return nil, err
		}
	}
	if model.UOMID != nil {
		if production.UOM, err = r.uom(*model.UOMID); err != nil {
			return nil, err
		}
	}
	if model.WarehouseID != nil {
		if production.Warehouse, err = r.warehouse(*model.WarehouseID); err != nil {
			return nil, err
		}
	}
	if production.Location, err = r.location(model.LocationID); err != nil {
		return nil, err
	}
	if production.Company, err = r.company(model.CompanyID); err != nil {
		return nil, err
	}

	for _, moveModel := range model.Moves {
		move, err := r.move(moveModel, id)
		if err != nil {
			return nil, err
		}
		if moveModel.Side == sideOutput {
			production.Outputs = append(production.Outputs, move)
		} else {
			production.Inputs = append(production.Inputs, move)
		}
	}

	return production, nil
}

func (r *resolver) move(model MoveModel, productionID uuid.UUID) (*entities.Move, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid move id %s: %w", model.ID, err)
	}
	move := &entities.Move{
		ID:           id,
		ProductionID: productionID,
		Quantity:     model.Quantity,
		UnitPrice:    model.UnitPrice,
	}
	if move.Product, err = r.product(model.ProductID); err != nil {
		return nil, err
	}
	if move.UOM, err = r.uom(model.UOMID); err != nil {
		return nil, err
	}
	if move.FromLocation, err = r.optionalLocation(model.FromLocationID); err != nil {
		return nil, err
	}
	if move.ToLocation, err = r.optionalLocation(model.ToLocationID); err != nil {
		return nil, err
	}
	if model.CompanyID != nil {
		if move.Company, err = r.company(*model.CompanyID); err != nil {
			return nil, err
		}
	}
	if model.CurrencyCode != nil {
		if move.Currency, err = r.currency(*model.CurrencyCode); err != nil {
			return nil, err
		}
	}
	return move, nil
}

func parseLocationType(s string) (entities.LocationType, error) {
	for t := entities.StorageLocation; t <= entities.LostFoundLocation; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return entities.StorageLocation, fmt.Errorf("unknown location type: %s", s)
}

func productionModel(p *entities.Production) ProductionModel {
	model := ProductionModel{
		ID:          p.ID.String(),
		Number:      p.Number,
		Quantity:    p.Quantity,
		Disassembly: p.Disassembly,
		State:       p.State.String(),
		Cost:        p.Cost,
	}
	if p.Product != nil {
		model.ProductID = optionalID(p.Product.ID)
	}
	if p.BOM != nil {
		model.BOMID = optionalID(p.BOM.ID)
	}
	if p.UOM != nil {
		model.UOMID = optionalID(p.UOM.ID)
	}
	if p.Warehouse != nil {
		model.WarehouseID = optionalID(p.Warehouse.ID)
	}
	if p.Location != nil {
		model.LocationID = p.Location.ID
	}
	if p.Company != nil {
		model.CompanyID = p.Company.ID
	}
	return model
}

func moveModels(p *entities.Production) []MoveModel {
	models := make([]MoveModel, 0, len(p.Inputs)+len(p.Outputs))
	for i, move := range p.Inputs {
		models = append(models, moveModel(move, p.ID, sideInput, i))
	}
	for i, move := range p.Outputs {
		models = append(models, moveModel(move, p.ID, sideOutput, i))
	}
	return models
}

func moveModel(m *entities.Move, productionID uuid.UUID, side string, lineNo int) MoveModel {
	model := MoveModel{
		ID:           m.ID.String(),
		ProductionID: productionID.String(),
		Side:         side,
		LineNo:       lineNo,
		ProductID:    m.Product.ID,
		UOMID:        m.UOM.ID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
	}
	if m.FromLocation != nil {
		model.FromLocationID = optionalID(m.FromLocation.ID)
	}
	if m.ToLocation != nil {
		model.ToLocationID = optionalID(m.ToLocation.ID)
	}
	if m.Company != nil {
		model.CompanyID = optionalID(m.Company.ID)
	}
	if m.Currency != nil {
		model.CurrencyCode = optionalID(m.Currency.Code)
	}
	return model
}
