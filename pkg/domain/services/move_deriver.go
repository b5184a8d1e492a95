package services

import (
	"github.com/google/uuid"
	"github.com/vsinha/production/pkg/domain/entities"
)

// MoveDeriver builds the skeleton of a stock move for a BOM line.
// A nil move means the line contributes nothing and must be skipped.
type MoveDeriver interface {
	Derive(from, to *entities.Location, company *entities.Company, line entities.LineSpec) *entities.Move
}

// StockMoveDeriver is the default MoveDeriver. It skips zero or negative
// quantities and products that are not stockable.
type StockMoveDeriver struct{}

// NewStockMoveDeriver creates the default move deriver
func NewStockMoveDeriver() *StockMoveDeriver {
	return &StockMoveDeriver{}
}

// Verify interface compliance
var _ MoveDeriver = (*StockMoveDeriver)(nil)

// Derive returns a move of line.Quantity line.UOM of line.Product from from to to
func (d *StockMoveDeriver) Derive(from, to *entities.Location, company *entities.Company, line entities.LineSpec) *entities.Move {
	if line.Product == nil || line.UOM == nil {
		return nil
	}
	if !line.Product.Type.Stockable() {
		return nil
	}
	if !line.Quantity.IsPositive() {
		return nil
	}

	move := &entities.Move{
		ID:           uuid.New(),
		Product:      line.Product,
		UOM:          line.UOM,
		Quantity:     line.Quantity,
		FromLocation: from,
		ToLocation:   to,
		Company:      company,
	}
	if company != nil {
		move.Currency = company.Currency
	}
	return move
}
