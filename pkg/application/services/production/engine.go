package production

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/services"
)

// Exploder derives the input and output moves of a production from its BOM
type Exploder interface {
	Explode(order *entities.Production, cfg *entities.Configuration) (*dto.ExplosionResult, error)
}

// EngineConfig holds configuration for the explosion engine
type EngineConfig struct {
	// PriceDigits is the precision of computed unit prices
	PriceDigits int32
}

// DefaultEngineConfig returns the engine defaults
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{PriceDigits: 4}
}

// Engine selects the assembly or disassembly strategy from the order's Disassembly flag
type Engine struct {
	assembly    *AssemblyExploder
	disassembly *DisassemblyExploder
}

// NewEngine creates an engine with the default move deriver and configuration
func NewEngine(logger logrus.FieldLogger) *Engine {
	return NewEngineWithConfig(services.NewStockMoveDeriver(), logger, DefaultEngineConfig())
}

// NewEngineWithConfig creates an engine with a custom move deriver and configuration
func NewEngineWithConfig(deriver services.MoveDeriver, logger logrus.FieldLogger, config EngineConfig) *Engine {
	return &Engine{
		assembly:    NewAssemblyExploder(deriver, config.PriceDigits),
		disassembly: NewDisassemblyExploder(deriver, config.PriceDigits, logger),
	}
}

// Verify interface compliance
var _ Exploder = (*Engine)(nil)

// Explode computes the replacement moves of order with the strategy its flag selects
func (e *Engine) Explode(order *entities.Production, cfg *entities.Configuration) (*dto.ExplosionResult, error) {
	return e.exploderFor(order).Explode(order, cfg)
}

// ComputeDisassembly computes the moves of order run as a disassembly,
// whatever the current value of its flag
func (e *Engine) ComputeDisassembly(order *entities.Production, cfg *entities.Configuration) (*dto.ExplosionResult, error) {
	return e.disassembly.Explode(order, cfg)
}

func (e *Engine) exploderFor(order *entities.Production) Exploder {
	if order.Disassembly {
		return e.disassembly
	}
	return e.assembly
}

// entryCost returns the value of quantity units of the entry at the product's cost price.
// The quantity is converted to the product's default unit first.
func entryCost(entry *entities.BOMEntry, quantity decimal.Decimal) (decimal.Decimal, error) {
	converted, err := entities.ComputeQty(entry.UOM, quantity, entry.Product.DefaultUOM, true)
	if err != nil {
		return decimal.Zero, err
	}
	return converted.Mul(entry.Product.CostPrice), nil
}

func isZero(currency *entities.Currency, amount decimal.Decimal) bool {
	if currency == nil {
		return amount.IsZero()
	}
	return currency.IsZero(amount)
}
