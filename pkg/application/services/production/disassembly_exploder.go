package production

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/services"
)

// DisassemblyExploder inverts a BOM: its outputs are consumed from storage and
// its inputs produced back into storage, each at its own cost price. When the
// two sides do not balance in the order's currency, one line of the configured
// difference product carries the residual so that the value consumed equals
// the value produced. Produced unit prices are rounded to priceDigits before
// the residual is taken, so the adjustment also absorbs the rounding.
type DisassemblyExploder struct {
	deriver     services.MoveDeriver
	priceDigits int32
	logger      logrus.FieldLogger
}

// NewDisassemblyExploder creates a disassembly exploder
func NewDisassemblyExploder(deriver services.MoveDeriver, priceDigits int32, logger logrus.FieldLogger) *DisassemblyExploder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DisassemblyExploder{
		deriver:     deriver,
		priceDigits: priceDigits,
		logger:      logger,
	}
}

// Verify interface compliance
var _ Exploder = (*DisassemblyExploder)(nil)

// Explode computes the disassembly moves of order. An order missing its
// product, BOM or unit yields an empty result. cfg is only consulted when an
// adjustment line is needed.
func (d *DisassemblyExploder) Explode(order *entities.Production, cfg *entities.Configuration) (*dto.ExplosionResult, error) {
	result := dto.NewExplosionResult()
	if !order.Ready() {
		return result, nil
	}

	storage := order.StorageLocation()
	factor, err := order.BOM.ComputeFactor(order.Product, order.Quantity, order.UOM)
	if err != nil {
		return nil, err
	}

	for _, entry := range order.BOM.Outputs {
		quantity := entry.ComputeQuantity(factor)
		move := d.deriver.Derive(storage, order.Location, order.Company, entry.Line(quantity))
		if move == nil {
			continue
		}
		cost, err := entryCost(entry, quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to cost consumed %s: %w", entry.Product.Code, err)
		}
		result.Cost = result.Cost.Add(cost)
		result.Inputs = append(result.Inputs, move)
	}

	outputsCost := decimal.Zero
	for _, entry := range order.BOM.Inputs {
		quantity := entry.ComputeQuantity(factor)
		move := d.deriver.Derive(order.Location, storage, order.Company, entry.Line(quantity))
		if move == nil {
			continue
		}
		price, err := entities.ComputePrice(entry.Product.DefaultUOM, entry.Product.CostPrice, entry.UOM)
		if err != nil {
			return nil, fmt.Errorf("failed to price produced %s: %w", entry.Product.Code, err)
		}
		move.SetUnitPrice(price.RoundBank(d.priceDigits))
		outputsCost = outputsCost.Add(move.Value())
		result.Outputs = append(result.Outputs, move)
	}

	difference := result.Cost.Sub(outputsCost)
	if isZero(order.Currency(), difference) {
		return result, nil
	}

	adjustment, err := d.adjustmentMove(order, storage, cfg, difference)
	if err != nil {
		return nil, err
	}
	result.Outputs = append(result.Outputs, adjustment)
	result.Adjustment = adjustment

	d.logger.WithFields(logrus.Fields{
		"production": order.Number,
		"cost":       result.Cost.String(),
		"outputs":    outputsCost.String(),
		"difference": difference.String(),
	}).Debug("disassembly cost difference absorbed")

	return result, nil
}

// adjustmentMove builds one unit of the difference product priced at difference
func (d *DisassemblyExploder) adjustmentMove(
	order *entities.Production,
	storage *entities.Location,
	cfg *entities.Configuration,
	difference decimal.Decimal,
) (*entities.Move, error) {
	product, err := cfg.DifferenceProduct()
	if err != nil {
		return nil, err
	}

	line := entities.LineSpec{
		Product:  product,
		UOM:      product.DefaultUOM,
		Quantity: decimal.NewFromInt(1),
	}
	move := d.deriver.Derive(order.Location, storage, order.Company, line)
	if move == nil {
		return nil, &entities.ConfigurationError{
			Setting: "disassembly_difference_product",
			Message: fmt.Sprintf("disassembly difference product %s cannot be moved", product.Code),
		}
	}
	move.SetUnitPrice(difference.RoundBank(d.priceDigits))
	return move, nil
}
