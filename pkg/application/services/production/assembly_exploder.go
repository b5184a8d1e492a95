package production

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/services"
)

// AssemblyExploder explodes a BOM the ordinary way: the BOM inputs are
// consumed and the BOM outputs produced. The output carrying the order's
// product is priced at cost / quantity, other outputs at zero.
type AssemblyExploder struct {
	deriver     services.MoveDeriver
	priceDigits int32
}

// NewAssemblyExploder creates an assembly exploder
func NewAssemblyExploder(deriver services.MoveDeriver, priceDigits int32) *AssemblyExploder {
	return &AssemblyExploder{
		deriver:     deriver,
		priceDigits: priceDigits,
	}
}

// Verify interface compliance
var _ Exploder = (*AssemblyExploder)(nil)

// Explode computes the assembly moves of order
func (a *AssemblyExploder) Explode(order *entities.Production, _ *entities.Configuration) (*dto.ExplosionResult, error) {
	result := dto.NewExplosionResult()
	if !order.Ready() {
		return result, nil
	}

	storage := order.StorageLocation()
	factor, err := order.BOM.ComputeFactor(order.Product, order.Quantity, order.UOM)
	if err != nil {
		return nil, err
	}

	for _, input := range order.BOM.Inputs {
		quantity := input.ComputeQuantity(factor)
		move := a.deriver.Derive(storage, order.Location, order.Company, input.Line(quantity))
		if move == nil {
			continue
		}
		cost, err := entryCost(input, quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to cost input %s: %w", input.Product.Code, err)
		}
		result.Cost = result.Cost.Add(cost)
		result.Inputs = append(result.Inputs, move)
	}

	for _, output := range order.BOM.Outputs {
		quantity := output.ComputeQuantity(factor)
		move := a.deriver.Derive(order.Location, storage, order.Company, output.Line(quantity))
		if move == nil {
			continue
		}
		move.SetUnitPrice(decimal.Zero)
		if output.Product.ID == order.Product.ID && !quantity.IsZero() {
			move.SetUnitPrice(result.Cost.Div(quantity).RoundBank(a.priceDigits))
		}
		result.Outputs = append(result.Outputs, move)
	}

	return result, nil
}
