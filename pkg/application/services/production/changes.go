package production

import (
	"github.com/google/uuid"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/domain/entities"
)

// Changes explodes order with its current strategy and describes the result as
// a replace-all delta against the moves the order holds now. Nothing is mutated.
func (e *Engine) Changes(order *entities.Production, cfg *entities.Configuration) (*dto.ProductionChanges, error) {
	result, err := e.Explode(order, cfg)
	if err != nil {
		return nil, err
	}

	removeInputs, removeOutputs := order.MoveIDs()
	return &dto.ProductionChanges{
		Inputs:  dto.MoveChanges{Remove: removeInputs, Add: result.Inputs},
		Outputs: dto.MoveChanges{Remove: removeOutputs, Add: result.Outputs},
		Cost:    result.Cost,
	}, nil
}

// ApplyChanges merges a delta into order's move collections and cost
func ApplyChanges(order *entities.Production, changes *dto.ProductionChanges) {
	order.Inputs = applyMoveChanges(order.Inputs, changes.Inputs, order.ID)
	order.Outputs = applyMoveChanges(order.Outputs, changes.Outputs, order.ID)
	order.Cost = changes.Cost
}

func applyMoveChanges(moves []*entities.Move, changes dto.MoveChanges, productionID uuid.UUID) []*entities.Move {
	removed := make(map[uuid.UUID]bool, len(changes.Remove))
	for _, id := range changes.Remove {
		removed[id] = true
	}

	kept := make([]*entities.Move, 0, len(moves)+len(changes.Add))
	for _, move := range moves {
		if !removed[move.ID] {
			kept = append(kept, move)
		}
	}
	for _, move := range changes.Add {
		move.ProductionID = productionID
		kept = append(kept, move)
	}
	return kept
}
