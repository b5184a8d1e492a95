package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vsinha/production/pkg/domain/entities"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ProductionRepository provides access to production orders and their moves
type ProductionRepository interface {
	GetProduction(ctx context.Context, id uuid.UUID) (*entities.Production, error)
	ListProductions(ctx context.Context) ([]*entities.Production, error)
	SaveProduction(ctx context.Context, production *entities.Production) error

	// ReplaceMoves deletes the production's previous input and output moves and
	// stores production.Inputs, production.Outputs, Cost and Disassembly in one
	// atomic update.
	ReplaceMoves(ctx context.Context, production *entities.Production) error
}
