package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
)

// ProductionRepository provides in-memory production storage.
// Orders are copied on the way in and out so callers never share state with the store.
type ProductionRepository struct {
	productions []*entities.Production
	index       map[uuid.UUID]int
	mutex       sync.RWMutex
}

// NewProductionRepository creates a new in-memory production repository
func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{
		productions: make([]*entities.Production, 0),
		index:       make(map[uuid.UUID]int),
	}
}

// Verify interface compliance
var _ repositories.ProductionRepository = (*ProductionRepository)(nil)

// GetProduction returns a copy of the production with id
func (r *ProductionRepository) GetProduction(_ context.Context, id uuid.UUID) (*entities.Production, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("production %s: %w", id, repositories.ErrNotFound)
	}
	return cloneProduction(r.productions[i]), nil
}

// ListProductions returns copies of all productions in insertion order
func (r *ProductionRepository) ListProductions(_ context.Context) ([]*entities.Production, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	productions := make([]*entities.Production, 0, len(r.productions))
	for _, p := range r.productions {
		productions = append(productions, cloneProduction(p))
	}
	return productions, nil
}

// SaveProduction inserts or replaces a production together with its moves
func (r *ProductionRepository) SaveProduction(_ context.Context, production *entities.Production) error {
	if production == nil {
		return fmt.Errorf("production cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := cloneProduction(production)
	if i, exists := r.index[production.ID]; exists {
		r.productions[i] = stored
		return nil
	}
	r.index[production.ID] = len(r.productions)
	r.productions = append(r.productions, stored)
	return nil
}

// ReplaceMoves swaps the stored moves, cost and disassembly flag for those of production
func (r *ProductionRepository) ReplaceMoves(_ context.Context, production *entities.Production) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i, exists := r.index[production.ID]
	if !exists {
		return fmt.Errorf("production %s: %w", production.ID, repositories.ErrNotFound)
	}

	replacement := cloneProduction(production)
	stored := cloneProduction(r.productions[i])
	stored.Inputs = replacement.Inputs
	stored.Outputs = replacement.Outputs
	stored.Cost = replacement.Cost
	stored.Disassembly = replacement.Disassembly
	r.productions[i] = stored
	return nil
}

func cloneProduction(p *entities.Production) *entities.Production {
	clone := *p
	clone.Inputs = cloneMoves(p.Inputs)
	clone.Outputs = cloneMoves(p.Outputs)
	return &clone
}

func cloneMoves(moves []*entities.Move) []*entities.Move {
	clones := make([]*entities.Move, 0, len(moves))
	for _, m := range moves {
		clone := *m
		clones = append(clones, &clone)
	}
	return clones
}
