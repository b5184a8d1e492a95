package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
)

// BOMRepository provides in-memory BOM storage
type BOMRepository struct {
	boms    []*entities.BOM
	bomsMap map[string]int
	mutex   sync.RWMutex
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository(expectedBOMs int) *BOMRepository {
	return &BOMRepository{
		boms:    make([]*entities.BOM, 0, expectedBOMs),
		bomsMap: make(map[string]int, expectedBOMs),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadBOMs loads BOMs into the repository
func (r *BOMRepository) LoadBOMs(boms []*entities.BOM) error {
	for _, bom := range boms {
		if err := r.SaveBOM(context.Background(), bom); err != nil {
			return err
		}
	}
	return nil
}

// GetBOM returns a BOM by id
func (r *BOMRepository) GetBOM(_ context.Context, id string) (*entities.BOM, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	index, exists := r.bomsMap[id]
	if !exists {
		return nil, fmt.Errorf("bom %s: %w", id, repositories.ErrNotFound)
	}
	return r.boms[index], nil
}

// GetAllBOMs returns all BOMs in insertion order
func (r *BOMRepository) GetAllBOMs(_ context.Context) ([]*entities.BOM, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]*entities.BOM(nil), r.boms...), nil
}

// SaveBOM inserts a BOM or replaces the one with the same id
func (r *BOMRepository) SaveBOM(_ context.Context, bom *entities.BOM) error {
	if bom == nil {
		return fmt.Errorf("bom cannot be nil")
	}
	if bom.ID == "" {
		return fmt.Errorf("bom id cannot be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if index, exists := r.bomsMap[bom.ID]; exists {
		r.boms[index] = bom
		return nil
	}
	r.bomsMap[bom.ID] = len(r.boms)
	r.boms = append(r.boms, bom)
	return nil
}
