package memory

import (
	"context"
	"sync"

	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
)

// ConfigurationRepository holds the production configuration singleton
type ConfigurationRepository struct {
	config entities.Configuration
	mutex  sync.RWMutex
}

// NewConfigurationRepository creates a repository serving cfg; nil means unconfigured
func NewConfigurationRepository(cfg *entities.Configuration) *ConfigurationRepository {
	repo := &ConfigurationRepository{}
	if cfg != nil {
		repo.config = *cfg
	}
	return repo
}

// Verify interface compliance
var _ repositories.ConfigurationRepository = (*ConfigurationRepository)(nil)

// GetConfiguration returns a copy of the stored configuration
func (r *ConfigurationRepository) GetConfiguration(_ context.Context) (*entities.Configuration, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cfg := r.config
	return &cfg, nil
}

// SetDifferenceProduct changes the disassembly difference product
func (r *ConfigurationRepository) SetDifferenceProduct(product *entities.Product) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.config.DisassemblyDifferenceProduct = product
}
