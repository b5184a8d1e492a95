package repositories

import (
	"context"

	"github.com/vsinha/production/pkg/domain/entities"
)

// ConfigurationRepository reads the production configuration singleton
type ConfigurationRepository interface {
	GetConfiguration(ctx context.Context) (*entities.Configuration, error)
}
