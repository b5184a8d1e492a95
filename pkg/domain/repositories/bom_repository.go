package repositories

import (
	"context"

	"github.com/vsinha/production/pkg/domain/entities"
)

// BOMRepository provides access to Bills of Materials
type BOMRepository interface {
	GetBOM(ctx context.Context, id string) (*entities.BOM, error)
	GetAllBOMs(ctx context.Context) ([]*entities.BOM, error)
	SaveBOM(ctx context.Context, bom *entities.BOM) error
}
