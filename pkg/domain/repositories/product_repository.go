package repositories

import (
	"context"

	"github.com/vsinha/production/pkg/domain/entities"
)

// ProductRepository provides access to product master data
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (*entities.Product, error)
	GetProductByCode(ctx context.Context, code string) (*entities.Product, error)
	GetAllProducts(ctx context.Context) ([]*entities.Product, error)
	SaveProduct(ctx context.Context, product *entities.Product) error
}
