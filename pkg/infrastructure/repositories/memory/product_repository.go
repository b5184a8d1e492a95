package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
)

// ProductRepository provides in-memory product storage
type ProductRepository struct {
	products  []*entities.Product
	idIndex   map[string]int
	codeIndex map[string]int
	mutex     sync.RWMutex
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:  make([]*entities.Product, 0, expectedProducts),
		idIndex:   make(map[string]int, expectedProducts),
		codeIndex: make(map[string]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, product := range products {
		if err := r.SaveProduct(context.Background(), product); err != nil {
			return err
		}
	}
	return nil
}

// GetProduct returns a product by id
func (r *ProductRepository) GetProduct(_ context.Context, id string) (*entities.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	index, exists := r.idIndex[id]
	if !exists {
		return nil, fmt.Errorf("product %s: %w", id, repositories.ErrNotFound)
	}
	return r.products[index], nil
}

// GetProductByCode returns a product by code
func (r *ProductRepository) GetProductByCode(_ context.Context, code string) (*entities.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	index, exists := r.codeIndex[code]
	if !exists {
		return nil, fmt.Errorf("product %s: %w", code, repositories.ErrNotFound)
	}
	return r.products[index], nil
}

// GetAllProducts returns all products in insertion order
func (r *ProductRepository) GetAllProducts(_ context.Context) ([]*entities.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]*entities.Product(nil), r.products...), nil
}

// SaveProduct inserts a product or replaces the one with the same id
func (r *ProductRepository) SaveProduct(_ context.Context, product *entities.Product) error {
	if product == nil {
		return fmt.Errorf("product cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if index, exists := r.idIndex[product.ID]; exists {
		delete(r.codeIndex, r.products[index].Code)
		r.products[index] = product
		r.codeIndex[product.Code] = index
		return nil
	}

	r.idIndex[product.ID] = len(r.products)
	r.codeIndex[product.Code] = len(r.products)
	r.products = append(r.products, product)
	return nil
}
