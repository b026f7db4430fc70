package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// ProductRepository provides in-memory product master storage.
type ProductRepository struct {
	products map[string]*entities.Product
}

// NewProductRepository creates a new in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*entities.Product)}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// AddProduct adds a product to the repository.
func (r *ProductRepository) AddProduct(product *entities.Product) {
	r.products[product.ID] = product
}

// LoadProducts loads products into the repository.
func (r *ProductRepository) LoadProducts(products []*entities.Product) {
	for _, product := range products {
		r.AddProduct(product)
	}
}

// GetProduct returns the product with the given id.
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	return product, nil
}

// ListActiveProducts returns all active products sorted by id.
func (r *ProductRepository) ListActiveProducts(ctx context.Context) ([]*entities.Product, error) {
	var products []*entities.Product
	for _, product := range r.products {
		if product.Active {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// ListActiveByType returns active products of one type sorted by id.
func (r *ProductRepository) ListActiveByType(ctx context.Context, productType entities.ProductType) ([]*entities.Product, error) {
	var products []*entities.Product
	for _, product := range r.products {
		if product.Active && product.Type == productType {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
