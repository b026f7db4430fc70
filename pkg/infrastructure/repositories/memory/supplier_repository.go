package memory

import (
	"context"
	"fmt"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// SupplierRepository provides in-memory supplier and link storage.
type SupplierRepository struct {
	suppliers map[string]*entities.Supplier
	links     map[string][]entities.SupplierLink
}

// NewSupplierRepository creates a new in-memory supplier repository.
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{
		suppliers: make(map[string]*entities.Supplier),
		links:     make(map[string][]entities.SupplierLink),
	}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// AddSupplier adds a supplier to the repository.
func (r *SupplierRepository) AddSupplier(supplier *entities.Supplier) {
	r.suppliers[supplier.ID] = supplier
}

// AddLink adds a product-supplier link to the repository.
func (r *SupplierRepository) AddLink(link entities.SupplierLink) {
	r.links[link.ProductID] = append(r.links[link.ProductID], link)
}

// GetSupplier returns the supplier with the given id.
func (r *SupplierRepository) GetSupplier(ctx context.Context, id string) (*entities.Supplier, error) {
	supplier, exists := r.suppliers[id]
	if !exists {
		return nil, fmt.Errorf("supplier not found: %s", id)
	}
	return supplier, nil
}

// ListLinksForProduct returns the links of one product in insertion order.
func (r *SupplierRepository) ListLinksForProduct(ctx context.Context, productID string) ([]entities.SupplierLink, error) {
	return r.links[productID], nil
}
