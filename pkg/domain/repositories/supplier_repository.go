package repositories

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// SupplierRepository provides read access to suppliers and product links.
type SupplierRepository interface {
	GetSupplier(ctx context.Context, id string) (*entities.Supplier, error)
	ListLinksForProduct(ctx context.Context, productID string) ([]entities.SupplierLink, error)
}
