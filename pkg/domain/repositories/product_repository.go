package repositories

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// ProductRepository provides read access to the item master.
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (*entities.Product, error)
	ListActiveProducts(ctx context.Context) ([]*entities.Product, error)
	ListActiveByType(ctx context.Context, t entities.ProductType) ([]*entities.Product, error)
}
