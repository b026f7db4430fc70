package repositories

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// RoutingRepository provides read access to product routings.
type RoutingRepository interface {
	// ListStepsForProduct returns the routing ordered by sequence.
	ListStepsForProduct(ctx context.Context, productID string) ([]entities.RoutingStep, error)
	// GetStep returns the routing step of a product on a work center, or
	// nil when the product has no operation there.
	GetStep(ctx context.Context, productID, workCenterID string) (*entities.RoutingStep, error)
}
