package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// StockParamsRepository persists per-product stock parameters. Rows are
// written per product during stage 2.
type StockParamsRepository interface {
	SaveStockParams(ctx context.Context, params *entities.StockParams) error
	HasParamsForProduct(ctx context.Context, productID string) (bool, error)
	LatestParamsForProduct(ctx context.Context, productID string) (*entities.StockParams, error)
	ListByExecution(ctx context.Context, executionID uuid.UUID) ([]*entities.StockParams, error)
}
