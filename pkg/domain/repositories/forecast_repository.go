package repositories

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// ForecastRepository exposes the results of the external forecasting engine.
// Points always come from the latest COMPLETED forecast execution.
type ForecastRepository interface {
	// LatestCompletedPoints returns forecast points per product id.
	LatestCompletedPoints(ctx context.Context) (map[string][]entities.ForecastPoint, error)
	// PointsForProduct returns the latest completed points of one product,
	// ordered by period start.
	PointsForProduct(ctx context.Context, productID string) ([]entities.ForecastPoint, error)
}

// HistoryRepository exposes historical observations used by the stock
// parameter calculators.
type HistoryRepository interface {
	// WeeklyDemand returns historical weekly demand samples, oldest first.
	WeeklyDemand(ctx context.Context, productID string) ([]float64, error)
}
