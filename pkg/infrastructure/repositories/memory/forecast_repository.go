package memory

import (
	"context"
	"sort"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// ForecastRepository provides in-memory forecast point storage. Loaded
// points stand in for the latest COMPLETED run of the forecasting engine.
type ForecastRepository struct {
	points map[string][]entities.ForecastPoint
}

// NewForecastRepository creates a new in-memory forecast repository.
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{points: make(map[string][]entities.ForecastPoint)}
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// AddPoint adds a forecast point, keeping the product's points ordered by
// period start.
func (r *ForecastRepository) AddPoint(point entities.ForecastPoint) {
	points := append(r.points[point.ProductID], point)
	sort.Slice(points, func(i, j int) bool {
		return points[i].PeriodStart.Before(points[j].PeriodStart)
	})
	r.points[point.ProductID] = points
}

// LatestCompletedPoints returns forecast points per product id.
func (r *ForecastRepository) LatestCompletedPoints(ctx context.Context) (map[string][]entities.ForecastPoint, error) {
	return r.points, nil
}

// PointsForProduct returns the points of one product ordered by period start.
func (r *ForecastRepository) PointsForProduct(ctx context.Context, productID string) ([]entities.ForecastPoint, error) {
	return r.points[productID], nil
}

// HistoryRepository provides in-memory demand history storage.
type HistoryRepository struct {
	weekly map[string][]float64
}

// NewHistoryRepository creates a new in-memory history repository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{weekly: make(map[string][]float64)}
}

// Verify interface compliance
var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// SetWeeklyDemand sets the weekly demand samples of one product, oldest first.
func (r *HistoryRepository) SetWeeklyDemand(productID string, samples []float64) {
	r.weekly[productID] = samples
}

// WeeklyDemand returns the weekly demand samples of one product.
func (r *HistoryRepository) WeeklyDemand(ctx context.Context, productID string) ([]float64, error) {
	return r.weekly[productID], nil
}
