package memory

import (
	"context"
	"sort"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// RoutingRepository provides in-memory routing storage.
type RoutingRepository struct {
	steps map[string][]entities.RoutingStep
}

// NewRoutingRepository creates a new in-memory routing repository.
func NewRoutingRepository() *RoutingRepository {
	return &RoutingRepository{steps: make(map[string][]entities.RoutingStep)}
}

// Verify interface compliance
var _ repositories.RoutingRepository = (*RoutingRepository)(nil)

// AddStep adds a routing step, keeping the product's steps ordered by sequence.
func (r *RoutingRepository) AddStep(step entities.RoutingStep) {
	steps := append(r.steps[step.ProductID], step)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Sequence < steps[j].Sequence })
	r.steps[step.ProductID] = steps
}

// ListStepsForProduct returns the routing of one product ordered by sequence.
func (r *RoutingRepository) ListStepsForProduct(ctx context.Context, productID string) ([]entities.RoutingStep, error) {
	return r.steps[productID], nil
}

// GetStep returns the routing step of a product on a work center, or nil.
func (r *RoutingRepository) GetStep(ctx context.Context, productID, workCenterID string) (*entities.RoutingStep, error) {
	for _, step := range r.steps[productID] {
		if step.WorkCenterID == workCenterID {
			return &step, nil
		}
	}
	return nil, nil
}
