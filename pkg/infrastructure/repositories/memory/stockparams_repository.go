package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// StockParamsRepository provides in-memory stock parameter storage.
type StockParamsRepository struct {
	mu     sync.RWMutex
	params []*entities.StockParams
}

// NewStockParamsRepository creates a new in-memory stock params repository.
func NewStockParamsRepository() *StockParamsRepository {
	return &StockParamsRepository{}
}

// Verify interface compliance
var _ repositories.StockParamsRepository = (*StockParamsRepository)(nil)

// SaveStockParams appends one computed parameter row.
func (r *StockParamsRepository) SaveStockParams(ctx context.Context, params *entities.StockParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params = append(r.params, params)
	return nil
}

// HasParamsForProduct reports whether any row exists for the product.
func (r *StockParamsRepository) HasParamsForProduct(ctx context.Context, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.params {
		if p.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// LatestParamsForProduct returns the most recently saved row for a product.
func (r *StockParamsRepository) LatestParamsForProduct(ctx context.Context, productID string) (*entities.StockParams, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.params) - 1; i >= 0; i-- {
		if r.params[i].ProductID == productID {
			return r.params[i], nil
		}
	}
	return nil, fmt.Errorf("no stock params for product %s", productID)
}

// ListByExecution returns the rows saved for one execution.
func (r *StockParamsRepository) ListByExecution(ctx context.Context, executionID uuid.UUID) ([]*entities.StockParams, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var params []*entities.StockParams
	for _, p := range r.params {
		if p.ExecutionID == executionID {
			params = append(params, p)
		}
	}
	return params, nil
}
