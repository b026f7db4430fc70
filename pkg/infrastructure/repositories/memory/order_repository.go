package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// OrderRepository provides in-memory planned order storage.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*entities.PlannedOrder
	byID   map[uuid.UUID]*entities.PlannedOrder
}

// NewOrderRepository creates a new in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[uuid.UUID]*entities.PlannedOrder)}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// AddOrder adds a single order to the repository.
func (r *OrderRepository) AddOrder(order *entities.PlannedOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	r.byID[order.ID] = order
}

// ListByStatus returns orders whose status is in the given set, in
// insertion order.
func (r *OrderRepository) ListByStatus(ctx context.Context, statuses ...entities.OrderStatus) ([]*entities.PlannedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[entities.OrderStatus]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}
	var orders []*entities.PlannedOrder
	for _, order := range r.orders {
		if wanted[order.Status] {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// ListOrders returns a page of orders matching the filter, with the total
// match count. Page numbering starts at 1.
func (r *OrderRepository) ListOrders(ctx context.Context, filter repositories.OrderFilter, page, limit int) ([]*entities.PlannedOrder, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*entities.PlannedOrder
	for _, order := range r.orders {
		if filter.ExecutionID != nil && order.ExecutionID != *filter.ExecutionID {
			continue
		}
		if filter.ProductID != "" && order.ProductID != filter.ProductID {
			continue
		}
		if filter.Kind != "" && order.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && order.Priority != filter.Priority {
			continue
		}
		matches = append(matches, order)
	}

	total := len(matches)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = total
	}
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

// CreateOrders appends a batch of new orders.
func (r *OrderRepository) CreateOrders(ctx context.Context, orders []*entities.PlannedOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range orders {
		if _, exists := r.byID[order.ID]; exists {
			return fmt.Errorf("order already exists: %s", order.ID)
		}
		r.orders = append(r.orders, order)
		r.byID[order.ID] = order
	}
	return nil
}

// SetActionMessage stores a reconciliation message on an order.
func (r *OrderRepository) SetActionMessage(ctx context.Context, orderID uuid.UUID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, exists := r.byID[orderID]
	if !exists {
		return fmt.Errorf("order not found: %s", orderID)
	}
	order.ActionMessage = &message
	return nil
}
