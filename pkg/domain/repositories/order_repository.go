package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// OrderFilter narrows planned order listings. Zero values mean "any".
type OrderFilter struct {
	ExecutionID *uuid.UUID
	ProductID   string
	Kind        entities.OrderKind
	Status      entities.OrderStatus
	Priority    entities.OrderPriority
}

// OrderRepository provides access to the planned order book. The planning
// core creates orders in stage 5 and only mutates action messages afterwards.
type OrderRepository interface {
	ListByStatus(ctx context.Context, statuses ...entities.OrderStatus) ([]*entities.PlannedOrder, error)
	ListOrders(ctx context.Context, filter OrderFilter, page, limit int) ([]*entities.PlannedOrder, int, error)
	CreateOrders(ctx context.Context, orders []*entities.PlannedOrder) error
	SetActionMessage(ctx context.Context, orderID uuid.UUID, message string) error
}
