package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

func testOrder(productID string, status entities.OrderStatus) *entities.PlannedOrder {
	return &entities.PlannedOrder{
		ID:        uuid.New(),
		ProductID: productID,
		Kind:      entities.OrderBuy,
		Quantity:  10,
		NeededBy:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func TestOrderRepository_CreateOrdersRejectsDuplicateID(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	order := testOrder("P1", entities.StatusPlanned)
	if err := repo.CreateOrders(ctx, []*entities.PlannedOrder{order}); err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}
	if err := repo.CreateOrders(ctx, []*entities.PlannedOrder{order}); err == nil {
		t.Fatal("Expected duplicate id to be rejected")
	}
}

func TestOrderRepository_ListByStatus(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	repo.AddOrder(testOrder("P1", entities.StatusPlanned))
	repo.AddOrder(testOrder("P2", entities.StatusFirm))
	repo.AddOrder(testOrder("P3", entities.StatusReleased))
	repo.AddOrder(testOrder("P4", entities.StatusCancelled))

	open, err := repo.ListByStatus(ctx, entities.StatusFirm, entities.StatusReleased)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(open) != 2 || open[0].ProductID != "P2" || open[1].ProductID != "P3" {
		t.Errorf("Unexpected orders: %+v", open)
	}
}

func TestOrderRepository_ListOrdersFilterAndPaginate(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	executionID := uuid.New()

	for i := 0; i < 5; i++ {
		order := testOrder("P1", entities.StatusPlanned)
		order.ExecutionID = executionID
		repo.AddOrder(order)
	}
	repo.AddOrder(testOrder("P2", entities.StatusPlanned))

	page, total, err := repo.ListOrders(ctx,
		repositories.OrderFilter{ExecutionID: &executionID}, 2, 2)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if total != 5 || len(page) != 2 {
		t.Errorf("Expected 2 of 5, got %d of %d", len(page), total)
	}

	// Page beyond the data returns an empty window with the true total.
	empty, total, err := repo.ListOrders(ctx,
		repositories.OrderFilter{ExecutionID: &executionID}, 4, 2)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(empty) != 0 || total != 5 {
		t.Errorf("Expected empty page with total 5, got %d/%d", len(empty), total)
	}

	// Limit below 1 disables pagination.
	all, _, err := repo.ListOrders(ctx, repositories.OrderFilter{}, 1, 0)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected all 6 orders, got %d", len(all))
	}
}

func TestOrderRepository_SetActionMessageUnknownOrder(t *testing.T) {
	repo := NewOrderRepository()
	if err := repo.SetActionMessage(context.Background(), uuid.New(), "NEW"); err == nil {
		t.Fatal("Expected an error for an unknown order")
	}
}
