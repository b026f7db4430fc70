package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	orders     *memory.OrderRepository
	executions *memory.ExecutionRepository
	stepLogs   *memory.StepLogRepository
	loads      *memory.CapacityLoadRepository
	service    *Service
}

func newFixture() *fixture {
	f := &fixture{
		orders:     memory.NewOrderRepository(),
		executions: memory.NewExecutionRepository(),
		stepLogs:   memory.NewStepLogRepository(),
		loads:      memory.NewCapacityLoadRepository(),
	}
	f.service = NewService(f.orders, f.executions, f.stepLogs, f.loads)
	return f
}

func seedOrders(f *fixture, executionID uuid.UUID, n int) {
	neededBy := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f.orders.AddOrder(&entities.PlannedOrder{
			ID:          uuid.New(),
			ExecutionID: executionID,
			ProductID:   "P1",
			Kind:        entities.OrderBuy,
			Quantity:    10,
			NeededBy:    neededBy.AddDate(0, 0, 7*i),
			Status:      entities.StatusPlanned,
			Priority:    entities.PriorityLow,
		})
	}
}

func TestListOrders_PaginationMetadata(t *testing.T) {
	f := newFixture()
	executionID := uuid.New()
	seedOrders(f, executionID, 7)

	page, err := f.service.ListOrders(context.Background(),
		repositories.OrderFilter{ExecutionID: &executionID}, 2, 3)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}

	if len(page.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(page.Items))
	}
	if page.Total != 7 || page.TotalPages != 3 {
		t.Errorf("Total = %d/%d pages, want 7/3", page.Total, page.TotalPages)
	}
	if !page.HasNext || !page.HasPrev {
		t.Errorf("Expected both neighbours from page 2, got next=%v prev=%v", page.HasNext, page.HasPrev)
	}

	last, err := f.service.ListOrders(context.Background(),
		repositories.OrderFilter{ExecutionID: &executionID}, 3, 3)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(last.Items) != 1 || last.HasNext {
		t.Errorf("Expected final partial page, got %d items next=%v", len(last.Items), last.HasNext)
	}
}

func TestListOrders_FilterByPriority(t *testing.T) {
	f := newFixture()
	executionID := uuid.New()
	seedOrders(f, executionID, 3)
	f.orders.AddOrder(&entities.PlannedOrder{
		ID:          uuid.New(),
		ExecutionID: executionID,
		ProductID:   "P2",
		Kind:        entities.OrderBuy,
		Quantity:    5,
		Status:      entities.StatusPlanned,
		Priority:    entities.PriorityCritical,
	})

	page, err := f.service.ListOrders(context.Background(), repositories.OrderFilter{
		ExecutionID: &executionID,
		Priority:    entities.PriorityCritical,
	}, 1, 10)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].ProductID != "P2" {
		t.Errorf("Expected only the critical order, got %+v", page.Items)
	}
}

func TestGetExecution_WithSteps(t *testing.T) {
	f := newFixture()
	execution := entities.NewExecution(entities.ExecutionParams{})
	if err := f.executions.CreateExecution(context.Background(), execution); err != nil {
		t.Fatalf("CreateExecution failed: %v", err)
	}
	for i := 3; i >= 1; i-- {
		log := &entities.StepLog{
			ID:          uuid.New(),
			ExecutionID: execution.ID,
			StepName:    "step",
			StepOrder:   i,
			Status:      entities.StepCompleted,
		}
		if err := f.stepLogs.AppendStepLog(context.Background(), log); err != nil {
			t.Fatalf("AppendStepLog failed: %v", err)
		}
	}

	detail, err := f.service.GetExecution(context.Background(), execution.ID)
	if err != nil {
		t.Fatalf("GetExecution failed: %v", err)
	}
	if detail.Execution.ID != execution.ID {
		t.Errorf("Wrong execution: %s", detail.Execution.ID)
	}
	if len(detail.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(detail.Steps))
	}
	for i, step := range detail.Steps {
		if step.StepOrder != i+1 {
			t.Errorf("Steps out of order: %d at index %d", step.StepOrder, i)
		}
	}
}

func TestGetExecution_Unknown(t *testing.T) {
	f := newFixture()
	if _, err := f.service.GetExecution(context.Background(), uuid.New()); err == nil {
		t.Fatal("Expected an error for an unknown execution")
	}
}

func TestListExecutions_CreationOrder(t *testing.T) {
	f := newFixture()
	first := entities.NewExecution(entities.ExecutionParams{})
	second := entities.NewExecution(entities.ExecutionParams{})
	f.executions.CreateExecution(context.Background(), first)
	f.executions.CreateExecution(context.Background(), second)

	page, err := f.service.ListExecutions(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListExecutions failed: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != first.ID {
		t.Errorf("Expected creation order, got %+v", page.Items)
	}
}

func TestCapacityByExecution(t *testing.T) {
	f := newFixture()
	executionID := uuid.New()
	f.loads.SaveLoads(context.Background(), []entities.CapacityLoad{
		{ExecutionID: executionID, WorkCenterID: "WC1"},
		{ExecutionID: uuid.New(), WorkCenterID: "WC2"},
	})

	loads, err := f.service.CapacityByExecution(context.Background(), executionID)
	if err != nil {
		t.Fatalf("CapacityByExecution failed: %v", err)
	}
	if len(loads) != 1 || loads[0].WorkCenterID != "WC1" {
		t.Errorf("Expected only WC1, got %+v", loads)
	}
}
