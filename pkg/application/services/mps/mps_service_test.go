package mps

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/infrastructure/repositories/memory"
)

func monday() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func float(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func firmOrder(productID string, neededBy time.Time, qty float64) *entities.PlannedOrder {
	return &entities.PlannedOrder{
		ID:        uuid.New(),
		ProductID: productID,
		Kind:      entities.OrderMake,
		Quantity:  qty,
		NeededBy:  neededBy,
		Status:    entities.StatusFirm,
	}
}

func TestCalculate_BlendsForecastAndFirmOrders(t *testing.T) {
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	forecasts := memory.NewForecastRepository()

	products.AddProduct(&entities.Product{ID: "F1", Type: entities.ProductFinished, Active: true})

	p50 := []float64{100, 80, 60, 40}
	for i, qty := range p50 {
		forecasts.AddPoint(entities.ForecastPoint{
			ProductID:   "F1",
			PeriodStart: monday().AddDate(0, 0, 7*i),
			P50:         float(qty),
		})
	}

	// Week 0: firm 120 beats forecast 100. Week 1: forecast 80 beats firm 50.
	// Week 2: firm 999 is outside the firm horizon and is ignored.
	orders.AddOrder(firmOrder("F1", monday().AddDate(0, 0, 2), 120))
	orders.AddOrder(firmOrder("F1", monday().AddDate(0, 0, 9), 50))
	orders.AddOrder(firmOrder("F1", monday().AddDate(0, 0, 16), 999))

	start := monday()
	service := NewService(products, orders, forecasts)
	result, err := service.Calculate(context.Background(), entities.ExecutionParams{
		PlanningHorizonWeeks:  4,
		FirmOrderHorizonWeeks: intPtr(2),
		StartDate:             &start,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(result.Schedules) != 1 {
		t.Fatalf("Expected 1 schedule, got %d", len(result.Schedules))
	}
	schedule := result.Schedules[0]
	if len(schedule.Buckets) != 4 {
		t.Fatalf("Expected 4 buckets, got %d", len(schedule.Buckets))
	}

	wantMPS := []float64{120, 80, 60, 40}
	for i, bucket := range schedule.Buckets {
		if bucket.MPSDemand != wantMPS[i] {
			t.Errorf("Bucket %d: MPS = %v, want %v", i, bucket.MPSDemand, wantMPS[i])
		}
	}
	if schedule.Buckets[0].FirmOrderDemand != 120 {
		t.Errorf("Expected firm demand 120, got %v", schedule.Buckets[0].FirmOrderDemand)
	}
	if schedule.Buckets[2].FirmOrderDemand != 999 {
		t.Errorf("Expected firm demand 999 reported, got %v", schedule.Buckets[2].FirmOrderDemand)
	}
	if schedule.TotalDemand != 300 {
		t.Errorf("Expected total 300, got %v", schedule.TotalDemand)
	}
}

func TestCalculate_WarnsWhenForecastMissing(t *testing.T) {
	products := memory.NewProductRepository()
	products.AddProduct(&entities.Product{ID: "F1", Type: entities.ProductFinished, Active: true})

	start := monday()
	service := NewService(products, memory.NewOrderRepository(), memory.NewForecastRepository())
	result, err := service.Calculate(context.Background(), entities.ExecutionParams{
		PlanningHorizonWeeks: 2,
		StartDate:            &start,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", result.Warnings)
	}
	if result.Schedules[0].TotalDemand != 0 {
		t.Errorf("Expected zero demand, got %v", result.Schedules[0].TotalDemand)
	}
}

func TestCalculate_StartSnapsToWeekStart(t *testing.T) {
	products := memory.NewProductRepository()
	service := NewService(products, memory.NewOrderRepository(), memory.NewForecastRepository())

	midWeek := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC) // Thursday
	result, err := service.Calculate(context.Background(), entities.ExecutionParams{
		PlanningHorizonWeeks: 1,
		StartDate:            &midWeek,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if !result.StartDate.Equal(monday()) {
		t.Errorf("Expected start %v, got %v", monday(), result.StartDate)
	}
}

func TestCalculate_InactiveProductsExcluded(t *testing.T) {
	products := memory.NewProductRepository()
	products.AddProduct(&entities.Product{ID: "F1", Type: entities.ProductFinished, Active: false})
	products.AddProduct(&entities.Product{ID: "R1", Type: entities.ProductRaw, Active: true})

	start := monday()
	service := NewService(products, memory.NewOrderRepository(), memory.NewForecastRepository())
	result, err := service.Calculate(context.Background(), entities.ExecutionParams{
		PlanningHorizonWeeks: 1,
		StartDate:            &start,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(result.Schedules) != 0 {
		t.Errorf("Expected no schedules, got %d", len(result.Schedules))
	}
}
