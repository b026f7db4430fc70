package storage

import (
	"context"
	"testing"
	"time"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	products   *memory.ProductRepository
	warehouses *memory.WarehouseRepository
	inventory  *memory.InventoryRepository
	service    *Service
}

func newFixture() *fixture {
	f := &fixture{
		products:   memory.NewProductRepository(),
		warehouses: memory.NewWarehouseRepository(),
		inventory:  memory.NewInventoryRepository(),
	}
	f.service = NewService(f.products, f.warehouses, f.inventory)
	return f
}

func monday() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func planFor(productID string, buckets []services.WeekBucket, weekly []float64) *dto.LotPlan {
	plan := &dto.LotPlan{ProductID: productID, Method: entities.LotForLot}
	for i, qty := range weekly {
		if qty == 0 {
			continue
		}
		plan.Receipts = append(plan.Receipts, dto.PlannedReceipt{
			PeriodIndex: i,
			PeriodStart: buckets[i].Start,
			Quantity:    qty,
		})
	}
	return plan
}

func TestValidate_RollsVolumeForward(t *testing.T) {
	f := newFixture()
	f.products.AddProduct(&entities.Product{ID: "P1", UnitVolumeM3: 2, Active: true})
	f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W1", CapacityM3: 1000, Active: true})
	f.inventory.AddSnapshot(entities.InventorySnapshot{
		WarehouseID: "W1", ProductID: "P1", Available: 100, Reserved: 40,
	})

	buckets := services.WeeklyBuckets(monday(), 3)
	plans := []*dto.LotPlan{planFor("P1", buckets, []float64{0, 50, 0})}
	gross := map[string][]dto.PeriodDemand{
		"P1": {
			{PeriodStart: buckets[0].Start, Quantity: 30},
			{PeriodStart: buckets[2].Start, Quantity: 20},
		},
	}

	result, err := f.service.Validate(context.Background(), buckets, plans, gross)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(result.Projections) != 3 {
		t.Fatalf("Expected 3 projections, got %d", len(result.Projections))
	}

	// Initial 100*2 = 200 m3; reserved stock still occupies space.
	// Week 0: 200 - 60 = 140. Week 1: +100 = 240. Week 2: -40 = 200.
	wantProjected := []float64{140, 240, 200}
	wantIn := []float64{0, 100, 0}
	wantOut := []float64{60, 0, 40}
	for i, proj := range result.Projections {
		if proj.ProjectedM3 != wantProjected[i] {
			t.Errorf("Week %d: projected = %v, want %v", i, proj.ProjectedM3, wantProjected[i])
		}
		if proj.IncomingVolume != wantIn[i] || proj.OutgoingVolume != wantOut[i] {
			t.Errorf("Week %d: flows = %v/%v, want %v/%v",
				i, proj.IncomingVolume, proj.OutgoingVolume, wantIn[i], wantOut[i])
		}
		if proj.Severity != dto.SeverityOK {
			t.Errorf("Week %d: expected OK at %v%%, got %s", i, proj.UtilizationPct, proj.Severity)
		}
	}
	if result.Projections[0].UtilizationPct != 14 {
		t.Errorf("Utilization = %v, want 14", result.Projections[0].UtilizationPct)
	}
}

func TestValidate_OccupationNeverNegative(t *testing.T) {
	f := newFixture()
	f.products.AddProduct(&entities.Product{ID: "P1", UnitVolumeM3: 1, Active: true})
	f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W1", CapacityM3: 100, Active: true})
	f.inventory.AddSnapshot(entities.InventorySnapshot{
		WarehouseID: "W1", ProductID: "P1", Available: 50,
	})

	buckets := services.WeeklyBuckets(monday(), 2)
	gross := map[string][]dto.PeriodDemand{
		"P1": {{PeriodStart: buckets[0].Start, Quantity: 500}},
	}

	result, err := f.service.Validate(context.Background(), buckets, nil, gross)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Projections[0].ProjectedM3 != 0 {
		t.Errorf("Expected clamp at 0, got %v", result.Projections[0].ProjectedM3)
	}
}

func TestValidate_SeverityBands(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		want     dto.StorageSeverity
	}{
		{"ok_at_90", 90, dto.SeverityOK},
		{"alert_above_90", 91, dto.SeverityAlert},
		{"alert_at_95", 95, dto.SeverityAlert},
		{"critical_above_95", 96, dto.SeverityCritical},
		{"critical_over_capacity", 120, dto.SeverityCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.products.AddProduct(&entities.Product{ID: "P1", UnitVolumeM3: 1, Active: true})
			f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W1", CapacityM3: 100, Active: true})
			f.inventory.AddSnapshot(entities.InventorySnapshot{
				WarehouseID: "W1", ProductID: "P1", Available: 0,
			})

			buckets := services.WeeklyBuckets(monday(), 1)
			plans := []*dto.LotPlan{planFor("P1", buckets, []float64{tc.quantity})}

			result, err := f.service.Validate(context.Background(), buckets, plans, nil)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if result.Projections[0].Severity != tc.want {
				t.Errorf("Severity at %v%% = %s, want %s",
					result.Projections[0].UtilizationPct, result.Projections[0].Severity, tc.want)
			}
		})
	}
}

func TestValidate_HomeWarehouseAttribution(t *testing.T) {
	f := newFixture()
	f.products.AddProduct(&entities.Product{ID: "P1", UnitVolumeM3: 1, Active: true})
	f.products.AddProduct(&entities.Product{ID: "P2", UnitVolumeM3: 1, Active: true})
	f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W1", CapacityM3: 100, Active: true})
	f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W2", CapacityM3: 100, Active: true})

	// P1 is held mostly in W2; P2 is stocked nowhere and carries no flows.
	f.inventory.AddSnapshot(entities.InventorySnapshot{WarehouseID: "W1", ProductID: "P1", Available: 10})
	f.inventory.AddSnapshot(entities.InventorySnapshot{WarehouseID: "W2", ProductID: "P1", Available: 30})

	buckets := services.WeeklyBuckets(monday(), 1)
	plans := []*dto.LotPlan{
		planFor("P1", buckets, []float64{5}),
		planFor("P2", buckets, []float64{7}),
	}

	result, err := f.service.Validate(context.Background(), buckets, plans, nil)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	byWarehouse := make(map[string]dto.StorageProjection)
	for _, proj := range result.Projections {
		byWarehouse[proj.WarehouseID] = proj
	}
	if byWarehouse["W2"].IncomingVolume != 5 {
		t.Errorf("W2 incoming = %v, want 5", byWarehouse["W2"].IncomingVolume)
	}
	if byWarehouse["W1"].IncomingVolume != 0 {
		t.Errorf("W1 incoming = %v, want 0 for a product stocked nowhere", byWarehouse["W1"].IncomingVolume)
	}
}

func TestValidate_SkipsZeroCapacityWarehouses(t *testing.T) {
	f := newFixture()
	f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W1", CapacityM3: 0, Active: true})
	f.warehouses.AddWarehouse(&entities.Warehouse{ID: "W2", CapacityM3: 100, Active: false})

	result, err := f.service.Validate(context.Background(),
		services.WeeklyBuckets(monday(), 2), nil, nil)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(result.Projections) != 0 {
		t.Errorf("Expected no projections, got %d", len(result.Projections))
	}
}
