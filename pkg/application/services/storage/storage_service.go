// Package storage projects warehouse volume occupation over the planning
// horizon from planned receipts and gross consumption, and flags weeks where
// utilization approaches or exceeds capacity.
package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// Service validates storage capacity (stage 8).
type Service struct {
	products   repositories.ProductRepository
	warehouses repositories.WarehouseRepository
	inventory  repositories.InventoryRepository
}

// NewService creates a storage validation service.
func NewService(
	products repositories.ProductRepository,
	warehouses repositories.WarehouseRepository,
	inventory repositories.InventoryRepository,
) *Service {
	return &Service{products: products, warehouses: warehouses, inventory: inventory}
}

// Validate rolls each warehouse's occupied volume forward week by week:
// planned receipts add volume, gross requirements remove it, and the running
// total never goes below zero. Product flows are attributed to the warehouse
// currently holding the most of that product; products with no inventory
// record anywhere are left out of the projection entirely. Warehouses
// without a positive capacity are skipped.
func (s *Service) Validate(
	ctx context.Context,
	buckets []services.WeekBucket,
	plans []*dto.LotPlan,
	gross map[string][]dto.PeriodDemand,
) (*dto.StorageResult, error) {
	warehouses, err := s.warehouses.ListActiveWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	var usable []*entities.Warehouse
	for _, w := range warehouses {
		if w.CapacityM3 > 0 {
			usable = append(usable, w)
		}
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].ID < usable[j].ID })

	result := &dto.StorageResult{}
	if len(usable) == 0 || len(buckets) == 0 {
		return result, nil
	}

	snapshots, err := s.inventory.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory snapshots: %w", err)
	}

	volumes, err := s.unitVolumes(ctx, plans, gross, snapshots)
	if err != nil {
		return nil, err
	}

	home := homeWarehouses(snapshots, usable)

	// Occupied volume today, per warehouse. Reserved stock still takes space.
	initial := make(map[string]float64, len(usable))
	for _, snap := range snapshots {
		initial[snap.WarehouseID] += snap.Available * volumes[snap.ProductID]
	}

	incoming := make(map[flowKey]float64)
	outgoing := make(map[flowKey]float64)
	for _, plan := range plans {
		warehouseID, ok := home[plan.ProductID]
		if !ok {
			continue
		}
		for _, receipt := range plan.Receipts {
			if idx := services.BucketIndex(buckets, receipt.PeriodStart); idx >= 0 {
				incoming[flowKey{warehouseID, idx}] += receipt.Quantity * volumes[plan.ProductID]
			}
		}
	}
	for productID, demands := range gross {
		warehouseID, ok := home[productID]
		if !ok {
			continue
		}
		for _, demand := range demands {
			if idx := services.BucketIndex(buckets, demand.PeriodStart); idx >= 0 {
				outgoing[flowKey{warehouseID, idx}] += demand.Quantity * volumes[productID]
			}
		}
	}

	for _, warehouse := range usable {
		occupied := initial[warehouse.ID]
		for idx, bucket := range buckets {
			in := incoming[flowKey{warehouse.ID, idx}]
			out := outgoing[flowKey{warehouse.ID, idx}]
			occupied += in - out
			if occupied < 0 {
				occupied = 0
			}
			utilization := services.Round2(occupied / warehouse.CapacityM3 * 100)
			result.Projections = append(result.Projections, dto.StorageProjection{
				WarehouseID:    warehouse.ID,
				WeekStart:      bucket.Start,
				IncomingVolume: services.Round4(in),
				OutgoingVolume: services.Round4(out),
				ProjectedM3:    services.Round4(occupied),
				CapacityM3:     warehouse.CapacityM3,
				UtilizationPct: utilization,
				Severity:       severityFor(utilization),
			})
		}
	}
	return result, nil
}

type flowKey struct {
	WarehouseID string
	WeekIndex   int
}

// unitVolumes loads UnitVolumeM3 for every product referenced by a plan, a
// gross requirement or a snapshot. Unknown products occupy zero volume.
func (s *Service) unitVolumes(
	ctx context.Context,
	plans []*dto.LotPlan,
	gross map[string][]dto.PeriodDemand,
	snapshots []entities.InventorySnapshot,
) (map[string]float64, error) {
	ids := make(map[string]bool)
	for _, plan := range plans {
		ids[plan.ProductID] = true
	}
	for productID := range gross {
		ids[productID] = true
	}
	for _, snap := range snapshots {
		ids[snap.ProductID] = true
	}

	volumes := make(map[string]float64, len(ids))
	for id := range ids {
		product, err := s.products.GetProduct(ctx, id)
		if err != nil {
			continue
		}
		volumes[id] = product.UnitVolumeM3
	}
	return volumes, nil
}

// homeWarehouses attributes each product to the warehouse holding the most
// of it, ties broken by warehouse id. Products without any inventory record
// in a usable warehouse get no home and carry no flows.
func homeWarehouses(snapshots []entities.InventorySnapshot, usable []*entities.Warehouse) map[string]string {
	valid := make(map[string]bool, len(usable))
	for _, w := range usable {
		valid[w.ID] = true
	}

	type holding struct {
		warehouseID string
		qty         float64
	}
	best := make(map[string]holding)
	for _, snap := range snapshots {
		if !valid[snap.WarehouseID] {
			continue
		}
		current, ok := best[snap.ProductID]
		if !ok || snap.Available > current.qty ||
			(snap.Available == current.qty && snap.WarehouseID < current.warehouseID) {
			best[snap.ProductID] = holding{warehouseID: snap.WarehouseID, qty: snap.Available}
		}
	}

	home := make(map[string]string, len(best))
	for productID, h := range best {
		home[productID] = h.warehouseID
	}
	return home
}

func severityFor(utilizationPct float64) dto.StorageSeverity {
	switch {
	case utilizationPct <= 90:
		return dto.SeverityOK
	case utilizationPct <= 95:
		return dto.SeverityAlert
	default:
		return dto.SeverityCritical
	}
}
