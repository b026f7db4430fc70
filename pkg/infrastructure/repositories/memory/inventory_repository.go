package memory

import (
	"context"
	"sort"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// InventoryRepository provides in-memory stock snapshot storage.
type InventoryRepository struct {
	snapshots []entities.InventorySnapshot
}

// NewInventoryRepository creates a new in-memory inventory repository.
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// AddSnapshot adds a stock snapshot to the repository.
func (r *InventoryRepository) AddSnapshot(snapshot entities.InventorySnapshot) {
	r.snapshots = append(r.snapshots, snapshot)
}

// ListSnapshots returns all stock snapshots.
func (r *InventoryRepository) ListSnapshots(ctx context.Context) ([]entities.InventorySnapshot, error) {
	return r.snapshots, nil
}

// AvailableByProduct returns available-minus-reserved stock per product,
// summed over all warehouses.
func (r *InventoryRepository) AvailableByProduct(ctx context.Context) (map[string]float64, error) {
	available := make(map[string]float64)
	for _, snapshot := range r.snapshots {
		available[snapshot.ProductID] += snapshot.Net()
	}
	return available, nil
}

// WarehouseRepository provides in-memory warehouse storage.
type WarehouseRepository struct {
	warehouses map[string]*entities.Warehouse
}

// NewWarehouseRepository creates a new in-memory warehouse repository.
func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{warehouses: make(map[string]*entities.Warehouse)}
}

// Verify interface compliance
var _ repositories.WarehouseRepository = (*WarehouseRepository)(nil)

// AddWarehouse adds a warehouse to the repository.
func (r *WarehouseRepository) AddWarehouse(warehouse *entities.Warehouse) {
	r.warehouses[warehouse.ID] = warehouse
}

// ListActiveWarehouses returns active warehouses sorted by id.
func (r *WarehouseRepository) ListActiveWarehouses(ctx context.Context) ([]*entities.Warehouse, error) {
	var warehouses []*entities.Warehouse
	for _, warehouse := range r.warehouses {
		if warehouse.Active {
			warehouses = append(warehouses, warehouse)
		}
	}
	sort.Slice(warehouses, func(i, j int) bool { return warehouses[i].ID < warehouses[j].ID })
	return warehouses, nil
}
