package repositories

import (
	"context"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// InventoryRepository provides read-only access to current stock. The
// planning core never writes inventory.
type InventoryRepository interface {
	ListSnapshots(ctx context.Context) ([]entities.InventorySnapshot, error)
	// AvailableByProduct returns available-minus-reserved stock summed over
	// all warehouses, keyed by product id.
	AvailableByProduct(ctx context.Context) (map[string]float64, error)
}

// WarehouseRepository provides read access to storage locations.
type WarehouseRepository interface {
	ListActiveWarehouses(ctx context.Context) ([]*entities.Warehouse, error)
}
