package entities

// Warehouse is a storage location with a volumetric capacity. Warehouses
// with non-positive capacity are excluded from storage validation.
type Warehouse struct {
	ID         string
	Code       string
	Name       string
	CapacityM3 float64
	Active     bool
}

// InventorySnapshot is the current stock of one product in one warehouse.
type InventorySnapshot struct {
	WarehouseID string
	ProductID   string
	Available   float64
	Reserved    float64
}

// Net returns the quantity available to planning (available minus reserved).
func (s InventorySnapshot) Net() float64 {
	return s.Available - s.Reserved
}
