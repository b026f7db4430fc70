package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	csvrepo "github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/infrastructure/repositories/csv"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/infrastructure/repositories/memory"
)

// repoSet bundles the in-memory repositories of one scenario.
type repoSet struct {
	Products    *memory.ProductRepository
	BOM         *memory.BOMRepository
	Suppliers   *memory.SupplierRepository
	Routings    *memory.RoutingRepository
	WorkCenters *memory.WorkCenterRepository
	Calendar    *memory.CalendarRepository
	Loads       *memory.CapacityLoadRepository
	Inventory   *memory.InventoryRepository
	Warehouses  *memory.WarehouseRepository
	Forecasts   *memory.ForecastRepository
	History     *memory.HistoryRepository
	Orders      *memory.OrderRepository
	Executions  *memory.ExecutionRepository
	StepLogs    *memory.StepLogRepository
	StockParams *memory.StockParamsRepository
}

func newRepoSet() *repoSet {
	return &repoSet{
		Products:    memory.NewProductRepository(),
		BOM:         memory.NewBOMRepository(),
		Suppliers:   memory.NewSupplierRepository(),
		Routings:    memory.NewRoutingRepository(),
		WorkCenters: memory.NewWorkCenterRepository(),
		Calendar:    memory.NewCalendarRepository(),
		Loads:       memory.NewCapacityLoadRepository(),
		Inventory:   memory.NewInventoryRepository(),
		Warehouses:  memory.NewWarehouseRepository(),
		Forecasts:   memory.NewForecastRepository(),
		History:     memory.NewHistoryRepository(),
		Orders:      memory.NewOrderRepository(),
		Executions:  memory.NewExecutionRepository(),
		StepLogs:    memory.NewStepLogRepository(),
		StockParams: memory.NewStockParamsRepository(),
	}
}

// loadScenario populates the repositories from a scenario directory.
// products.csv and bom.csv are required; the other files are optional.
// The factory calendar is filled with Monday..Friday working days for a
// year from now.
func loadScenario(dir string) (*repoSet, error) {
	repos := newRepoSet()
	loader := csvrepo.NewLoader()

	products, err := loader.LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return nil, err
	}
	repos.Products.LoadProducts(products)

	lines, err := loader.LoadBOM(filepath.Join(dir, "bom.csv"))
	if err != nil {
		return nil, err
	}
	repos.BOM.LoadLines(lines)

	if path, ok := optional(dir, "inventory.csv"); ok {
		snapshots, err := loader.LoadInventory(path)
		if err != nil {
			return nil, err
		}
		for _, snapshot := range snapshots {
			repos.Inventory.AddSnapshot(snapshot)
		}
	}

	if path, ok := optional(dir, "forecast.csv"); ok {
		points, err := loader.LoadForecast(path)
		if err != nil {
			return nil, err
		}
		for _, point := range points {
			repos.Forecasts.AddPoint(point)
		}
	}

	if path, ok := optional(dir, "suppliers.csv"); ok {
		suppliers, err := loader.LoadSuppliers(path)
		if err != nil {
			return nil, err
		}
		for _, supplier := range suppliers {
			repos.Suppliers.AddSupplier(supplier)
		}
	}

	if path, ok := optional(dir, "supplier_links.csv"); ok {
		links, err := loader.LoadSupplierLinks(path)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			repos.Suppliers.AddLink(link)
		}
	}

	if path, ok := optional(dir, "warehouses.csv"); ok {
		warehouses, err := loader.LoadWarehouses(path)
		if err != nil {
			return nil, err
		}
		for _, warehouse := range warehouses {
			repos.Warehouses.AddWarehouse(warehouse)
		}
	}

	if path, ok := optional(dir, "routings.csv"); ok {
		steps, err := loader.LoadRoutings(path)
		if err != nil {
			return nil, err
		}
		for _, step := range steps {
			repos.Routings.AddStep(step)
		}
	}

	if path, ok := optional(dir, "work_centers.csv"); ok {
		centers, err := loader.LoadWorkCenters(path)
		if err != nil {
			return nil, err
		}
		for _, center := range centers {
			repos.WorkCenters.AddWorkCenter(center)
		}
	}

	if path, ok := optional(dir, "firm_orders.csv"); ok {
		firm, err := loader.LoadFirmOrders(path)
		if err != nil {
			return nil, err
		}
		for _, order := range firm {
			repos.Orders.AddOrder(order)
		}
	}

	if path, ok := optional(dir, "demand_history.csv"); ok {
		weekly, err := loader.LoadWeeklyDemand(path)
		if err != nil {
			return nil, err
		}
		for productID, samples := range weekly {
			repos.History.SetWeeklyDemand(productID, samples)
		}
	}

	if path, ok := optional(dir, "calendar.csv"); ok {
		days, err := loader.LoadCalendar(path)
		if err != nil {
			return nil, err
		}
		for _, day := range days {
			repos.Calendar.AddDay(day)
		}
	}

	// Exceptions from calendar.csv win; the fill only covers the gaps.
	now := time.Now().UTC()
	repos.Calendar.FillWorkingWeekdays(now.AddDate(0, 0, -7), now.AddDate(1, 0, 0))

	return repos, nil
}

func optional(dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func requireScenario(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("scenario directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scenario path %s is not a directory", dir)
	}
	return nil
}
