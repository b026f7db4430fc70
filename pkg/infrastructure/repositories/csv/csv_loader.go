// Package csv loads planning master data from CSV files, mostly for
// seeding scenario runs and the command line tools.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads the product master from a CSV file.
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readAll(filename, "products")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "code", "description", "type", "abc_class", "unit_volume_m3",
		"lot_sizing_method", "minimum_lot", "purchase_multiple", "lead_time_days",
		"unit_cost", "order_cost", "annual_holding_pct", "review_interval_days", "safety_stock_override", "active"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var products []*entities.Product
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// LoadBOM loads bill-of-material lines from a CSV file.
func (l *Loader) LoadBOM(filename string) ([]entities.BOMLine, error) {
	records, err := readAll(filename, "BOM")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"parent_id", "child_id", "quantity", "loss_pct", "active"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("BOM CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var lines []entities.BOMLine
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("BOM CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		quantity, err := parseFloat(record[2], "quantity")
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}
		lossPct, err := parseFloat(record[3], "loss_pct")
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}

		lines = append(lines, entities.BOMLine{
			ParentID: record[0],
			ChildID:  record[1],
			Quantity: quantity,
			LossPct:  lossPct,
			Active:   parseBool(record[4]),
		})
	}
	return lines, nil
}

// LoadInventory loads stock snapshots from a CSV file.
func (l *Loader) LoadInventory(filename string) ([]entities.InventorySnapshot, error) {
	records, err := readAll(filename, "inventory")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"warehouse_id", "product_id", "available", "reserved"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var snapshots []entities.InventorySnapshot
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("inventory CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		available, err := parseFloat(record[2], "available")
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		reserved, err := parseFloat(record[3], "reserved")
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}

		snapshots = append(snapshots, entities.InventorySnapshot{
			WarehouseID: record[0],
			ProductID:   record[1],
			Available:   available,
			Reserved:    reserved,
		})
	}
	return snapshots, nil
}

// LoadForecast loads forecast quantile points from a CSV file. Empty
// quantile cells are treated as absent.
func (l *Loader) LoadForecast(filename string) ([]entities.ForecastPoint, error) {
	records, err := readAll(filename, "forecast")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "period_start", "p10", "p25", "p50", "p75", "p90"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("forecast CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var points []entities.ForecastPoint
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("forecast CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		periodStart, err := time.Parse("2006-01-02", record[1])
		if err != nil {
			return nil, fmt.Errorf("forecast CSV row %d: invalid period_start %q (expected YYYY-MM-DD)", i+2, record[1])
		}

		point := entities.ForecastPoint{ProductID: record[0], PeriodStart: periodStart.UTC()}
		for col, target := range map[int]**float64{
			2: &point.P10, 3: &point.P25, 4: &point.P50, 5: &point.P75, 6: &point.P90,
		} {
			value, err := parseOptionalFloat(record[col])
			if err != nil {
				return nil, fmt.Errorf("forecast CSV row %d: invalid %s: %s", i+2, expectedHeader[col], record[col])
			}
			*target = value
		}
		points = append(points, point)
	}
	return points, nil
}

// LoadSuppliers loads suppliers from a CSV file. Empty min/max lead time
// cells are treated as absent.
func (l *Loader) LoadSuppliers(filename string) ([]*entities.Supplier, error) {
	records, err := readAll(filename, "suppliers")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "default_lead_time_days", "min_lead_time_days", "max_lead_time_days"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("suppliers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var suppliers []*entities.Supplier
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("suppliers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		supplier := &entities.Supplier{ID: record[0], Name: record[1]}
		if supplier.DefaultLeadTimeDays, err = strconv.Atoi(record[2]); err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: invalid default_lead_time_days: %s", i+2, record[2])
		}
		if supplier.MinLeadTimeDays, err = parseOptionalInt(record[3]); err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: invalid min_lead_time_days: %s", i+2, record[3])
		}
		if supplier.MaxLeadTimeDays, err = parseOptionalInt(record[4]); err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: invalid max_lead_time_days: %s", i+2, record[4])
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

// LoadWarehouses loads warehouses from a CSV file.
func (l *Loader) LoadWarehouses(filename string) ([]*entities.Warehouse, error) {
	records, err := readAll(filename, "warehouses")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "code", "name", "capacity_m3", "active"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("warehouses CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var warehouses []*entities.Warehouse
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("warehouses CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		capacity, err := parseFloat(record[3], "capacity_m3")
		if err != nil {
			return nil, fmt.Errorf("warehouses CSV row %d: %w", i+2, err)
		}
		warehouses = append(warehouses, &entities.Warehouse{
			ID:         record[0],
			Code:       record[1],
			Name:       record[2],
			CapacityM3: capacity,
			Active:     parseBool(record[4]),
		})
	}
	return warehouses, nil
}

// LoadSupplierLinks loads product-supplier links from a CSV file.
func (l *Loader) LoadSupplierLinks(filename string) ([]entities.SupplierLink, error) {
	records, err := readAll(filename, "supplier links")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "supplier_id", "lead_time_days", "moq", "unit_price", "is_principal"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("supplier links CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var links []entities.SupplierLink
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("supplier links CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		link := entities.SupplierLink{
			ProductID:   record[0],
			SupplierID:  record[1],
			IsPrincipal: parseBool(record[5]),
		}
		if record[2] != "" {
			days, err := strconv.Atoi(record[2])
			if err != nil {
				return nil, fmt.Errorf("supplier links CSV row %d: invalid lead_time_days: %s", i+2, record[2])
			}
			link.LeadTimeDays = &days
		}
		moq, err := parseFloat(record[3], "moq")
		if err != nil {
			return nil, fmt.Errorf("supplier links CSV row %d: %w", i+2, err)
		}
		link.MOQ = moq
		if record[4] != "" {
			price, err := decimal.NewFromString(record[4])
			if err != nil {
				return nil, fmt.Errorf("supplier links CSV row %d: invalid unit_price: %s", i+2, record[4])
			}
			link.UnitPrice = &price
		}
		links = append(links, link)
	}
	return links, nil
}

// LoadWeeklyDemand loads historical weekly demand samples from a CSV file
// with one row per (product, week), oldest weeks first per product.
func (l *Loader) LoadWeeklyDemand(filename string) (map[string][]float64, error) {
	records, err := readAll(filename, "demand history")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "week_start", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("demand history CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	weekly := make(map[string][]float64)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("demand history CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		if _, err := time.Parse("2006-01-02", record[1]); err != nil {
			return nil, fmt.Errorf("demand history CSV row %d: invalid week_start %q (expected YYYY-MM-DD)", i+2, record[1])
		}
		quantity, err := parseFloat(record[2], "quantity")
		if err != nil {
			return nil, fmt.Errorf("demand history CSV row %d: %w", i+2, err)
		}
		weekly[record[0]] = append(weekly[record[0]], quantity)
	}
	return weekly, nil
}

// LoadRoutings loads routing steps from a CSV file.
func (l *Loader) LoadRoutings(filename string) ([]entities.RoutingStep, error) {
	records, err := readAll(filename, "routings")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "work_center_id", "sequence", "setup_minutes", "minutes_per_unit"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("routings CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var steps []entities.RoutingStep
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("routings CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		step := entities.RoutingStep{ProductID: record[0], WorkCenterID: record[1]}
		if step.Sequence, err = strconv.Atoi(record[2]); err != nil {
			return nil, fmt.Errorf("routings CSV row %d: invalid sequence: %s", i+2, record[2])
		}
		if step.SetupMinutes, err = parseFloat(record[3], "setup_minutes"); err != nil {
			return nil, fmt.Errorf("routings CSV row %d: %w", i+2, err)
		}
		if step.MinutesPerUnit, err = parseFloat(record[4], "minutes_per_unit"); err != nil {
			return nil, fmt.Errorf("routings CSV row %d: %w", i+2, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// LoadWorkCenters loads work centers from a CSV file with one row per
// shift. Rows repeating an id append further shifts to that center; the
// weekday list uses semicolon-separated time.Weekday numbers (Monday=1).
func (l *Loader) LoadWorkCenters(filename string) ([]*entities.WorkCenter, error) {
	records, err := readAll(filename, "work centers")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "code", "name", "efficiency_pct", "cost_per_hour",
		"shift_start", "shift_end", "shift_weekdays", "active"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("work centers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	byID := make(map[string]*entities.WorkCenter)
	var centers []*entities.WorkCenter
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("work centers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		center, seen := byID[record[0]]
		if !seen {
			center = &entities.WorkCenter{
				ID:     record[0],
				Code:   record[1],
				Name:   record[2],
				Active: parseBool(record[8]),
			}
			if center.EfficiencyPct, err = parseFloat(record[3], "efficiency_pct"); err != nil {
				return nil, fmt.Errorf("work centers CSV row %d: %w", i+2, err)
			}
			if record[4] != "" {
				rate, err := decimal.NewFromString(record[4])
				if err != nil {
					return nil, fmt.Errorf("work centers CSV row %d: invalid cost_per_hour: %s", i+2, record[4])
				}
				center.CostPerHour = &rate
			}
			byID[record[0]] = center
			centers = append(centers, center)
		}

		weekdays, err := parseWeekdays(record[7])
		if err != nil {
			return nil, fmt.Errorf("work centers CSV row %d: %w", i+2, err)
		}
		shift, err := entities.NewShift(record[5], record[6], weekdays)
		if err != nil {
			return nil, fmt.Errorf("work centers CSV row %d: %w", i+2, err)
		}
		center.Shifts = append(center.Shifts, *shift)
	}
	return centers, nil
}

// LoadCalendar loads factory calendar days from a CSV file. Typically
// only the exceptions (holidays, extra Saturdays) are listed; regular
// weekdays are filled in afterwards.
func (l *Loader) LoadCalendar(filename string) ([]entities.CalendarDay, error) {
	records, err := readAll(filename, "calendar")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"date", "type"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("calendar CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var days []entities.CalendarDay
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("calendar CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			return nil, fmt.Errorf("calendar CSV row %d: invalid date %q (expected YYYY-MM-DD)", i+2, record[0])
		}
		dayType := entities.CalendarDayType(strings.ToUpper(record[1]))
		if dayType != entities.DayWorking && dayType != entities.DayNonWorking {
			return nil, fmt.Errorf("calendar CSV row %d: invalid type: %s", i+2, record[1])
		}
		days = append(days, entities.CalendarDay{Date: date.UTC(), Type: dayType})
	}
	return days, nil
}

// LoadFirmOrders loads firm and released orders from a CSV file. These are
// the scheduled receipts that netting consumes and action messages
// reconcile against.
func (l *Loader) LoadFirmOrders(filename string) ([]*entities.PlannedOrder, error) {
	records, err := readAll(filename, "firm orders")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "kind", "quantity", "needed_by", "expected_receipt", "status"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("firm orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var orders []*entities.PlannedOrder
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("firm orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		kind := entities.OrderKind(strings.ToUpper(record[1]))
		if kind != entities.OrderBuy && kind != entities.OrderMake {
			return nil, fmt.Errorf("firm orders CSV row %d: invalid kind: %s", i+2, record[1])
		}
		status := entities.OrderStatus(strings.ToUpper(record[5]))
		if status != entities.StatusFirm && status != entities.StatusReleased {
			return nil, fmt.Errorf("firm orders CSV row %d: invalid status: %s", i+2, record[5])
		}
		quantity, err := parseFloat(record[2], "quantity")
		if err != nil {
			return nil, fmt.Errorf("firm orders CSV row %d: %w", i+2, err)
		}
		neededBy, err := time.Parse("2006-01-02", record[3])
		if err != nil {
			return nil, fmt.Errorf("firm orders CSV row %d: invalid needed_by %q (expected YYYY-MM-DD)", i+2, record[3])
		}
		expectedReceipt := neededBy
		if record[4] != "" {
			if expectedReceipt, err = time.Parse("2006-01-02", record[4]); err != nil {
				return nil, fmt.Errorf("firm orders CSV row %d: invalid expected_receipt %q (expected YYYY-MM-DD)", i+2, record[4])
			}
		}

		orders = append(orders, &entities.PlannedOrder{
			ID:              uuid.New(),
			ProductID:       record[0],
			Kind:            kind,
			Quantity:        quantity,
			NeededBy:        neededBy.UTC(),
			ExpectedReceipt: expectedReceipt.UTC(),
			Status:          status,
		})
	}
	return orders, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	product := &entities.Product{
		ID:          record[0],
		Code:        record[1],
		Description: record[2],
		Type:        entities.ProductType(strings.ToUpper(record[3])),
		ABCClass:    strings.ToUpper(record[4]),
		Active:      parseBool(record[15]),
	}
	if !product.Type.IsPurchased() && !product.Type.IsManufactured() {
		return nil, fmt.Errorf("invalid type: %s", record[3])
	}

	var err error
	if product.UnitVolumeM3, err = parseFloat(record[5], "unit_volume_m3"); err != nil {
		return nil, err
	}
	product.LotSizingMethod = entities.LotSizingMethod(strings.ToUpper(record[6]))
	if product.MinimumLot, err = parseFloat(record[7], "minimum_lot"); err != nil {
		return nil, err
	}
	if product.PurchaseMultiple, err = parseFloat(record[8], "purchase_multiple"); err != nil {
		return nil, err
	}
	if product.LeadTimeDays, err = strconv.Atoi(record[9]); err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[9])
	}
	if product.UnitCost, err = parseFloat(record[10], "unit_cost"); err != nil {
		return nil, err
	}
	if product.OrderCost, err = parseFloat(record[11], "order_cost"); err != nil {
		return nil, err
	}
	if product.AnnualHoldingPct, err = parseFloat(record[12], "annual_holding_pct"); err != nil {
		return nil, err
	}
	if product.ReviewIntervalDays, err = strconv.Atoi(record[13]); err != nil {
		return nil, fmt.Errorf("invalid review_interval_days: %s", record[13])
	}
	if product.SafetyStockOverride, err = parseOptionalFloat(record[14]); err != nil {
		return nil, fmt.Errorf("invalid safety_stock_override: %s", record[14])
	}
	return product, nil
}

func parseFloat(s, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", field, s)
	}
	return value, nil
}

func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseWeekdays(s string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid shift_weekdays entry: %s", part)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("shift_weekdays must list at least one day")
	}
	return days, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
