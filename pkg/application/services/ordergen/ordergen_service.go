// Package ordergen turns lot-sized planned receipts into enriched,
// persistable planned orders: supplier and cost for purchased products,
// work center and routing cost for manufactured ones, plus a priority
// classification against a reference date.
package ordergen

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// Service generates planned orders (stage 5).
type Service struct {
	products    repositories.ProductRepository
	suppliers   repositories.SupplierRepository
	routings    repositories.RoutingRepository
	workCenters repositories.WorkCenterRepository
	orders      repositories.OrderRepository
}

// NewService creates an order generation service.
func NewService(
	products repositories.ProductRepository,
	suppliers repositories.SupplierRepository,
	routings repositories.RoutingRepository,
	workCenters repositories.WorkCenterRepository,
	orders repositories.OrderRepository,
) *Service {
	return &Service{
		products:    products,
		suppliers:   suppliers,
		routings:    routings,
		workCenters: workCenters,
		orders:      orders,
	}
}

// Generate creates one PLANNED order per planned receipt and batch-persists
// them at the end of the stage. Products with an unmapped type are skipped
// with a warning.
func (s *Service) Generate(
	ctx context.Context,
	executionID uuid.UUID,
	plans []*dto.LotPlan,
	referenceDate time.Time,
) (*dto.OrderGenResult, error) {
	result := &dto.OrderGenResult{}

	sorted := make([]*dto.LotPlan, len(plans))
	copy(sorted, plans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	for _, plan := range sorted {
		if len(plan.Receipts) == 0 {
			continue
		}

		product, err := s.products.GetProduct(ctx, plan.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", plan.ProductID, err)
		}

		var kind entities.OrderKind
		switch {
		case product.Type.IsPurchased():
			kind = entities.OrderBuy
		case product.Type.IsManufactured():
			kind = entities.OrderMake
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown product kind %q for %s; orders skipped", product.Type, product.ID))
			continue
		}

		for _, receipt := range plan.Receipts {
			order, warnings, err := s.buildOrder(ctx, executionID, product, kind, plan, receipt)
			if err != nil {
				return nil, err
			}
			order.Priority = entities.PriorityFor(order.ReleaseDate, referenceDate)
			result.Orders = append(result.Orders, order)
			result.Warnings = append(result.Warnings, warnings...)
		}
	}

	if err := s.orders.CreateOrders(ctx, result.Orders); err != nil {
		return nil, fmt.Errorf("failed to persist planned orders: %w", err)
	}
	return result, nil
}

// buildOrder assembles and enriches a single planned order from a receipt.
func (s *Service) buildOrder(
	ctx context.Context,
	executionID uuid.UUID,
	product *entities.Product,
	kind entities.OrderKind,
	plan *dto.LotPlan,
	receipt dto.PlannedReceipt,
) (*entities.PlannedOrder, []string, error) {
	var warnings []string

	leadTimeDays := product.LeadTimeDays
	var supplierID, workCenterID *string
	var cost *decimal.Decimal

	switch kind {
	case entities.OrderBuy:
		links, err := s.suppliers.ListLinksForProduct(ctx, product.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list supplier links for %s: %w", product.ID, err)
		}
		link := services.SelectSupplierLink(links)
		if link == nil {
			warnings = append(warnings,
				fmt.Sprintf("no supplier for purchased product %s", product.ID))
			leadTimeDays = 0
			break
		}
		supplierID = &link.SupplierID

		leadTimeDays = 0
		if link.LeadTimeDays != nil {
			leadTimeDays = *link.LeadTimeDays
		} else {
			supplier, err := s.suppliers.GetSupplier(ctx, link.SupplierID)
			if err == nil && supplier.DefaultLeadTimeDays > 0 {
				leadTimeDays = supplier.DefaultLeadTimeDays
			}
		}

		if link.UnitPrice == nil {
			warnings = append(warnings,
				fmt.Sprintf("no unit price on supplier link %s/%s; cost unreported", product.ID, link.SupplierID))
		} else {
			c := decimal.NewFromFloat(receipt.Quantity).Mul(*link.UnitPrice).Round(4)
			cost = &c
		}

	case entities.OrderMake:
		steps, err := s.routings.ListStepsForProduct(ctx, product.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list routing for %s: %w", product.ID, err)
		}
		if len(steps) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("no routing for manufactured product %s", product.ID))
			break
		}
		workCenterID = &steps[0].WorkCenterID

		total := decimal.Zero
		priced := false
		for _, step := range steps {
			wc, err := s.workCenters.GetWorkCenter(ctx, step.WorkCenterID)
			if err != nil || wc.CostPerHour == nil {
				warnings = append(warnings,
					fmt.Sprintf("no hourly rate for work center %s; step skipped in cost", step.WorkCenterID))
				continue
			}
			hours := services.Round4(step.HoursFor(receipt.Quantity))
			total = total.Add(decimal.NewFromFloat(hours).Mul(*wc.CostPerHour))
			priced = true
		}
		if priced {
			c := total.Round(4)
			cost = &c
		}
	}

	order, err := entities.NewPlannedOrder(
		executionID, product.ID, kind, receipt.Quantity, receipt.PeriodStart, leadTimeDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build order for %s: %w", product.ID, err)
	}
	order.SupplierID = supplierID
	order.WorkCenterID = workCenterID
	order.EstimatedCost = cost
	order.LotSizingMethod = plan.Method
	return order, warnings, nil
}
