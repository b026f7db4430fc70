// Package lotsizing transforms net requirements into planned order receipts
// and lead-time-offset releases. Four methods are supported: lot-for-lot,
// EOQ with coverage carry-over, the Silver-Meal heuristic and the
// Wagner-Whitin optimal dynamic program.
package lotsizing

import (
	"fmt"
	"math"
	"time"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// ProductMeta carries the lot-sizing inputs of one product.
type ProductMeta struct {
	ProductID         string
	Method            entities.LotSizingMethod
	EOQ               float64
	MinimumLot        float64
	PurchaseMultiple  float64
	MOQ               float64
	LeadTimePeriods   int
	OrderCost         float64 // K, per order
	WeeklyHoldingCost float64 // h, per unit per period
}

// Service applies lot sizing (stage 4).
type Service struct{}

// NewService creates a lot-sizing service.
func NewService() *Service {
	return &Service{}
}

// Plan converts a product's net requirements into receipts and releases.
// Receipts whose release period falls before the horizon are reported as
// past due, preserving their receipt date. Returns ErrBadLotSizingMethod
// for an unknown method tag.
func (s *Service) Plan(grid dto.NetGrid, periodStarts []time.Time, meta ProductMeta) (*dto.LotPlan, error) {
	net := make([]float64, len(grid.Periods))
	for i, period := range grid.Periods {
		net[i] = period.NetRequirement
	}

	constrain := func(q float64) float64 {
		return ApplyConstraints(q, meta.MinimumLot, meta.PurchaseMultiple, meta.MOQ)
	}

	var receipts []float64
	switch meta.Method {
	case entities.LotForLot:
		receipts = lotForLot(net, constrain)
	case entities.LotEOQ:
		receipts = economicOrderQuantity(net, meta.EOQ, constrain)
	case entities.SilverMeal:
		receipts = silverMeal(net, meta.OrderCost, meta.WeeklyHoldingCost, constrain)
	case entities.WagnerWhitin:
		receipts = wagnerWhitin(net, meta.OrderCost, meta.WeeklyHoldingCost, constrain)
	default:
		return nil, fmt.Errorf("%w: %q on product %s",
			entities.ErrBadLotSizingMethod, meta.Method, meta.ProductID)
	}

	plan := &dto.LotPlan{ProductID: meta.ProductID, Method: meta.Method}
	for idx, qty := range receipts {
		if qty <= 0 {
			continue
		}
		qty = services.Round4(qty)
		plan.Receipts = append(plan.Receipts, dto.PlannedReceipt{
			PeriodIndex: idx,
			PeriodStart: periodAt(periodStarts, idx),
			Quantity:    qty,
		})

		releaseIdx := idx - meta.LeadTimePeriods
		release := dto.PlannedRelease{
			PeriodIndex:        releaseIdx,
			ReceiptPeriodStart: periodAt(periodStarts, idx),
			Quantity:           qty,
		}
		switch {
		case releaseIdx < 0:
			// Past due: the release keeps the original receipt date so the
			// order generator can surface how late it already is.
			release.PeriodStart = periodAt(periodStarts, idx)
			plan.PastDue = append(plan.PastDue, release)
		case releaseIdx >= len(periodStarts):
			// Outside the horizon; dropped.
		default:
			release.PeriodStart = periodAt(periodStarts, releaseIdx)
			plan.Releases = append(plan.Releases, release)
		}
	}
	return plan, nil
}

func periodAt(periodStarts []time.Time, idx int) time.Time {
	if idx < 0 || idx >= len(periodStarts) {
		return time.Time{}
	}
	return periodStarts[idx]
}

// ApplyConstraints adjusts a raw order quantity, in order: minimum lot,
// purchase multiple, MOQ.
func ApplyConstraints(q, minimumLot, purchaseMultiple, moq float64) float64 {
	if q > 0 && q < minimumLot {
		q = minimumLot
	}
	if purchaseMultiple > 1 {
		q = math.Ceil(q/purchaseMultiple) * purchaseMultiple
	}
	if q < moq {
		q = moq
	}
	return q
}

// lotForLot places one order per nonzero-net period.
func lotForLot(net []float64, constrain func(float64) float64) []float64 {
	receipts := make([]float64, len(net))
	for i, qty := range net {
		if qty > 0 {
			receipts[i] = constrain(qty)
		}
	}
	return receipts
}

// economicOrderQuantity carries coverage between periods: a nonzero-net
// period drains coverage when possible, otherwise orders max(EOQ, deficit).
// Coverage is updated with the post-constraint order quantity. A
// non-positive EOQ degrades to lot-for-lot on the deficit.
func economicOrderQuantity(net []float64, eoq float64, constrain func(float64) float64) []float64 {
	receipts := make([]float64, len(net))
	coverage := 0.0
	for i, qty := range net {
		if qty <= 0 {
			continue
		}
		if coverage >= qty {
			coverage -= qty
			continue
		}
		deficit := qty - coverage
		raw := deficit
		if eoq > raw {
			raw = eoq
		}
		ordered := constrain(raw)
		receipts[i] = ordered
		coverage = ordered - deficit
	}
	return receipts
}
