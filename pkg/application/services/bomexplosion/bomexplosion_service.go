// Package bomexplosion turns level-0 MPS demand into time-phased gross
// requirements for every BOM level, after validating the BOM graph.
package bomexplosion

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// Service performs the multi-level BOM explosion (stage 3a).
type Service struct {
	bom      repositories.BOMRepository
	products repositories.ProductRepository
}

// NewService creates a BOM explosion service.
func NewService(bom repositories.BOMRepository, products repositories.ProductRepository) *Service {
	return &Service{bom: bom, products: products}
}

// Explode sweeps the BOM level by level, emitting child gross requirements
// in the same period as their parents: childQty = parentQty * bomQty *
// (1 + loss/100). Contributions from shared parents accumulate per period
// and are rounded before the child's own level is swept. MPS demand for root
// products passes through unchanged.
//
// Returns *entities.CircularBOMError when the BOM graph has a cycle.
func (s *Service) Explode(ctx context.Context, mps *dto.MPSResult) (*dto.ExplosionResult, error) {
	lines, err := s.bom.ListActiveLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list BOM lines: %w", err)
	}

	finished, err := s.products.ListActiveByType(ctx, entities.ProductFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished products: %w", err)
	}
	finishedIDs := make([]string, 0, len(finished))
	for _, p := range finished {
		finishedIDs = append(finishedIDs, p.ID)
	}

	graph := services.NewBOMGraph(lines)
	if cycle := graph.DetectCycle(); cycle != nil {
		return nil, &entities.CircularBOMError{Path: cycle}
	}

	roots := graph.Roots(finishedIDs)
	codes := graph.LowLevelCodes(roots)

	// demand accumulates raw per (product, period start); rounding happens
	// once per level sweep and again at emission into the result.
	demand := make(map[string]map[time.Time]float64)
	for _, schedule := range mps.Schedules {
		periods := make(map[time.Time]float64, len(schedule.Buckets))
		for _, bucket := range schedule.Buckets {
			periods[bucket.WeekStart] = bucket.MPSDemand
		}
		demand[schedule.ProductID] = periods
	}

	// Group products by level so each node is expanded exactly once, after
	// every parent contribution has landed.
	byLevel := make(map[int][]string)
	for id, level := range codes {
		byLevel[level] = append(byLevel[level], id)
	}
	maxLevel := services.MaxLevel(codes)

	for level := 0; level <= maxLevel; level++ {
		nodes := byLevel[level]
		sort.Strings(nodes)
		for _, parent := range nodes {
			periods := demand[parent]
			if len(periods) == 0 {
				continue
			}
			for period, qty := range periods {
				periods[period] = services.Round4(qty)
			}
			for _, edge := range graph.Edges(parent) {
				child := demand[edge.ChildID]
				if child == nil {
					child = make(map[time.Time]float64)
					demand[edge.ChildID] = child
				}
				factor := edge.Quantity * (1 + edge.LossPct/100)
				for period, qty := range periods {
					if qty == 0 {
						continue
					}
					child[period] += qty * factor
				}
			}
		}
	}

	result := &dto.ExplosionResult{
		Gross:         make(map[string][]dto.PeriodDemand, len(demand)),
		LowLevelCodes: codes,
	}
	for productID, periods := range demand {
		series := make([]dto.PeriodDemand, 0, len(periods))
		for period, qty := range periods {
			series = append(series, dto.PeriodDemand{
				PeriodStart: period,
				Quantity:    services.Round4(qty),
			})
		}
		sort.Slice(series, func(i, j int) bool {
			return series[i].PeriodStart.Before(series[j].PeriodStart)
		})
		result.Gross[productID] = series
	}
	return result, nil
}
