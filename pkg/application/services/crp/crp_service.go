// Package crp projects weekly work center load from planned production
// orders and compares it against calendar-driven available capacity.
package crp

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// Service computes capacity requirements (stage 7).
type Service struct {
	workCenters repositories.WorkCenterRepository
	calendar    repositories.CalendarRepository
	routings    repositories.RoutingRepository
	loads       repositories.CapacityLoadRepository
}

// NewService creates a capacity planning service.
func NewService(
	workCenters repositories.WorkCenterRepository,
	calendar repositories.CalendarRepository,
	routings repositories.RoutingRepository,
	loads repositories.CapacityLoadRepository,
) *Service {
	return &Service{
		workCenters: workCenters,
		calendar:    calendar,
		routings:    routings,
		loads:       loads,
	}
}

// Calculate produces one CapacityLoad per active work center per week and
// persists the full grid. Load is booked into the week containing the
// order's needed-by date; production orders without a routing step on a
// work center simply contribute nothing there.
func (s *Service) Calculate(
	ctx context.Context,
	executionID uuid.UUID,
	buckets []services.WeekBucket,
	orders []*entities.PlannedOrder,
) (*dto.CapacityResult, error) {
	if len(buckets) == 0 {
		return &dto.CapacityResult{}, nil
	}

	centers, err := s.workCenters.ListActiveWorkCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work centers: %w", err)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i].ID < centers[j].ID })

	days, err := s.calendar.ListDays(ctx, buckets[0].Start, buckets[len(buckets)-1].End)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar days: %w", err)
	}
	working := make(map[int64]bool, len(days))
	for _, day := range days {
		if day.Type == entities.DayWorking {
			working[day.Date.Unix()] = true
		}
	}

	planned, err := s.plannedHours(ctx, buckets, orders)
	if err != nil {
		return nil, err
	}

	result := &dto.CapacityResult{}
	for _, center := range centers {
		for weekIdx, bucket := range buckets {
			available := availableHours(center, bucket, working)
			load := planned[loadKey{center.ID, weekIdx}]

			row := entities.CapacityLoad{
				ExecutionID:    executionID,
				WorkCenterID:   center.ID,
				WeekStart:      bucket.Start,
				AvailableHours: services.Round4(available),
				PlannedHours:   services.Round4(load),
			}
			if available > 0 {
				row.UtilizationPct = services.Round2(load / available * 100)
			}
			row.Overloaded = row.UtilizationPct > 100
			if excess := load - available; excess > 0 {
				row.ExcessHours = services.Round4(excess)
			}
			row.Suggestion = entities.SuggestionFor(row.UtilizationPct)
			result.Loads = append(result.Loads, row)
		}
	}

	if err := s.loads.SaveLoads(ctx, result.Loads); err != nil {
		return nil, fmt.Errorf("failed to save capacity loads: %w", err)
	}
	return result, nil
}

type loadKey struct {
	WorkCenterID string
	WeekIndex    int
}

// plannedHours books routing hours of every MAKE order into the week of its
// needed-by date, keyed by work center.
func (s *Service) plannedHours(
	ctx context.Context,
	buckets []services.WeekBucket,
	orders []*entities.PlannedOrder,
) (map[loadKey]float64, error) {
	planned := make(map[loadKey]float64)
	steps := make(map[string][]entities.RoutingStep)

	for _, order := range orders {
		if order.Kind != entities.OrderMake || order.Status == entities.StatusCancelled {
			continue
		}
		weekIdx := services.BucketIndex(buckets, services.WeekStart(order.NeededBy))
		if weekIdx < 0 {
			continue
		}

		productSteps, cached := steps[order.ProductID]
		if !cached {
			var err error
			productSteps, err = s.routings.ListStepsForProduct(ctx, order.ProductID)
			if err != nil {
				return nil, fmt.Errorf("failed to list routing for %s: %w", order.ProductID, err)
			}
			steps[order.ProductID] = productSteps
		}

		for _, step := range productSteps {
			planned[loadKey{step.WorkCenterID, weekIdx}] += step.HoursFor(order.Quantity)
		}
	}
	return planned, nil
}

// availableHours sums shift durations over the week's working days, applies
// the center's efficiency and removes scheduled stop overlap. Never negative.
func availableHours(center *entities.WorkCenter, bucket services.WeekBucket, working map[int64]bool) float64 {
	gross := 0.0
	for day := bucket.Start; day.Before(bucket.End); day = day.AddDate(0, 0, 1) {
		if !working[day.Unix()] {
			continue
		}
		for _, shift := range center.Shifts {
			if shift.CoversDay(day) {
				gross += shift.Duration().Hours()
			}
		}
	}

	stopped := 0.0
	for _, stop := range center.ScheduledStops {
		stopped += stop.Overlap(bucket.Start, bucket.End).Hours()
	}

	available := gross*center.Efficiency() - stopped
	if available < 0 {
		return 0
	}
	return available
}
