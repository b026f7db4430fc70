// Package mps composes level-0 demand for finished products: the master
// production schedule blends forecast demand with firm orders inside the
// firm-order horizon.
package mps

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

// Service computes the master production schedule (stage 1).
type Service struct {
	products  repositories.ProductRepository
	orders    repositories.OrderRepository
	forecasts repositories.ForecastRepository
}

// NewService creates an MPS service.
func NewService(
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	forecasts repositories.ForecastRepository,
) *Service {
	return &Service{products: products, orders: orders, forecasts: forecasts}
}

// Calculate produces weekly MPS buckets for every active finished product.
// Inside the firm-order horizon the schedule takes the maximum of forecast
// and firm-order demand; beyond it, forecast alone drives the plan.
func (s *Service) Calculate(ctx context.Context, params entities.ExecutionParams) (*dto.MPSResult, error) {
	params = params.WithDefaults()

	start := time.Now().UTC()
	if params.StartDate != nil {
		start = *params.StartDate
	}
	start = services.WeekStart(start)
	buckets := services.WeeklyBuckets(start, params.PlanningHorizonWeeks)

	finished, err := s.products.ListActiveByType(ctx, entities.ProductFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished products: %w", err)
	}

	forecastByProduct, err := s.forecasts.LatestCompletedPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast points: %w", err)
	}

	firmOrders, err := s.orders.ListByStatus(ctx, entities.StatusFirm)
	if err != nil {
		return nil, fmt.Errorf("failed to list firm orders: %w", err)
	}

	result := &dto.MPSResult{
		StartDate:    start,
		HorizonWeeks: params.PlanningHorizonWeeks,
	}

	sort.Slice(finished, func(i, j int) bool { return finished[i].ID < finished[j].ID })

	for _, product := range finished {
		points := forecastByProduct[product.ID]
		if len(points) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("no forecast available for product %s", product.ID))
		}

		schedule := dto.MPSProductSchedule{
			ProductID: product.ID,
			Buckets:   make([]dto.MPSBucket, 0, len(buckets)),
		}

		for i, bucket := range buckets {
			forecastDemand := 0.0
			for _, point := range points {
				if services.WeekStart(point.PeriodStart).Equal(bucket.Start) {
					forecastDemand += point.QuantileOrZero(point.P50)
				}
			}

			firmDemand := 0.0
			for _, order := range firmOrders {
				if order.Kind != entities.OrderMake || order.ProductID != product.ID {
					continue
				}
				if bucket.Contains(order.NeededBy) {
					firmDemand += order.Quantity
				}
			}

			demand := forecastDemand
			if i < *params.FirmOrderHorizonWeeks && firmDemand > demand {
				demand = firmDemand
			}

			mpsBucket := dto.MPSBucket{
				WeekStart:       bucket.Start,
				WeekEnd:         bucket.End,
				ForecastDemand:  services.Round4(forecastDemand),
				FirmOrderDemand: services.Round4(firmDemand),
				MPSDemand:       services.Round4(demand),
			}
			schedule.Buckets = append(schedule.Buckets, mpsBucket)
			schedule.TotalDemand = services.Round4(schedule.TotalDemand + mpsBucket.MPSDemand)
		}

		result.Schedules = append(result.Schedules, schedule)
	}

	return result, nil
}
