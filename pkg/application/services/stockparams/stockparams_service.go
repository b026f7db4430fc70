// Package stockparams computes per-product inventory control parameters:
// safety stock, reorder point, min/max and EOQ. The safety-stock method is
// selected per product (manual override, Monte Carlo, TFT quantiles,
// classical formula).
package stockparams

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// minMonteCarloSamples is the weekly-demand sample count below which the
// Monte Carlo path is unavailable.
const minMonteCarloSamples = 12

// maxParallelProducts bounds the per-product worker pool of stage 2.
const maxParallelProducts = 8

// Service computes stock parameters (stage 2).
type Service struct {
	products  repositories.ProductRepository
	forecasts repositories.ForecastRepository
	history   repositories.HistoryRepository
	suppliers repositories.SupplierRepository
	store     repositories.StockParamsRepository
}

// NewService creates a stock parameter service.
func NewService(
	products repositories.ProductRepository,
	forecasts repositories.ForecastRepository,
	history repositories.HistoryRepository,
	suppliers repositories.SupplierRepository,
	store repositories.StockParamsRepository,
) *Service {
	return &Service{
		products:  products,
		forecasts: forecasts,
		history:   history,
		suppliers: suppliers,
		store:     store,
	}
}

// Calculate computes and persists stock parameters for every active product.
// Products are processed in parallel; results are sorted by product id before
// persistence so stored order is deterministic. When forceRecalculate is
// false, products with any prior stock parameter row are not recomputed;
// their latest stored row is returned in Reused so downstream stages still
// see their safety stock and EOQ.
func (s *Service) Calculate(
	ctx context.Context,
	executionID uuid.UUID,
	params entities.ExecutionParams,
) (*dto.StockParamsResult, error) {
	params = params.WithDefaults()

	products, err := s.products.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}

	result := &dto.StockParamsResult{}
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelProducts)

	for _, product := range products {
		product := product
		group.Go(func() error {
			if !params.ForceRecalculate {
				exists, err := s.store.HasParamsForProduct(groupCtx, product.ID)
				if err != nil {
					return fmt.Errorf("failed to check prior params for %s: %w", product.ID, err)
				}
				if exists {
					prior, err := s.store.LatestParamsForProduct(groupCtx, product.ID)
					if err != nil {
						return fmt.Errorf("failed to load prior params for %s: %w", product.ID, err)
					}
					mu.Lock()
					result.Skipped++
					result.Reused = append(result.Reused, prior)
					mu.Unlock()
					return nil
				}
			}

			computed, warnings, err := s.computeForProduct(groupCtx, executionID, product, params)
			if err != nil {
				return err
			}

			mu.Lock()
			result.Params = append(result.Params, computed)
			result.Warnings = append(result.Warnings, warnings...)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Params, func(i, j int) bool {
		return result.Params[i].ProductID < result.Params[j].ProductID
	})
	sort.Slice(result.Reused, func(i, j int) bool {
		return result.Reused[i].ProductID < result.Reused[j].ProductID
	})
	sort.Strings(result.Warnings)

	for _, p := range result.Params {
		if err := s.store.SaveStockParams(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to save stock params for %s: %w", p.ProductID, err)
		}
	}

	return result, nil
}

// computeForProduct runs the method selection and the shared formulas for
// one product.
func (s *Service) computeForProduct(
	ctx context.Context,
	executionID uuid.UUID,
	product *entities.Product,
	params entities.ExecutionParams,
) (*entities.StockParams, []string, error) {
	var warnings []string

	weekly, err := s.history.WeeklyDemand(ctx, product.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load demand history for %s: %w", product.ID, err)
	}

	leadTime, err := s.leadTimeFor(ctx, product)
	if err != nil {
		return nil, nil, err
	}

	meanDemand := services.Mean(weekly)
	sigmaDemand := services.StdDev(weekly)
	ltWeeks := leadTime.Days / 7
	reviewWeeks := float64(product.ReviewIntervalDays) / 7
	serviceLevel := entities.DefaultServiceLevel

	var (
		safetyStock float64
		method      entities.StockParamsMethod
	)

	switch {
	case product.SafetyStockOverride != nil:
		safetyStock = *product.SafetyStockOverride
		method = entities.MethodClassical

	case product.ABCClass == "A" && len(weekly) >= minMonteCarloSamples:
		sim := simulate(weekly, leadTime.Days, leadTime.SigmaDays, serviceLevel,
			params.MonteCarloIterations, newRand(params.MonteCarloSeed))
		sim.ProductID = product.ID
		safetyStock = sim.SafetyStock
		method = entities.MethodMonteCarlo

	default:
		points, err := s.forecasts.PointsForProduct(ctx, product.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load forecast for %s: %w", product.ID, err)
		}
		horizon := int(math.Ceil(ltWeeks))
		if horizon > 0 && len(points) >= horizon {
			safetyStock = tftSafetyStock(points[:horizon], serviceLevel)
			method = entities.MethodTFTQuantile
		} else {
			safetyStock = classicalSafetyStock(serviceLevel, ltWeeks, sigmaDemand,
				meanDemand, leadTime.SigmaDays/7)
			method = entities.MethodClassical
			if len(weekly) == 0 {
				warnings = append(warnings,
					fmt.Sprintf("no demand history for product %s; classical safety stock is 0", product.ID))
			}
		}
	}

	safetyStock = services.Round4(math.Max(0, safetyStock))
	rop := services.Round4(meanDemand*ltWeeks + safetyStock)

	return &entities.StockParams{
		ExecutionID:  executionID,
		ProductID:    product.ID,
		SafetyStock:  safetyStock,
		ReorderPoint: rop,
		MinStock:     rop,
		MaxStock:     services.Round4(meanDemand*(ltWeeks+reviewWeeks) + safetyStock),
		EOQ:          EconomicOrderQuantity(meanDemand*52, product.OrderCost, product.UnitCost, product.AnnualHoldingPct),
		Method:       method,
		ServiceLevel: serviceLevel,
		CalculatedAt: time.Now().UTC(),
	}, warnings, nil
}

// leadTime bundles the effective lead time and its variability in days.
type leadTime struct {
	Days      float64
	SigmaDays float64
}

// leadTimeFor resolves lead time and sigma for a product. Purchased products
// use the selected supplier link (link lead time, then supplier default,
// then the product's own); manufactured products use the production lead
// time with zero variability.
func (s *Service) leadTimeFor(ctx context.Context, product *entities.Product) (leadTime, error) {
	lt := leadTime{Days: float64(product.LeadTimeDays)}
	if !product.Type.IsPurchased() {
		return lt, nil
	}

	links, err := s.suppliers.ListLinksForProduct(ctx, product.ID)
	if err != nil {
		return lt, fmt.Errorf("failed to list supplier links for %s: %w", product.ID, err)
	}
	link := services.SelectSupplierLink(links)
	if link == nil {
		return lt, nil
	}

	supplier, err := s.suppliers.GetSupplier(ctx, link.SupplierID)
	if err != nil {
		return lt, fmt.Errorf("failed to load supplier %s: %w", link.SupplierID, err)
	}

	if link.LeadTimeDays != nil {
		lt.Days = float64(*link.LeadTimeDays)
	} else if supplier.DefaultLeadTimeDays > 0 {
		lt.Days = float64(supplier.DefaultLeadTimeDays)
	}

	switch {
	case len(link.LeadTimeHistory) >= 5:
		lt.SigmaDays = services.StdDev(link.LeadTimeHistory)
	case supplier.MinLeadTimeDays != nil && supplier.MaxLeadTimeDays != nil:
		lt.SigmaDays = float64(*supplier.MaxLeadTimeDays-*supplier.MinLeadTimeDays) / 6
	}
	return lt, nil
}

// classicalSafetyStock applies SS = Z * sqrt(LT*sigma_d^2 + d^2*sigma_LT^2)
// with lead time and review expressed in weeks.
func classicalSafetyStock(serviceLevel, ltWeeks, sigmaDemand, meanDemand, sigmaLTWeeks float64) float64 {
	z := services.ZValue(serviceLevel)
	variance := ltWeeks*sigmaDemand*sigmaDemand + meanDemand*meanDemand*sigmaLTWeeks*sigmaLTWeeks
	if variance <= 0 {
		return 0
	}
	return z * math.Sqrt(variance)
}

// tftSafetyStock derives safety stock from forecast quantiles over the lead
// time horizon: SS = max(0, sum(P_q) - sum(P_50)). P_q is p75 for service
// levels near 0.90 and p90 otherwise.
func tftSafetyStock(points []entities.ForecastPoint, serviceLevel float64) float64 {
	useP75 := math.Abs(serviceLevel-0.90) < math.Abs(serviceLevel-0.95)
	sumQ, sumP50 := 0.0, 0.0
	for _, point := range points {
		if useP75 {
			sumQ += point.QuantileOrZero(point.P75)
		} else {
			sumQ += point.QuantileOrZero(point.P90)
		}
		sumP50 += point.QuantileOrZero(point.P50)
	}
	return math.Max(0, sumQ-sumP50)
}

// EconomicOrderQuantity is Wilson's formula: sqrt(2*D*K/h) with
// h = unitCost * holdingPct / 100. Returns 0 when any input is non-positive.
func EconomicOrderQuantity(annualDemand, orderCost, unitCost, annualHoldingPct float64) float64 {
	holding := unitCost * annualHoldingPct / 100
	if annualDemand <= 0 || orderCost <= 0 || holding <= 0 {
		return 0
	}
	return services.Round4(math.Sqrt(2 * annualDemand * orderCost / holding))
}
