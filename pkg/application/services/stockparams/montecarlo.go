package stockparams

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/services"
)

// histogramBuckets is the fixed bucket count of the simulation histogram.
const histogramBuckets = 20

// RunMonteCarlo is the standalone simulation endpoint. Unlike the pipeline,
// which silently downgrades to the classical method, it fails with
// ErrInsufficientHistory when fewer than 12 weekly samples exist.
func (s *Service) RunMonteCarlo(
	ctx context.Context,
	productID string,
	serviceLevel float64,
	iterations int,
	seed *uint32,
) (*dto.MonteCarloResult, error) {
	if serviceLevel <= 0 || serviceLevel >= 1 {
		serviceLevel = entities.DefaultServiceLevel
	}
	if iterations <= 0 {
		iterations = entities.DefaultMonteCarloIterations
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	weekly, err := s.history.WeeklyDemand(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand history for %s: %w", productID, err)
	}
	if len(weekly) < minMonteCarloSamples {
		return nil, fmt.Errorf("%w: product %s has %d weekly samples, need %d",
			entities.ErrInsufficientHistory, productID, len(weekly), minMonteCarloSamples)
	}

	lt, err := s.leadTimeFor(ctx, product)
	if err != nil {
		return nil, err
	}

	result := simulate(weekly, lt.Days, lt.SigmaDays, serviceLevel, iterations, newRand(seed))
	result.ProductID = productID
	result.Seed = seed
	return result, nil
}

// newRand returns a deterministic generator when a seed is supplied and a
// time-seeded one otherwise.
func newRand(seed *uint32) *services.Rand {
	if seed != nil {
		return services.NewRand(*seed)
	}
	return services.NewRand(uint32(time.Now().UnixNano()))
}

// simulate runs the lead-time demand simulation: per iteration it samples a
// lead time from Normal(ltDays, sigmaDays) clamped to >= 1 day, then draws
// that many daily demands with replacement from the empirical distribution
// (weekly demand / 7). Safety stock is the service-level quantile of the
// totals minus their mean, floored at 0.
func simulate(
	weeklyDemand []float64,
	ltDays, sigmaDays, serviceLevel float64,
	iterations int,
	rng *services.Rand,
) *dto.MonteCarloResult {
	daily := make([]float64, len(weeklyDemand))
	for i, w := range weeklyDemand {
		daily[i] = w / 7
	}

	totals := make([]float64, iterations)
	for i := 0; i < iterations; i++ {
		days := int(math.Round(rng.Normal(ltDays, sigmaDays)))
		if days < 1 {
			days = 1
		}
		total := 0.0
		for d := 0; d < days; d++ {
			total += daily[rng.Intn(len(daily))]
		}
		totals[i] = total
	}
	sort.Float64s(totals)

	quantile := services.QuantileSorted(totals, serviceLevel)
	mean := services.Mean(totals)

	return &dto.MonteCarloResult{
		ServiceLevel:   serviceLevel,
		Iterations:     iterations,
		SafetyStock:    services.Round4(math.Max(0, quantile-mean)),
		QuantileDemand: services.Round4(quantile),
		MeanDemand:     services.Round4(mean),
		CILower:        services.Round4(services.QuantileSorted(totals, 0.05)),
		CIUpper:        services.Round4(services.QuantileSorted(totals, 0.95)),
		Histogram:      histogram(totals),
	}
}

// histogram bins sorted totals into fixed-width buckets.
func histogram(sorted []float64) []dto.HistogramBucket {
	if len(sorted) == 0 {
		return nil
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	width := (hi - lo) / histogramBuckets
	buckets := make([]dto.HistogramBucket, histogramBuckets)
	for i := range buckets {
		buckets[i].From = services.Round4(lo + float64(i)*width)
		buckets[i].To = services.Round4(lo + float64(i+1)*width)
	}
	if width == 0 {
		buckets[0].Count = len(sorted)
		return buckets
	}
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= histogramBuckets {
			idx = histogramBuckets - 1
		}
		buckets[idx].Count++
	}
	return buckets
}
