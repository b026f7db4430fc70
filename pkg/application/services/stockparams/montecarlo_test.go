package stockparams

import (
	"context"
	"errors"
	"testing"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

func monteCarloFixture(samples int) *fixture {
	f := newFixture()
	f.products.AddProduct(&entities.Product{
		ID:           "A1",
		Type:         entities.ProductRaw,
		ABCClass:     "A",
		LeadTimeDays: 14,
		Active:       true,
	})
	weekly := make([]float64, samples)
	for i := range weekly {
		weekly[i] = 60 + float64(i%6)*7
	}
	f.history.SetWeeklyDemand("A1", weekly)
	return f
}

func TestRunMonteCarlo_InsufficientHistory(t *testing.T) {
	f := monteCarloFixture(11)
	_, err := f.service.RunMonteCarlo(context.Background(), "A1", 0.95, 1000, nil)
	if !errors.Is(err, entities.ErrInsufficientHistory) {
		t.Fatalf("Expected ErrInsufficientHistory, got %v", err)
	}
}

func TestRunMonteCarlo_SeedDeterminism(t *testing.T) {
	f := monteCarloFixture(16)
	seed := uint32(77)

	first, err := f.service.RunMonteCarlo(context.Background(), "A1", 0.95, 2000, &seed)
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}
	second, err := f.service.RunMonteCarlo(context.Background(), "A1", 0.95, 2000, &seed)
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}

	if first.SafetyStock != second.SafetyStock {
		t.Errorf("Safety stock diverged: %v != %v", first.SafetyStock, second.SafetyStock)
	}
	if first.QuantileDemand != second.QuantileDemand || first.MeanDemand != second.MeanDemand {
		t.Errorf("Seeded statistics diverged: %+v != %+v", first, second)
	}
}

func TestRunMonteCarlo_ResultShape(t *testing.T) {
	f := monteCarloFixture(20)
	seed := uint32(5)

	result, err := f.service.RunMonteCarlo(context.Background(), "A1", 0.95, 1500, &seed)
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}

	if result.Iterations != 1500 {
		t.Errorf("Expected 1500 iterations, got %d", result.Iterations)
	}
	if result.SafetyStock < 0 {
		t.Errorf("Expected non-negative safety stock, got %v", result.SafetyStock)
	}
	if result.QuantileDemand < result.MeanDemand {
		t.Errorf("Expected quantile %v >= mean %v at 0.95", result.QuantileDemand, result.MeanDemand)
	}
	if result.CIUpper < result.CILower {
		t.Errorf("Inverted interval: [%v, %v]", result.CILower, result.CIUpper)
	}

	total := 0
	for _, bucket := range result.Histogram {
		total += bucket.Count
	}
	if total != 1500 {
		t.Errorf("Histogram counts sum to %d, want 1500", total)
	}
}

func TestRunMonteCarlo_DefaultsInvalidInputs(t *testing.T) {
	f := monteCarloFixture(14)
	seed := uint32(9)

	result, err := f.service.RunMonteCarlo(context.Background(), "A1", 1.5, 0, &seed)
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}
	if result.ServiceLevel != entities.DefaultServiceLevel {
		t.Errorf("Expected default service level, got %v", result.ServiceLevel)
	}
	if result.Iterations != entities.DefaultMonteCarloIterations {
		t.Errorf("Expected default iterations, got %d", result.Iterations)
	}
}
