package entities

import "testing"

func TestExecutionParams_WithDefaults(t *testing.T) {
	defaults := ExecutionParams{}.WithDefaults()
	if defaults.PlanningHorizonWeeks != DefaultPlanningHorizonWeeks {
		t.Errorf("Horizon = %d, want %d", defaults.PlanningHorizonWeeks, DefaultPlanningHorizonWeeks)
	}
	if defaults.FirmOrderHorizonWeeks == nil || *defaults.FirmOrderHorizonWeeks != DefaultFirmOrderHorizonWeeks {
		t.Errorf("FirmOrderHorizonWeeks = %v, want %d", defaults.FirmOrderHorizonWeeks, DefaultFirmOrderHorizonWeeks)
	}
	if defaults.MonteCarloIterations != DefaultMonteCarloIterations {
		t.Errorf("Iterations = %d, want %d", defaults.MonteCarloIterations, DefaultMonteCarloIterations)
	}
}

func TestExecutionParams_WithDefaultsKeepsExplicitZeroFirmHorizon(t *testing.T) {
	zero := 0
	params := ExecutionParams{FirmOrderHorizonWeeks: &zero}.WithDefaults()
	if *params.FirmOrderHorizonWeeks != 0 {
		t.Errorf("Explicit 0 firm horizon overwritten to %d", *params.FirmOrderHorizonWeeks)
	}
}

func TestExecutionParams_WithDefaultsRejectsNegatives(t *testing.T) {
	negative := -3
	params := ExecutionParams{
		PlanningHorizonWeeks:  -1,
		FirmOrderHorizonWeeks: &negative,
		MonteCarloIterations:  -5,
	}.WithDefaults()
	if params.PlanningHorizonWeeks != DefaultPlanningHorizonWeeks {
		t.Errorf("Horizon = %d, want %d", params.PlanningHorizonWeeks, DefaultPlanningHorizonWeeks)
	}
	if *params.FirmOrderHorizonWeeks != DefaultFirmOrderHorizonWeeks {
		t.Errorf("FirmOrderHorizonWeeks = %d, want %d", *params.FirmOrderHorizonWeeks, DefaultFirmOrderHorizonWeeks)
	}
	if params.MonteCarloIterations != DefaultMonteCarloIterations {
		t.Errorf("Iterations = %d, want %d", params.MonteCarloIterations, DefaultMonteCarloIterations)
	}
}
