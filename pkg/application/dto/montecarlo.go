package dto

// HistogramBucket is one fixed-width bucket of the simulated demand
// distribution.
type HistogramBucket struct {
	From  float64
	To    float64
	Count int
}

// MonteCarloResult is the full output of a lead-time demand simulation.
type MonteCarloResult struct {
	ProductID      string
	ServiceLevel   float64
	Iterations     int
	Seed           *uint32
	SafetyStock    float64
	QuantileDemand float64
	MeanDemand     float64
	CILower        float64 // p5 of simulated totals
	CIUpper        float64 // p95 of simulated totals
	Histogram      []HistogramBucket
}
