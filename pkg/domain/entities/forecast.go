package entities

import "time"

// ForecastPoint is one weekly forecast quantile set for a product, produced
// by the external forecasting engine. Nil quantiles are treated as zero by
// consumers.
type ForecastPoint struct {
	ExecutionID string
	ProductID   string
	PeriodStart time.Time
	P10         *float64
	P25         *float64
	P50         *float64
	P75         *float64
	P90         *float64
}

// QuantileOrZero returns the named quantile value, or 0 when absent.
func (p ForecastPoint) QuantileOrZero(q *float64) float64 {
	if q == nil {
		return 0
	}
	return *q
}
