package entities

import (
	"time"

	"github.com/google/uuid"
)

// StockParamsMethod records which safety-stock calculation was applied.
type StockParamsMethod string

const (
	MethodTFTQuantile StockParamsMethod = "TFT_QUANTILE"
	MethodClassical   StockParamsMethod = "CLASSICAL"
	MethodMonteCarlo  StockParamsMethod = "MONTE_CARLO"
)

// StockParams are the computed inventory control parameters for one product
// in one execution.
type StockParams struct {
	ExecutionID  uuid.UUID
	ProductID    string
	SafetyStock  float64
	ReorderPoint float64
	MinStock     float64
	MaxStock     float64
	EOQ          float64
	Method       StockParamsMethod
	ServiceLevel float64
	CalculatedAt time.Time
}
