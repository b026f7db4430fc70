package dto

import (
	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// StageSummary records the outcome of one pipeline stage.
type StageSummary struct {
	StepOrder  int
	StepName   string
	DurationMs int64
	Records    int
}

// RunSummary aggregates the outcome of a completed execution. Storage
// projections are returned here but never persisted.
type RunSummary struct {
	Stages                []StageSummary
	ProductsPlanned       int
	StockParamsComputed   int
	StockParamsSkipped    int
	OrdersCreated         int
	ActionMessages        int
	OverloadedWorkCenters int
	StorageAlerts         int
	Warnings              []string
	StorageProjections    []StorageProjection
}

// ExecutionResult is the orchestrator's reply to Execute.
type ExecutionResult struct {
	ExecutionID uuid.UUID
	Status      entities.ExecutionStatus
	Message     string
	Summary     *RunSummary
}
