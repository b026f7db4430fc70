package entities

import (
	"time"

	"github.com/google/uuid"
)

// ExecutionStatus is the lifecycle state of a planning run.
type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "PENDING"
	ExecutionRunning   ExecutionStatus = "RUNNING"
	ExecutionCompleted ExecutionStatus = "COMPLETED"
	ExecutionError     ExecutionStatus = "ERROR"
)

// ExecutionParams are the run parameters snapshotted onto the execution.
// FirmOrderHorizonWeeks is a pointer so an explicit 0 (no firm-order
// blending) stays distinguishable from "unset, use the default".
type ExecutionParams struct {
	PlanningHorizonWeeks  int
	FirmOrderHorizonWeeks *int
	ForceRecalculate      bool
	StartDate             *time.Time
	MonteCarloIterations  int
	MonteCarloSeed        *uint32
}

// Defaults for execution parameters.
const (
	DefaultPlanningHorizonWeeks  = 13
	DefaultFirmOrderHorizonWeeks = 2
	DefaultMonteCarloIterations  = 10000
	DefaultServiceLevel          = 0.95
)

// WithDefaults fills unset parameters with their documented defaults.
func (p ExecutionParams) WithDefaults() ExecutionParams {
	if p.PlanningHorizonWeeks < 1 {
		p.PlanningHorizonWeeks = DefaultPlanningHorizonWeeks
	}
	if p.FirmOrderHorizonWeeks == nil || *p.FirmOrderHorizonWeeks < 0 {
		weeks := DefaultFirmOrderHorizonWeeks
		p.FirmOrderHorizonWeeks = &weeks
	}
	if p.MonteCarloIterations <= 0 {
		p.MonteCarloIterations = DefaultMonteCarloIterations
	}
	return p
}

// Execution is a single batch invocation of the eight-stage pipeline.
type Execution struct {
	ID           uuid.UUID
	Kind         string
	Status       ExecutionStatus
	Params       ExecutionParams
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage *string
	Summary      map[string]any
}

// NewExecution creates a pending MRP execution with a parameter snapshot.
func NewExecution(params ExecutionParams) *Execution {
	return &Execution{
		ID:     uuid.New(),
		Kind:   "MRP",
		Status: ExecutionPending,
		Params: params,
	}
}

// StepStatus is the state of one pipeline step.
type StepStatus string

const (
	StepRunning   StepStatus = "RUNNING"
	StepCompleted StepStatus = "COMPLETED"
	StepFailed    StepStatus = "FAILED"
)

// StepLog is the append-only record of one pipeline stage run.
type StepLog struct {
	ID               uuid.UUID
	ExecutionID      uuid.UUID
	StepName         string
	StepOrder        int
	Status           StepStatus
	StartedAt        time.Time
	CompletedAt      *time.Time
	DurationMs       int64
	RecordsProcessed int
	Details          map[string]any
}
