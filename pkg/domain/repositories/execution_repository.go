package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// ExecutionRepository persists planning executions and enforces the
// single-RUNNING concurrency guard at the store boundary.
type ExecutionRepository interface {
	CreateExecution(ctx context.Context, execution *entities.Execution) error
	SaveExecution(ctx context.Context, execution *entities.Execution) error
	GetExecution(ctx context.Context, id uuid.UUID) (*entities.Execution, error)
	ListExecutions(ctx context.Context, page, limit int) ([]*entities.Execution, int, error)
	// AnyRunning reports whether any execution is currently RUNNING.
	AnyRunning(ctx context.Context) (bool, error)
}

// StepLogRepository persists the append-only per-stage logs.
type StepLogRepository interface {
	AppendStepLog(ctx context.Context, log *entities.StepLog) error
	SaveStepLog(ctx context.Context, log *entities.StepLog) error
	ListByExecution(ctx context.Context, executionID uuid.UUID) ([]*entities.StepLog, error)
}
