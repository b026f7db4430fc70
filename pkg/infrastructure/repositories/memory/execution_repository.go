package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// ExecutionRepository provides in-memory execution storage. The RUNNING
// check and execution creation share one mutex so the concurrency guard
// holds across goroutines.
type ExecutionRepository struct {
	mu         sync.RWMutex
	executions map[uuid.UUID]*entities.Execution
	order      []uuid.UUID
}

// NewExecutionRepository creates a new in-memory execution repository.
func NewExecutionRepository() *ExecutionRepository {
	return &ExecutionRepository{executions: make(map[uuid.UUID]*entities.Execution)}
}

// Verify interface compliance
var _ repositories.ExecutionRepository = (*ExecutionRepository)(nil)

// CreateExecution stores a new execution.
func (r *ExecutionRepository) CreateExecution(ctx context.Context, execution *entities.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executions[execution.ID]; exists {
		return fmt.Errorf("execution already exists: %s", execution.ID)
	}
	r.executions[execution.ID] = execution
	r.order = append(r.order, execution.ID)
	return nil
}

// SaveExecution overwrites an existing execution.
func (r *ExecutionRepository) SaveExecution(ctx context.Context, execution *entities.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executions[execution.ID]; !exists {
		return fmt.Errorf("execution not found: %s", execution.ID)
	}
	r.executions[execution.ID] = execution
	return nil
}

// GetExecution returns the execution with the given id.
func (r *ExecutionRepository) GetExecution(ctx context.Context, id uuid.UUID) (*entities.Execution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	execution, exists := r.executions[id]
	if !exists {
		return nil, fmt.Errorf("execution not found: %s", id)
	}
	return execution, nil
}

// ListExecutions returns a page of executions in creation order with the
// total count. Page numbering starts at 1.
func (r *ExecutionRepository) ListExecutions(ctx context.Context, page, limit int) ([]*entities.Execution, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.order)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = total
	}
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	executions := make([]*entities.Execution, 0, end-start)
	for _, id := range r.order[start:end] {
		executions = append(executions, r.executions[id])
	}
	return executions, total, nil
}

// AnyRunning reports whether any execution is currently RUNNING.
func (r *ExecutionRepository) AnyRunning(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, execution := range r.executions {
		if execution.Status == entities.ExecutionRunning {
			return true, nil
		}
	}
	return false, nil
}

// StepLogRepository provides in-memory step log storage.
type StepLogRepository struct {
	mu   sync.RWMutex
	logs []*entities.StepLog
}

// NewStepLogRepository creates a new in-memory step log repository.
func NewStepLogRepository() *StepLogRepository {
	return &StepLogRepository{}
}

// Verify interface compliance
var _ repositories.StepLogRepository = (*StepLogRepository)(nil)

// AppendStepLog appends a new step log entry.
func (r *StepLogRepository) AppendStepLog(ctx context.Context, log *entities.StepLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

// SaveStepLog overwrites an existing step log entry.
func (r *StepLogRepository) SaveStepLog(ctx context.Context, log *entities.StepLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.logs {
		if existing.ID == log.ID {
			r.logs[i] = log
			return nil
		}
	}
	return fmt.Errorf("step log not found: %s", log.ID)
}

// ListByExecution returns the step logs of one execution ordered by step.
func (r *StepLogRepository) ListByExecution(ctx context.Context, executionID uuid.UUID) ([]*entities.StepLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var logs []*entities.StepLog
	for _, log := range r.logs {
		if log.ExecutionID == executionID {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].StepOrder < logs[j].StepOrder })
	return logs, nil
}
