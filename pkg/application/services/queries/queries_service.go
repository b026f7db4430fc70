// Package queries serves paginated read access to planning results for
// outer surfaces such as the CLI.
package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/application/dto"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// Service answers read queries over persisted planning output.
type Service struct {
	orders     repositories.OrderRepository
	executions repositories.ExecutionRepository
	stepLogs   repositories.StepLogRepository
	loads      repositories.CapacityLoadRepository
}

// NewService creates a query service.
func NewService(
	orders repositories.OrderRepository,
	executions repositories.ExecutionRepository,
	stepLogs repositories.StepLogRepository,
	loads repositories.CapacityLoadRepository,
) *Service {
	return &Service{orders: orders, executions: executions, stepLogs: stepLogs, loads: loads}
}

// ListOrders returns a page of planned orders matching the filter.
func (s *Service) ListOrders(
	ctx context.Context,
	filter repositories.OrderFilter,
	page, limit int,
) (dto.Page[*entities.PlannedOrder], error) {
	items, total, err := s.orders.ListOrders(ctx, filter, page, limit)
	if err != nil {
		return dto.Page[*entities.PlannedOrder]{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return dto.NewPage(items, page, limit, total), nil
}

// ListExecutions returns a page of executions in creation order.
func (s *Service) ListExecutions(ctx context.Context, page, limit int) (dto.Page[*entities.Execution], error) {
	items, total, err := s.executions.ListExecutions(ctx, page, limit)
	if err != nil {
		return dto.Page[*entities.Execution]{}, fmt.Errorf("failed to list executions: %w", err)
	}
	return dto.NewPage(items, page, limit, total), nil
}

// ExecutionDetail bundles an execution with its step logs.
type ExecutionDetail struct {
	Execution *entities.Execution
	Steps     []*entities.StepLog
}

// GetExecution returns one execution with its ordered step logs.
func (s *Service) GetExecution(ctx context.Context, id uuid.UUID) (*ExecutionDetail, error) {
	execution, err := s.executions.GetExecution(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load execution: %w", err)
	}
	steps, err := s.stepLogs.ListByExecution(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load step logs: %w", err)
	}
	return &ExecutionDetail{Execution: execution, Steps: steps}, nil
}

// CapacityByExecution returns the capacity loads saved for one execution.
func (s *Service) CapacityByExecution(ctx context.Context, id uuid.UUID) ([]entities.CapacityLoad, error) {
	loads, err := s.loads.ListByExecution(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load capacity rows: %w", err)
	}
	return loads, nil
}
