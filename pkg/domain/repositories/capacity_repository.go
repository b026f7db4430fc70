package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
)

// WorkCenterRepository provides read access to capacity resources.
type WorkCenterRepository interface {
	ListActiveWorkCenters(ctx context.Context) ([]*entities.WorkCenter, error)
	GetWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error)
}

// CalendarRepository provides read access to the factory calendar.
type CalendarRepository interface {
	// ListDays returns calendar days with date in [from, to).
	ListDays(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error)
}

// CapacityLoadRepository persists capacity load rows computed in stage 7.
type CapacityLoadRepository interface {
	SaveLoads(ctx context.Context, loads []entities.CapacityLoad) error
	ListByExecution(ctx context.Context, executionID uuid.UUID) ([]entities.CapacityLoad, error)
}
