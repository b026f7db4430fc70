package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/entities"
	"github.com/ShinyAuroraa/forecasting-mrp-sub000/pkg/domain/repositories"
)

// WorkCenterRepository provides in-memory work center storage.
type WorkCenterRepository struct {
	centers map[string]*entities.WorkCenter
	order   []string
}

// NewWorkCenterRepository creates a new in-memory work center repository.
func NewWorkCenterRepository() *WorkCenterRepository {
	return &WorkCenterRepository{centers: make(map[string]*entities.WorkCenter)}
}

// Verify interface compliance
var _ repositories.WorkCenterRepository = (*WorkCenterRepository)(nil)

// AddWorkCenter adds a work center to the repository.
func (r *WorkCenterRepository) AddWorkCenter(center *entities.WorkCenter) {
	if _, exists := r.centers[center.ID]; !exists {
		r.order = append(r.order, center.ID)
	}
	r.centers[center.ID] = center
}

// ListActiveWorkCenters returns active work centers in insertion order.
func (r *WorkCenterRepository) ListActiveWorkCenters(ctx context.Context) ([]*entities.WorkCenter, error) {
	var centers []*entities.WorkCenter
	for _, id := range r.order {
		if center := r.centers[id]; center.Active {
			centers = append(centers, center)
		}
	}
	return centers, nil
}

// GetWorkCenter returns the work center with the given id.
func (r *WorkCenterRepository) GetWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error) {
	center, exists := r.centers[id]
	if !exists {
		return nil, fmt.Errorf("work center not found: %s", id)
	}
	return center, nil
}

// CalendarRepository provides in-memory factory calendar storage.
type CalendarRepository struct {
	days map[int64]entities.CalendarDay
}

// NewCalendarRepository creates a new in-memory calendar repository.
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{days: make(map[int64]entities.CalendarDay)}
}

// Verify interface compliance
var _ repositories.CalendarRepository = (*CalendarRepository)(nil)

// AddDay adds a calendar day to the repository. Dates are normalized to
// midnight UTC.
func (r *CalendarRepository) AddDay(day entities.CalendarDay) {
	day.Date = dayKeyTime(day.Date)
	r.days[day.Date.Unix()] = day
}

// FillWorkingWeekdays marks every Monday..Friday in [from, to) as WORKING
// and weekends as NON_WORKING, skipping dates already present.
func (r *CalendarRepository) FillWorkingWeekdays(from, to time.Time) {
	for d := dayKeyTime(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		if _, exists := r.days[d.Unix()]; exists {
			continue
		}
		dayType := entities.DayWorking
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			dayType = entities.DayNonWorking
		}
		r.days[d.Unix()] = entities.CalendarDay{Date: d, Type: dayType}
	}
}

// ListDays returns calendar days with date in [from, to).
func (r *CalendarRepository) ListDays(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error) {
	var days []entities.CalendarDay
	for d := dayKeyTime(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		if day, exists := r.days[d.Unix()]; exists {
			days = append(days, day)
		}
	}
	return days, nil
}

func dayKeyTime(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CapacityLoadRepository provides in-memory capacity load storage.
type CapacityLoadRepository struct {
	mu    sync.RWMutex
	loads []entities.CapacityLoad
}

// NewCapacityLoadRepository creates a new in-memory capacity load repository.
func NewCapacityLoadRepository() *CapacityLoadRepository {
	return &CapacityLoadRepository{}
}

// Verify interface compliance
var _ repositories.CapacityLoadRepository = (*CapacityLoadRepository)(nil)

// SaveLoads appends the computed loads of one execution.
func (r *CapacityLoadRepository) SaveLoads(ctx context.Context, loads []entities.CapacityLoad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads = append(r.loads, loads...)
	return nil
}

// ListByExecution returns the loads saved for one execution.
func (r *CapacityLoadRepository) ListByExecution(ctx context.Context, executionID uuid.UUID) ([]entities.CapacityLoad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var loads []entities.CapacityLoad
	for _, load := range r.loads {
		if load.ExecutionID == executionID {
			loads = append(loads, load)
		}
	}
	return loads, nil
}
