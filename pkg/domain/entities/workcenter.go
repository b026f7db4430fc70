package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a weekday- and time-scoped interval of working capacity.
// Times are minutes since midnight; EndMinute <= StartMinute means the
// shift runs overnight into the next day.
type Shift struct {
	StartMinute int
	EndMinute   int

	// Weekdays uses Sunday=0 .. Saturday=6 (Monday=1), matching time.Weekday.
	Weekdays map[int]bool

	ValidFrom *time.Time
	ValidTo   *time.Time
}

// NewShift parses "HH:MM" boundaries and a weekday set into a Shift.
func NewShift(start, end string, weekdays []int) (*Shift, error) {
	startMin, err := parseClock(start)
	if err != nil {
		return nil, fmt.Errorf("invalid shift start %q: %w", start, err)
	}
	endMin, err := parseClock(end)
	if err != nil {
		return nil, fmt.Errorf("invalid shift end %q: %w", end, err)
	}
	days := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday %d out of range 0..6", d)
		}
		days[d] = true
	}
	return &Shift{StartMinute: startMin, EndMinute: endMin, Weekdays: days}, nil
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %02d:%02d out of range", h, m)
	}
	return h*60 + m, nil
}

// Duration returns the shift length, adding one day for overnight shifts.
func (s *Shift) Duration() time.Duration {
	minutes := s.EndMinute - s.StartMinute
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return time.Duration(minutes) * time.Minute
}

// CoversDay reports whether the shift is active on the given UTC date: the
// weekday belongs to the set and the date falls inside the validity window.
func (s *Shift) CoversDay(date time.Time) bool {
	if !s.Weekdays[int(date.Weekday())] {
		return false
	}
	if s.ValidFrom != nil && date.Before(*s.ValidFrom) {
		return false
	}
	if s.ValidTo != nil && date.After(*s.ValidTo) {
		return false
	}
	return true
}

// ScheduledStop is an absolute maintenance or downtime interval.
type ScheduledStop struct {
	Start time.Time
	End   time.Time
}

// Overlap returns the duration of the stop clipped to [from, to).
func (s ScheduledStop) Overlap(from, to time.Time) time.Duration {
	start := s.Start
	if start.Before(from) {
		start = from
	}
	end := s.End
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// WorkCenter is a capacity resource with shifts, planned stops and an
// efficiency factor applied to gross shift hours.
type WorkCenter struct {
	ID             string
	Code           string
	Name           string
	EfficiencyPct  float64
	CostPerHour    *decimal.Decimal
	Shifts         []Shift
	ScheduledStops []ScheduledStop
	Active         bool
}

// Efficiency returns the efficiency factor, defaulting to 100% when unset.
func (w *WorkCenter) Efficiency() float64 {
	if w.EfficiencyPct <= 0 {
		return 1
	}
	return w.EfficiencyPct / 100
}
