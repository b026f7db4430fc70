package entities

import (
	"testing"
	"time"
)

func TestNewShift_ParsesClockAndWeekdays(t *testing.T) {
	shift, err := NewShift("06:00", "14:30", []int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Failed to create shift: %v", err)
	}
	if shift.StartMinute != 360 || shift.EndMinute != 870 {
		t.Errorf("Expected 360..870 minutes, got %d..%d", shift.StartMinute, shift.EndMinute)
	}
	if shift.Duration() != 8*time.Hour+30*time.Minute {
		t.Errorf("Expected 8h30m, got %v", shift.Duration())
	}

	if _, err := NewShift("25:00", "14:00", nil); err == nil {
		t.Error("Expected error for invalid start clock")
	}
	if _, err := NewShift("06:00", "14:00", []int{7}); err == nil {
		t.Error("Expected error for weekday out of range")
	}
}

func TestShift_OvernightDuration(t *testing.T) {
	shift, err := NewShift("22:00", "06:00", []int{1})
	if err != nil {
		t.Fatalf("Failed to create shift: %v", err)
	}
	if shift.Duration() != 8*time.Hour {
		t.Errorf("Expected 8h overnight, got %v", shift.Duration())
	}
}

func TestShift_CoversDay(t *testing.T) {
	shift, err := NewShift("06:00", "14:00", []int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Failed to create shift: %v", err)
	}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if !shift.CoversDay(monday) {
		t.Error("Expected shift to cover Monday")
	}
	if shift.CoversDay(sunday) {
		t.Error("Expected shift not to cover Sunday")
	}

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	shift.ValidFrom = &from
	if shift.CoversDay(monday) {
		t.Error("Expected shift invalid before ValidFrom")
	}
}

func TestScheduledStop_Overlap(t *testing.T) {
	stop := ScheduledStop{
		Start: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if got := stop.Overlap(from, to); got != 2*time.Hour {
		t.Errorf("Expected 2h clipped overlap, got %v", got)
	}

	if got := stop.Overlap(to.Add(4*time.Hour), to.Add(8*time.Hour)); got != 0 {
		t.Errorf("Expected no overlap, got %v", got)
	}
}

func TestWorkCenter_Efficiency(t *testing.T) {
	wc := &WorkCenter{EfficiencyPct: 85}
	if wc.Efficiency() != 0.85 {
		t.Errorf("Expected 0.85, got %v", wc.Efficiency())
	}
	unset := &WorkCenter{}
	if unset.Efficiency() != 1 {
		t.Errorf("Expected default 1, got %v", unset.Efficiency())
	}
}
