package entities

import (
	"time"

	"github.com/google/uuid"
)

// CapacitySuggestion is the recommended response to a utilization level.
type CapacitySuggestion string

const (
	SuggestOK          CapacitySuggestion = "OK"
	SuggestOvertime    CapacitySuggestion = "OVERTIME"
	SuggestExpedite    CapacitySuggestion = "EXPEDITE"
	SuggestSubcontract CapacitySuggestion = "SUBCONTRACT"
)

// SuggestionFor maps a utilization percentage to a suggestion. Zero
// utilization yields no suggestion (nil).
func SuggestionFor(utilizationPct float64) *CapacitySuggestion {
	var s CapacitySuggestion
	switch {
	case utilizationPct <= 0:
		return nil
	case utilizationPct <= 100:
		s = SuggestOK
	case utilizationPct <= 110:
		s = SuggestOvertime
	case utilizationPct <= 130:
		s = SuggestExpedite
	default:
		s = SuggestSubcontract
	}
	return &s
}

// CapacityLoad is the projected load of one work center in one week.
type CapacityLoad struct {
	ExecutionID    uuid.UUID
	WorkCenterID   string
	WeekStart      time.Time
	AvailableHours float64
	PlannedHours   float64
	UtilizationPct float64
	Overloaded     bool
	ExcessHours    float64
	Suggestion     *CapacitySuggestion
}
