package entities

import "time"

// CalendarDayType marks a date as contributing capacity or not.
type CalendarDayType string

const (
	DayWorking    CalendarDayType = "WORKING"
	DayNonWorking CalendarDayType = "NON_WORKING"
)

// CalendarDay is one UTC date of the factory calendar. Only WORKING days
// contribute available hours in capacity planning.
type CalendarDay struct {
	Date time.Time
	Type CalendarDayType
}
