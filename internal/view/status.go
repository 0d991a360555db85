// Package view computes the derived, presentation-only values the pages
// show: trip status labels, day-grouped itineraries, and calendar grids.
// Nothing here touches storage; every function is a pure computation over
// already-loaded data.
package view

import "time"

type TripStatus string

const (
	StatusOngoing   TripStatus = "ongoing"
	StatusUpcoming  TripStatus = "upcoming"
	StatusCompleted TripStatus = "completed"
)

// truncateToDay drops the time-of-day component so comparisons work at
// day granularity regardless of the hour a timestamp carries.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Status classifies a trip relative to today. Both endpoints count as
// ongoing: today == start and today == end are inside the trip. Missing
// dates classify as upcoming.
func Status(start, end *time.Time, today time.Time) TripStatus {
	if start == nil || end == nil {
		return StatusUpcoming
	}
	d := truncateToDay(today)
	s := truncateToDay(*start)
	e := truncateToDay(*end)
	if !s.After(d) && !e.Before(d) {
		return StatusOngoing
	}
	if e.Before(d) {
		return StatusCompleted
	}
	return StatusUpcoming
}
