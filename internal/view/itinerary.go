package view

import (
	"sort"
	"time"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

// ItineraryDay is one day of the trip summary: the activities scheduled on
// that date plus their combined cost.
type ItineraryDay struct {
	Date      string                `json:"date"`
	Items     []domain.TripActivity `json:"items"`
	TotalCost float64               `json:"total_cost"`
}

// GroupByDay buckets activities by scheduled date, sums each day's cost,
// and returns the days in chronological order. Activities without a
// scheduled date are left out, matching the itinerary page.
func GroupByDay(activities []domain.TripActivity) []ItineraryDay {
	byDate := make(map[string]*ItineraryDay)
	for _, a := range activities {
		if a.ScheduledDate == nil {
			continue
		}
		key := a.ScheduledDate.Format(time.DateOnly)
		day, ok := byDate[key]
		if !ok {
			day = &ItineraryDay{Date: key}
			byDate[key] = day
		}
		day.Items = append(day.Items, a)
		if a.Cost != nil {
			day.TotalCost += *a.Cost
		}
	}

	days := make([]ItineraryDay, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
