package view

import "time"

// DateRange is an event to render on the calendar: a trip's span with
// the label shown in matching day cells.
type DateRange struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CalendarCell is one day cell in the month grid. OutsideMonth marks the
// padding days borrowed from the adjacent months.
type CalendarCell struct {
	Date         string   `json:"date"`
	Day          int      `json:"day"`
	OutsideMonth bool     `json:"outside_month"`
	RangeIDs     []string `json:"range_ids,omitempty"`
}

// MonthGrid lays out a month as full Sunday-to-Saturday weeks, padded
// with adjacent-month days on both sides, and marks every cell with the
// ranges containing it. Both range endpoints are inclusive and compared
// at day granularity, ignoring any time-of-day on the range bounds.
func MonthGrid(year int, month time.Month, ranges []DateRange) [][]CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startDayIndex := int(first.Weekday()) // 0 (Sun) - 6 (Sat)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	totalCells := ((startDayIndex + daysInMonth + 6) / 7) * 7
	firstCell := first.AddDate(0, 0, -startDayIndex)

	weeks := make([][]CalendarCell, 0, totalCells/7)
	for w := 0; w < totalCells/7; w++ {
		week := make([]CalendarCell, 7)
		for d := 0; d < 7; d++ {
			day := firstCell.AddDate(0, 0, w*7+d)
			cell := CalendarCell{
				Date:         day.Format(time.DateOnly),
				Day:          day.Day(),
				OutsideMonth: day.Month() != month,
			}
			for _, r := range ranges {
				if inRange(day, r.Start, r.End) {
					cell.RangeIDs = append(cell.RangeIDs, r.ID)
				}
			}
			week[d] = cell
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func inRange(day, start, end time.Time) bool {
	d := truncateToDay(day)
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s) && !d.After(e)
}
