package timeline

import (
	"time"

	"tableflip.dev/marquee/pkg/release"
)

// Cell is one square of a month grid.
type Cell struct {
	Date    release.Date
	Day     int
	InMonth bool
	IsToday bool
	Events  []Event
}

// MonthGrid is a month laid out in whole weeks.
type MonthGrid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Weekdays  []time.Weekday
	Cells     []Cell
}

// Title renders the grid heading, e.g. "October 2025".
func (g MonthGrid) Title() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Weeks splits the cells into rows of seven.
func (g MonthGrid) Weeks() [][]Cell {
	rows := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		rows = append(rows, g.Cells[i:i+7])
	}
	return rows
}

// Month lays out year/month starting weeks on weekStart. Only cells inside
// the month carry events; leading and trailing cells are padding. today may
// be empty.
func Month(year int, month time.Month, weekStart time.Weekday, today release.Date, events []Event) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := DaysIn(year, month)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	rows := (offset + days + 6) / 7

	idx := IndexByDay(events)

	grid := MonthGrid{
		Year:      year,
		Month:     month,
		WeekStart: weekStart,
		Cells:     make([]Cell, 0, rows*7),
	}
	for i := 0; i < 7; i++ {
		grid.Weekdays = append(grid.Weekdays, time.Weekday((int(weekStart)+i)%7))
	}
	for i := 0; i < rows*7; i++ {
		at := first.AddDate(0, 0, i-offset)
		date := release.DateOf(at)
		cell := Cell{
			Date:    date,
			Day:     at.Day(),
			InMonth: at.Month() == month,
			IsToday: today != "" && date == today,
		}
		if cell.InMonth {
			cell.Events = idx.On(year, month, at.Day())
		}
		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
