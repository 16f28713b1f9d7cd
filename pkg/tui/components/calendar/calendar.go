// Package calendar renders a timeline month grid as a block of cells.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
	"tableflip.dev/marquee/pkg/tui/theme"
)

// Options controls calendar styling and cell geometry.
type Options struct {
	HeaderStyle  lipgloss.Style
	OutsideStyle lipgloss.Style
	DayStyle     lipgloss.Style
	TodayStyle   lipgloss.Style
	CursorStyle  lipgloss.Style
	MoreStyle    lipgloss.Style
	CellWidth    int
	// EventLines is how many event titles fit under the day number.
	EventLines int
	ShowHeader bool
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{
		HeaderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		OutsideStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		DayStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		TodayStyle:   lipgloss.NewStyle().Underline(true).Bold(true),
		CursorStyle:  lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		MoreStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		CellWidth:    14,
		EventLines:   2,
		ShowHeader:   true,
	}
}

// FitWidth shrinks the cell width so seven columns fit in width.
func (o Options) FitWidth(width int) Options {
	if width <= 0 {
		return o
	}
	cell := width/7 - 1
	if cell < 4 {
		cell = 4
	}
	if cell < o.CellWidth {
		o.CellWidth = cell
	}
	return o
}

// Render produces a multi-line calendar for grid. The cell whose date equals
// cursor is highlighted.
func Render(grid timeline.MonthGrid, cursor release.Date, opts Options) string {
	if len(grid.Cells) == 0 {
		return ""
	}
	w := opts.CellWidth
	if w < 3 {
		w = 3
	}

	var lines []string
	if opts.ShowHeader {
		var names []string
		for _, wd := range grid.Weekdays {
			names = append(names, pad(weekdayName(wd, w), w))
		}
		lines = append(lines, opts.HeaderStyle.Render(strings.Join(names, " ")))
	}

	busiest := 0
	for _, cell := range grid.Cells {
		if cell.InMonth && len(cell.Events) > busiest {
			busiest = len(cell.Events)
		}
	}

	for _, week := range grid.Weeks() {
		rows := make([][]string, 1+opts.EventLines)
		for _, cell := range week {
			block := renderCell(cell, cell.Date == cursor, busiest, w, opts)
			for i := range rows {
				rows[i] = append(rows[i], block[i])
			}
		}
		for _, r := range rows {
			lines = append(lines, strings.Join(r, " "))
		}
	}
	return strings.Join(lines, "\n")
}

func renderCell(cell timeline.Cell, atCursor bool, busiest, w int, opts Options) []string {
	out := make([]string, 1+opts.EventLines)

	number := pad(fmt.Sprintf("%2d", cell.Day), w)
	style := opts.DayStyle
	if !cell.InMonth {
		style = opts.OutsideStyle
	} else if c := theme.DensityColor(len(cell.Events), busiest); c != nil {
		style = style.Foreground(c)
	}
	if cell.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if atCursor {
		style = opts.CursorStyle.Inherit(style)
	}
	out[0] = style.Render(number)

	for i := 1; i < len(out); i++ {
		out[i] = strings.Repeat(" ", w)
	}
	if !cell.InMonth {
		return out
	}

	shown := min(len(cell.Events), opts.EventLines)
	if len(cell.Events) > opts.EventLines && shown > 0 {
		shown--
	}
	for i := 0; i < shown; i++ {
		ev := cell.Events[i]
		out[1+i] = theme.EventStyle(ev.Type).Render(pad(truncate.StringWithTail(ev.Title, uint(w), "…"), w))
	}
	if hidden := len(cell.Events) - shown; hidden > 0 && opts.EventLines > 0 {
		more := fmt.Sprintf("+%d more", hidden)
		out[opts.EventLines] = opts.MoreStyle.Render(pad(truncate.String(more, uint(w)), w))
	}
	return out
}

func weekdayName(d time.Weekday, w int) string {
	name := d.String()
	if w < len(name) {
		return name[:min(3, w)]
	}
	return name
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// Shift moves date by days. ok is false when date is not a valid day.
func Shift(date release.Date, days int) (release.Date, bool) {
	t, err := date.Time()
	if err != nil {
		return date, false
	}
	return release.DateOf(t.AddDate(0, 0, days)), true
}

// Clamp returns date when it falls in year/month, otherwise the first day of
// that month.
func Clamp(date release.Date, year int, month time.Month) release.Date {
	y, m, _, ok := date.Civil()
	if ok && y == year && m == month {
		return date
	}
	return release.NewDate(year, month, 1)
}
