package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/marquee/pkg/timeline"
)

const cellWidth = len(" 30•") // day number plus an event marker

// Calendar prints a month grid followed by the events of each day.
func (pp *PrettyPrint) Calendar(grid timeline.MonthGrid) {
	w := pp.out()
	width := cellWidth * 7

	tf := color.New(color.Bold)
	title := grid.Title()
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), title)

	hdr := color.New(color.Faint)
	for _, wd := range grid.Weekdays {
		_, _ = hdr.Fprintf(w, "%*s", cellWidth, wd.String()[0:2]+" ")
	}
	_, _ = fmt.Fprintln(w)

	out := color.New(color.Faint)
	plain := color.New()
	busy := color.New(color.Bold)
	today := color.New(color.Bold, color.Underline)

	for _, week := range grid.Weeks() {
		for _, c := range week {
			printer := plain
			switch {
			case !c.InMonth:
				printer = out
			case c.IsToday:
				printer = today
			case len(c.Events) > 0:
				printer = busy
			}
			_, _ = printer.Fprintf(w, " %2d", c.Day)
			_, _ = fmt.Fprint(w, markers(c.Events))
		}
		_, _ = fmt.Fprintln(w)
	}
	pp.NewLine()

	listed := false
	for _, c := range grid.Cells {
		if !c.InMonth || len(c.Events) == 0 {
			continue
		}
		listed = true
		label := c.Date.Short()
		if c.IsToday {
			label += " (today)"
		}
		_, _ = color.New(color.Underline).Fprintln(w, label)
		for _, ev := range c.Events {
			_, _ = TypeColor(ev.Type).Fprint(w, "  • ")
			_, _ = fmt.Fprintln(w, ev.Title)
		}
	}
	if !listed {
		pp.none()
		return
	}
	pp.NewLine()
}

// markers renders one coloured dot for the first event type of the day, or
// a space.
func markers(events []timeline.Event) string {
	if len(events) == 0 {
		return " "
	}
	return TypeColor(events[0].Type).Sprint("•")
}
