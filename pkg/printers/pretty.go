// Package printers renders releases and timelines for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

// PrettyPrint writes human-oriented output to Out.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Width wraps long text such as notes. Zero means 80.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// StatusColor is the badge colour for a window status.
func StatusColor(s release.Status) *color.Color {
	switch s {
	case release.StatusScheduled:
		return color.New(color.FgBlue)
	case release.StatusActive:
		return color.New(color.FgGreen)
	case release.StatusCompleted:
		return color.New(color.FgMagenta)
	case release.StatusCancelled:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgHiBlack)
	}
}

// TypeColor is the colour of an event type.
func TypeColor(t timeline.Type) *color.Color {
	switch t {
	case timeline.TypeRelease:
		return color.New(color.FgBlue)
	case timeline.TypeMarketing:
		return color.New(color.FgGreen)
	case timeline.TypeDeliverable:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgHiBlack)
	}
}

// DateRange renders "Nov 15, 2025 - Jan 15, 2026".
func DateRange(w release.Window) string {
	return w.StartDate.Short() + " - " + w.EndDate.Short()
}

// Releases prints the release table.
func (pp *PrettyPrint) Releases(windows ...release.Window) {
	pp.TitleWithCount("Release Windows", len(windows), "release")
	if len(windows) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40

	header := []interface{}{bold.Sprint("Release"), bold.Sprint("Platform"), bold.Sprint("Territory"), bold.Sprint("Dates"), bold.Sprint("Status")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, w := range windows {
		name := w.Name
		if w.Exclusive {
			name += " *"
		}
		row := []interface{}{name, w.Platform, w.Territory, DateRange(w), StatusColor(w.Status).Sprint(w.Status.Label())}
		if pp.ShowID {
			row = append([]interface{}{w.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "* exclusive")
	pp.NewLine()
}

// Events prints a flat event table.
func (pp *PrettyPrint) Events(title string, events ...timeline.Event) {
	pp.TitleWithCount(title, len(events), "event")
	if len(events) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, ev := range events {
		row := []interface{}{ev.Date.Short(), TypeColor(ev.Type).Sprint(string(ev.Type)), ev.Title}
		if pp.ShowID {
			row = append(row, color.New(color.Faint).Sprint(ev.ID))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Diagnostics prints the windows left out of the timeline and any ingestion
// problems. Nothing is printed when both are empty.
func (pp *PrettyPrint) Diagnostics(diags []timeline.Diagnostic, problems []release.Problem) {
	if len(diags) == 0 && len(problems) == 0 {
		return
	}
	warn := color.New(color.FgYellow)
	for _, d := range diags {
		_, _ = warn.Fprintf(pp.out(), "! skipped %s\n", d.String())
	}
	for _, p := range problems {
		_, _ = warn.Fprintf(pp.out(), "! %s\n", p.String())
	}
	pp.NewLine()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
