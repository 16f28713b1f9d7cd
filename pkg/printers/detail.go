package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/marquee/pkg/app"
	"tableflip.dev/marquee/pkg/release"
)

// Release prints the detail view of one window.
func (pp *PrettyPrint) Release(w release.Window) {
	out := pp.out()
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = bold.Fprint(out, w.Name)
	_, _ = fmt.Fprint(out, "  ")
	_, _ = StatusColor(w.Status).Fprintln(out, w.Status.Label())
	if pp.ShowID {
		_, _ = faint.Fprintf(out, "id %s\n", w.ID)
	}
	pp.NewLine()

	field := func(label, value string) {
		_, _ = faint.Fprintf(out, "  %-12s", label)
		_, _ = fmt.Fprintln(out, value)
	}
	field("Platform", w.Platform)
	field("Territory", w.Territory)
	field("Exclusivity", w.ExclusivityLabel())
	field("Start", w.StartDate.Short())
	field("End", w.EndDate.Short())
	pp.NewLine()

	_, _ = bold.Fprintf(out, "Marketing Deadlines (%d)\n", len(w.MarketingDeadlines))
	if len(w.MarketingDeadlines) == 0 {
		pp.none()
	}
	for _, md := range w.MarketingDeadlines {
		mark := "[ ]"
		if md.Completed {
			mark = color.GreenString("[x]")
		}
		_, _ = fmt.Fprintf(out, "  %s %s\n", mark, md.Name)
		_, _ = faint.Fprintf(out, "      %s · %s\n", md.Date.Short(), md.Responsible)
	}
	pp.NewLine()

	_, _ = bold.Fprintf(out, "Deliverables (%d)\n", len(w.Deliverables))
	if len(w.Deliverables) == 0 {
		pp.none()
	}
	for _, d := range w.Deliverables {
		_, _ = fmt.Fprintf(out, "  %s  %s\n", d.Name, approvalColor(d.ApprovalStatus).Sprint(d.ApprovalStatus.Label()))
		_, _ = faint.Fprintf(out, "      Due %s\n", d.DueDate.Short())
	}
	pp.NewLine()

	if notes := strings.TrimSpace(w.Notes); notes != "" {
		_, _ = bold.Fprintln(out, "Notes")
		_, _ = fmt.Fprintln(out, indent(wordwrap.String(notes, pp.width()-2), 2))
		pp.NewLine()
	}
}

func approvalColor(a release.ApprovalStatus) *color.Color {
	switch a {
	case release.ApprovalApproved:
		return color.New(color.FgGreen)
	case release.ApprovalRejected:
		return color.New(color.FgRed)
	case release.ApprovalPending:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

// Markdown renders the detail view of a window as a markdown document.
func Markdown(w release.Window) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", w.Name)
	fmt.Fprintf(&b, "**%s** · %s · %s · %s\n\n", w.Status.Label(), w.Platform, w.Territory, w.ExclusivityLabel())
	fmt.Fprintf(&b, "%s\n\n", DateRange(w))

	b.WriteString("## Marketing Deadlines\n\n")
	if len(w.MarketingDeadlines) == 0 {
		b.WriteString("_none_\n\n")
	}
	for _, md := range w.MarketingDeadlines {
		mark := " "
		if md.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] **%s** %s · %s\n", mark, md.Name, md.Date.Short(), md.Responsible)
	}
	b.WriteString("\n## Deliverables\n\n")
	if len(w.Deliverables) == 0 {
		b.WriteString("_none_\n\n")
	}
	for _, d := range w.Deliverables {
		fmt.Fprintf(&b, "- **%s** due %s (%s)\n", d.Name, d.DueDate.Short(), d.ApprovalStatus.Label())
	}
	if notes := strings.TrimSpace(w.Notes); notes != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", notes)
	}
	return b.String()
}

// ReleaseMarkdown prints the markdown detail view through glamour.
func (pp *PrettyPrint) ReleaseMarkdown(w release.Window, style string) error {
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(pp.width()),
	)
	if err != nil {
		return fmt.Errorf("printers: markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(Markdown(w))
	if err != nil {
		return fmt.Errorf("printers: render markdown: %w", err)
	}
	_, err = fmt.Fprint(pp.out(), rendered)
	return err
}

// Agenda prints events grouped by release.
func (pp *PrettyPrint) Agenda(res app.AgendaResult) {
	pp.TitleWithCount(fmt.Sprintf("Agenda %s - %s", res.From.Short(), res.To.Short()), res.Total, "event")
	if len(res.Sections) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	for _, s := range res.Sections {
		_, _ = bold.Fprintf(pp.out(), "%s", s.Release.Name)
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "  %s\n", plural(len(s.Events), "event"))
		for _, ev := range s.Events {
			_, _ = fmt.Fprintf(pp.out(), "  %-13s ", ev.Date.Short())
			_, _ = TypeColor(ev.Type).Fprintln(pp.out(), ev.Title)
		}
	}
	pp.NewLine()
}
