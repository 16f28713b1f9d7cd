package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/timeline"
	"tableflip.dev/marquee/pkg/tui/components/calendar"
	"tableflip.dev/marquee/pkg/tui/components/releaselist"
	"tableflip.dev/marquee/pkg/tui/theme"
)

const (
	headerHeight = 2
	footerHeight = 1
	minDetail    = 40
)

// View renders the dashboard, or the create dialog over it.
func (m *Model) View() (string, *tea.Cursor) {
	screen := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderBody(), m.renderFooter())
	if m.showHelp && m.help != nil {
		box := m.help.View()
		if m.width == 0 || m.height == 0 {
			return box, nil
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box), nil
	}
	if !m.board.View().CreateOpen {
		return screen, nil
	}

	box, cursor := m.form.View()
	if m.width == 0 || m.height == 0 {
		return box, cursor
	}
	placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	if cursor != nil {
		cursor.Position.X += max((m.width-lipgloss.Width(box))/2, 0)
		cursor.Position.Y += max((m.height-lipgloss.Height(box))/2, 0)
	}
	return placed, cursor
}

func (m *Model) renderHeader() string {
	h := m.theme.Header
	mode := m.board.View().Mode
	tab := func(label string, active bool) string {
		if active {
			return h.ActiveTab.Render(label)
		}
		return h.Tab.Render(label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		h.Title.Render("Release Windows"),
		"  ",
		tab("List", mode == dashboard.ModeList),
		tab("Calendar", mode == dashboard.ModeCalendar),
		"  ",
		h.Action.Render("+ New Release"),
	)

	var status string
	switch m.board.LoadState() {
	case dashboard.LoadIdle:
		status = "Loading releases…"
	case dashboard.LoadFailed:
		status = fmt.Sprintf("%d release windows (last load failed)", len(m.board.Releases()))
	default:
		status = fmt.Sprintf("%d release windows · %d events", len(m.board.Releases()), len(m.board.Events()))
	}
	if n := len(m.board.Diagnostics()); n > 0 {
		status += fmt.Sprintf(" · %d skipped", n)
	}
	return row + "\n" + h.StatusLine.Render(status)
}

func (m *Model) renderFooter() string {
	f := m.theme.Footer
	if m.board.LoadState() == dashboard.LoadFailed {
		return f.Error.Render("Failed to load releases: "+m.board.LoadErr().Error()) + f.Help.Render("  r retry")
	}
	var help string
	if m.board.View().Mode == dashboard.ModeCalendar {
		help = "←/→/↑/↓ day • t today • enter open • esc close • tab list • n new • r reload • ? help • q quit"
	} else {
		help = "↑/↓ move • enter open • esc close • tab calendar • n new • pgup/pgdn scroll • r reload • ? help • q quit"
	}
	if m.status != "" {
		help = m.status + " • " + help
	}
	out := f.Help.Render(help)
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out
}

func (m *Model) renderBody() string {
	if m.board.LoadState() == dashboard.LoadIdle {
		return m.theme.Panel.Muted.Render("Loading…")
	}
	if m.board.LoadState() == dashboard.LoadFailed && len(m.board.Releases()) == 0 {
		return m.theme.Footer.Error.Render("Could not load release windows.") + "\n" +
			m.theme.Panel.Muted.Render("Press r to retry.")
	}

	var main string
	if m.board.View().Mode == dashboard.ModeCalendar {
		main = m.renderCalendar()
	} else {
		main = m.list.View()
	}
	if !m.board.View().DetailVisible() {
		return main
	}
	if _, ok := m.board.Selected(); !ok {
		return lipgloss.JoinHorizontal(lipgloss.Top, main, "  ",
			m.theme.Panel.Muted.Render("Selected release is no longer available (esc to close)"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", m.detail.View())
}

func (m *Model) renderCalendar() string {
	grid := m.board.Month(m.year, m.month, m.opts.WeekStart, m.opts.Today)
	title := m.theme.Panel.Title.Render(grid.Title())
	cal := calendar.Render(grid, m.cursor, m.calOpts)

	var day []timeline.Event
	if y, mo, d, ok := m.cursor.Civil(); ok {
		day = m.board.EventsOn(y, mo, d)
	}
	lines := []string{m.theme.Panel.Section.Render(m.cursor.Short())}
	if len(day) == 0 {
		lines = append(lines, m.theme.Panel.Muted.Render("No events"))
	}
	for _, ev := range day {
		lines = append(lines, theme.EventStyle(ev.Type).Render("• "+ev.Title))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, cal, "", strings.Join(lines, "\n"))
}

// applySizes recalculates component sizes for the current layout.
func (m *Model) applySizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := max(m.height-headerHeight-footerHeight, 3)
	v := m.board.View()

	main := m.width
	if v.DetailVisible() {
		switch v.Mode {
		case dashboard.ModeList:
			main = releaselist.CollapsedWidth()
		default:
			main = m.width * 3 / 5
		}
		detailWidth := max(m.width-main-1, minDetail)
		m.detail.SetSize(detailWidth, bodyHeight)
	}

	m.list.SetSize(main, bodyHeight)
	m.calOpts = calendar.DefaultOptions().FitWidth(main)
	m.form.SetWidth(min(m.width-10, 64))
	if m.help != nil {
		m.help.SetSize(m.helpSize())
	}
}

func (m *Model) helpSize() (int, int) {
	return min(max(m.width-8, 0), 88), max(m.height-4, 0)
}
