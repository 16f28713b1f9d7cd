// Package releaselist renders the release windows as a navigable table.
package releaselist

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/tui/theme"
)

type column struct {
	title string
	width int
	value func(release.Window) string
}

var columns = []column{
	{title: "Name", width: 28, value: func(w release.Window) string { return w.Name }},
	{title: "Platform", width: 14, value: func(w release.Window) string { return w.Platform }},
	{title: "Territory", width: 14, value: func(w release.Window) string { return w.Territory }},
	{title: "Dates", width: 28, value: func(w release.Window) string {
		return w.StartDate.Short() + " - " + w.EndDate.Short()
	}},
	{title: "Exclusivity", width: 13, value: func(w release.Window) string { return w.ExclusivityLabel() }},
}

const statusWidth = 10

// Model is the release table. It tracks a cursor row and the id of the
// release shown in the detail panel.
type Model struct {
	releases  []release.Window
	cursor    int
	offset    int
	selected  string
	collapsed bool
	width     int
	height    int
	theme     theme.TableTheme
}

// New returns an empty list using th.
func New(th theme.TableTheme) *Model {
	return &Model{theme: th}
}

// SetReleases replaces the rows, keeping the cursor on the same id when it
// is still present.
func (m *Model) SetReleases(windows []release.Window) {
	current := ""
	if w, ok := m.Current(); ok {
		current = w.ID
	}
	m.releases = windows
	m.cursor = 0
	if current != "" {
		m.SetCursorByID(current)
	}
	m.clamp()
}

// Len is the number of rows.
func (m *Model) Len() int { return len(m.releases) }

// Cursor returns the cursor row index.
func (m *Model) Cursor() int { return m.cursor }

// Current returns the release under the cursor.
func (m *Model) Current() (release.Window, bool) {
	if m.cursor < 0 || m.cursor >= len(m.releases) {
		return release.Window{}, false
	}
	return m.releases[m.cursor], true
}

// SetCursorByID moves the cursor to id, reporting whether it was found.
func (m *Model) SetCursorByID(id string) bool {
	for i, w := range m.releases {
		if w.ID == id {
			m.cursor = i
			m.clamp()
			return true
		}
	}
	return false
}

// Move shifts the cursor by delta rows, stopping at either end.
func (m *Model) Move(delta int) {
	m.cursor += delta
	m.clamp()
}

// Home jumps to the first row.
func (m *Model) Home() { m.cursor = 0; m.clamp() }

// End jumps to the last row.
func (m *Model) End() { m.cursor = len(m.releases) - 1; m.clamp() }

// SetSelected marks id as the release shown in the detail panel.
func (m *Model) SetSelected(id string) { m.selected = id }

// SetCollapsed switches between the full table and the narrow name+status
// column shown next to the detail panel.
func (m *Model) SetCollapsed(collapsed bool) { m.collapsed = collapsed }

// Collapsed reports the layout.
func (m *Model) Collapsed() bool { return m.collapsed }

// SetSize bounds the rendered table.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clamp()
}

// CollapsedWidth is the width of the narrow layout.
func CollapsedWidth() int { return columns[0].width + 1 + statusWidth + 2 }

func (m *Model) clamp() {
	if m.cursor >= len(m.releases) {
		m.cursor = len(m.releases) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.visibleRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if last := len(m.releases) - rows; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.releases)
	}
	// one line for the header
	return m.height - 1
}

// View renders the table.
func (m *Model) View() string {
	if len(m.releases) == 0 {
		return m.theme.Header.Render("No release windows")
	}

	cols := columns
	if m.collapsed {
		cols = columns[:1]
	}

	var header []string
	for _, c := range cols {
		header = append(header, fit(c.title, c.width))
	}
	header = append(header, fit("Status", statusWidth))
	lines := []string{m.theme.Header.Render("  " + strings.Join(header, " "))}

	end := len(m.releases)
	if rows := m.visibleRows(); rows > 0 && m.offset+rows < end {
		end = m.offset + rows
	}
	for i := m.offset; i < end; i++ {
		w := m.releases[i]
		var cells []string
		for _, c := range cols {
			cells = append(cells, fit(c.value(w), c.width))
		}
		marker := "  "
		if w.Exclusive && !m.collapsed {
			marker = "* "
		}
		if w.ID == m.selected {
			marker = "> "
		}
		row := marker + strings.Join(cells, " ")
		switch {
		case i == m.cursor:
			row = m.theme.Cursor.Render(row)
		case w.ID == m.selected:
			row = m.theme.Selected.Render(row)
		default:
			row = m.theme.Row.Render(row)
		}
		lines = append(lines, row+" "+theme.StatusBadge(w.Status))
	}

	out := strings.Join(lines, "\n")
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out
}

func fit(s string, w int) string {
	s = truncate.StringWithTail(s, uint(w), "…")
	if n := lipgloss.Width(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}
