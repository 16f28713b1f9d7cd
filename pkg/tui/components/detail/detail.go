// Package detail renders the selected release window in a scrollable panel.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/tui/theme"
)

// Actions are listed under the window but have no commit path.
var Actions = []string{"Edit Release", "Add Deliverable"}

// Model is the detail panel.
type Model struct {
	viewport viewport.Model
	window   release.Window
	loaded   bool
	width    int
	height   int
	theme    theme.PanelTheme
}

// New builds an empty panel.
func New(th theme.PanelTheme) *Model {
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	vp.MouseWheelEnabled = true
	return &Model{viewport: vp, theme: th}
}

// SetWindow shows w and scrolls back to the top when the id changes.
func (m *Model) SetWindow(w release.Window) {
	reset := !m.loaded || m.window.ID != w.ID
	m.window = w
	m.loaded = true
	m.render()
	if reset {
		m.viewport.SetYOffset(0)
	}
}

// Clear empties the panel.
func (m *Model) Clear() {
	m.window = release.Window{}
	m.loaded = false
	m.viewport.SetContent("")
}

// Window returns the release on display.
func (m *Model) Window() (release.Window, bool) { return m.window, m.loaded }

// SetSize configures the outer dimensions, frame included.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.viewport.SetWidth(max(width-m.theme.Frame.GetHorizontalFrameSize(), 1))
	m.viewport.SetHeight(max(height-m.theme.Frame.GetVerticalFrameSize(), 1))
	if m.loaded {
		m.render()
	}
}

// Update forwards scrolling keys and mouse wheel events to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

// ScrollBy moves the viewport by lines (negative scrolls up).
func (m *Model) ScrollBy(lines int) {
	if lines < 0 {
		m.viewport.LineUp(-lines)
		return
	}
	m.viewport.LineDown(lines)
}

// View renders the framed panel.
func (m *Model) View() string {
	style := m.theme.Frame
	if m.width > 0 {
		style = style.Width(m.width - style.GetHorizontalBorderSize())
	}
	if m.height > 0 {
		style = style.Height(m.height - style.GetVerticalBorderSize())
	}
	return style.Render(m.viewport.View())
}

func (m *Model) render() {
	m.viewport.SetContent(Content(m.window, m.viewport.Width(), m.theme))
}

// Content renders the body of the panel for w at the given wrap width.
func Content(w release.Window, wrap int, th theme.PanelTheme) string {
	wrap = max(wrap, 20)
	var b strings.Builder

	b.WriteString(th.Title.Render(w.Name))
	b.WriteString("\n")
	badges := theme.StatusBadge(w.Status)
	if w.Exclusive {
		badges += "  " + theme.ExclusiveBadge()
	}
	b.WriteString(badges)
	b.WriteString("\n\n")

	b.WriteString(th.Section.Render("Basic Information"))
	b.WriteString("\n")
	for _, f := range [][2]string{
		{"Platform", w.Platform},
		{"Territory", w.Territory},
		{"Exclusivity", w.ExclusivityLabel()},
		{"Start Date", w.StartDate.Short()},
		{"End Date", w.EndDate.Short()},
	} {
		fmt.Fprintf(&b, "%s %s\n", th.Label.Render(fmt.Sprintf("%-12s", f[0]+":")), f[1])
	}

	b.WriteString("\n")
	b.WriteString(th.Section.Render(fmt.Sprintf("Marketing Deadlines (%d)", len(w.MarketingDeadlines))))
	b.WriteString("\n")
	if len(w.MarketingDeadlines) == 0 {
		b.WriteString(th.Muted.Render("No marketing deadlines"))
		b.WriteString("\n")
	}
	for _, md := range w.MarketingDeadlines {
		mark := "[ ]"
		if md.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, md.Name)
		line := md.Date.Short()
		if md.Responsible != "" {
			line += " · " + md.Responsible
		}
		b.WriteString("    " + th.Muted.Render(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(th.Section.Render(fmt.Sprintf("Deliverables (%d)", len(w.Deliverables))))
	b.WriteString("\n")
	if len(w.Deliverables) == 0 {
		b.WriteString(th.Muted.Render("No deliverables"))
		b.WriteString("\n")
	}
	for _, d := range w.Deliverables {
		fmt.Fprintf(&b, "%s  %s\n", d.Name, theme.ApprovalBadge(d.ApprovalStatus))
		b.WriteString("    " + th.Muted.Render("Due "+d.DueDate.Short()) + "\n")
	}

	if notes := strings.TrimSpace(w.Notes); notes != "" {
		b.WriteString("\n")
		b.WriteString(th.Section.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(notes, wrap))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var actions []string
	for _, a := range Actions {
		actions = append(actions, th.Disabled.Render(a))
	}
	b.WriteString(strings.Join(actions, "  "))
	b.WriteString("\n")
	b.WriteString(th.Muted.Render("editing is not available"))
	return b.String()
}
