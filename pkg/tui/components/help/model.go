// Package help renders the key reference as a scrollable overlay.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/tui/theme"
)

//go:embed help.md
var reference string

// chrome is the title and hint lines around the viewport.
const chrome = 2

// Model shows the key reference, opened at the section for the active layout.
type Model struct {
	vp    viewport.Model
	th    theme.PanelTheme
	mode  dashboard.Mode
	width int

	// sections maps a layout to the line its heading was rendered on.
	sections map[dashboard.Mode]int
	err      error
}

// New returns a help overlay styled with th. Call SetSize before View.
func New(th theme.PanelTheme) *Model {
	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))
	vp.MouseWheelEnabled = true
	return &Model{vp: vp, th: th, mode: dashboard.ModeList, sections: map[dashboard.Mode]int{}}
}

// Open scrolls to the keys of mode.
func (m *Model) Open(mode dashboard.Mode) {
	m.mode = mode
	m.vp.SetYOffset(m.sections[mode])
}

// SetSize fits the overlay, frame included, into width x height.
func (m *Model) SetSize(width, height int) {
	inner := max(width-m.th.Frame.GetHorizontalFrameSize(), 24)
	rows := max(height-m.th.Frame.GetVerticalFrameSize()-chrome, 4)
	if inner == m.width && rows == m.vp.Height() {
		return
	}
	m.width = inner
	m.vp.SetWidth(inner)
	m.vp.SetHeight(rows)
	m.render()
	m.Open(m.mode)
}

// Update scrolls the reference.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "home", "g":
			m.vp.SetYOffset(0)
			return nil
		case "tab":
			if m.mode == dashboard.ModeCalendar {
				m.Open(dashboard.ModeList)
			} else {
				m.Open(dashboard.ModeCalendar)
			}
			return nil
		}
	}
	vp, cmd := m.vp.Update(msg)
	m.vp = vp
	return cmd
}

// View renders the framed reference.
func (m *Model) View() string {
	title := m.th.Title.Render("Keys") + "  " + m.th.Muted.Render(modeLabel(m.mode))
	hint := m.th.Muted.Render("↑/↓ scroll • tab other layout • esc close")
	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.vp.View(), hint))
}

func (m *Model) render() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(m.width),
	)
	var out string
	if err == nil {
		out, err = r.Render(reference)
	}
	m.err = err
	if err != nil {
		out = reference
	}
	out = strings.Trim(out, "\n")
	m.vp.SetContent(out)
	m.sections = headings(strings.Split(out, "\n"))
}

// headings finds the layout sections among rendered lines.
func headings(lines []string) map[dashboard.Mode]int {
	found := map[dashboard.Mode]int{}
	for i, line := range lines {
		switch strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#")) {
		case "List":
			found[dashboard.ModeList] = i
		case "Calendar":
			found[dashboard.ModeCalendar] = i
		}
	}
	return found
}

func modeLabel(mode dashboard.Mode) string {
	if mode == dashboard.ModeCalendar {
		return "calendar"
	}
	return "list"
}
