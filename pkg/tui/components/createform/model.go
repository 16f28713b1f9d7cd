// Package createform is the modal used to draft a new release window.
package createform

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/tui/theme"
)

type focusField int

const (
	fieldName focusField = iota
	fieldPlatform
	fieldTerritory
	fieldStart
	fieldEnd
	fieldNotes
	fieldStatus
	fieldExclusive
	fieldCancel
	fieldCreate
)

const inputCount = int(fieldNotes) + 1

var labels = [...]string{
	fieldName:      "Name",
	fieldPlatform:  "Platform",
	fieldTerritory: "Territory",
	fieldStart:     "Start Date",
	fieldEnd:       "End Date",
	fieldNotes:     "Notes",
	fieldStatus:    "Status",
	fieldExclusive: "Exclusivity",
}

const labelWidth = 13

// SubmitMsg carries the draft when the user presses "Create Release".
type SubmitMsg struct {
	Draft dashboard.Draft
}

// CancelMsg is sent when the dialog is dismissed.
type CancelMsg struct{}

// Model renders the create-release dialog.
type Model struct {
	inputs    [inputCount]textinput.Model
	statuses  []release.Status
	status    int
	exclusive bool

	focus focusField
	width int
	err   string
	theme theme.ModalTheme
}

// New constructs an empty form focused on the name field.
func New(th theme.ModalTheme) *Model {
	m := &Model{
		statuses: release.AllStatuses(),
		theme:    th,
	}
	placeholders := [inputCount]string{
		fieldName:      "Title - Platform",
		fieldPlatform:  "Netflix",
		fieldTerritory: "United States",
		fieldStart:     "YYYY-MM-DD",
		fieldEnd:       "YYYY-MM-DD",
		fieldNotes:     "optional",
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		m.inputs[i] = in
	}
	m.SetWidth(60)
	m.updateInputFocus()
	return m
}

// Init focuses the first input.
func (m *Model) Init() tea.Cmd {
	return m.updateInputFocus()
}

// Reset clears every field and returns focus to the name input.
func (m *Model) Reset() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.status = 0
	m.exclusive = false
	m.err = ""
	m.focus = fieldName
	return m.updateInputFocus()
}

// SetError shows err under the fields; nil clears it.
func (m *Model) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Err returns the message currently displayed.
func (m *Model) Err() string { return m.err }

// SetWidth sizes the dialog body.
func (m *Model) SetWidth(width int) {
	m.width = max(width, labelWidth+16)
	for i := range m.inputs {
		m.inputs[i].SetWidth(m.width - labelWidth - 2)
	}
}

// Draft returns the form contents.
func (m *Model) Draft() dashboard.Draft {
	return dashboard.Draft{
		Name:      strings.TrimSpace(m.inputs[fieldName].Value()),
		Platform:  strings.TrimSpace(m.inputs[fieldPlatform].Value()),
		Territory: strings.TrimSpace(m.inputs[fieldTerritory].Value()),
		StartDate: strings.TrimSpace(m.inputs[fieldStart].Value()),
		EndDate:   strings.TrimSpace(m.inputs[fieldEnd].Value()),
		Status:    string(m.statuses[m.status]),
		Exclusive: m.exclusive,
		Notes:     strings.TrimSpace(m.inputs[fieldNotes].Value()),
	}
}

// Update handles keys while the dialog is open.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus < focusField(inputCount) {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return cmd
		}
		return nil
	}

	var cmds []tea.Cmd
	switch key.String() {
	case "esc":
		return cancelCmd
	case "tab", "down":
		m.advanceFocus(1)
	case "shift+tab", "up":
		m.advanceFocus(-1)
	case "enter":
		switch m.focus {
		case fieldCancel:
			return cancelCmd
		case fieldExclusive:
			m.exclusive = !m.exclusive
		default:
			return m.submitCmd()
		}
	default:
		switch {
		case m.focus < focusField(inputCount):
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			cmds = appendCmd(cmds, cmd)
		case m.focus == fieldStatus:
			m.adjustStatus(key.String())
		case m.focus == fieldExclusive:
			if s := key.String(); s == "space" || s == " " || s == "left" || s == "right" {
				m.exclusive = !m.exclusive
			}
		case m.focus == fieldCancel || m.focus == fieldCreate:
			switch key.String() {
			case "left", "h":
				m.focus = fieldCancel
			case "right", "l":
				m.focus = fieldCreate
			}
		}
	}
	cmds = appendCmd(cmds, m.updateInputFocus())
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) adjustStatus(key string) {
	switch key {
	case "left", "h":
		m.status = (m.status + len(m.statuses) - 1) % len(m.statuses)
	case "right", "l", "space", " ":
		m.status = (m.status + 1) % len(m.statuses)
	}
}

func (m *Model) submitCmd() tea.Cmd {
	draft := m.Draft()
	return func() tea.Msg { return SubmitMsg{Draft: draft} }
}

func cancelCmd() tea.Msg { return CancelMsg{} }

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}

func (m *Model) advanceFocus(delta int) {
	n := int(fieldCreate) + 1
	m.focus = focusField((int(m.focus) + n + delta) % n)
}

func (m *Model) updateInputFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if focusField(i) == m.focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// View renders the dialog and the cursor of the focused input.
func (m *Model) View() (string, *tea.Cursor) {
	label := func(f focusField) string {
		text := labels[f]
		style := lipgloss.NewStyle().Width(labelWidth)
		if f == m.focus {
			style = style.Bold(true)
			text = "› " + text
		} else {
			text = "  " + text
		}
		return style.Render(text)
	}

	lines := []string{m.theme.Title.Render("Create Release Window"), ""}
	inputRow := make(map[focusField]int, inputCount)
	for i := range m.inputs {
		f := focusField(i)
		inputRow[f] = len(lines)
		lines = append(lines, label(f)+" "+m.inputs[i].View())
	}

	status := m.statuses[m.status]
	lines = append(lines,
		label(fieldStatus)+" ‹ "+theme.StatusBadge(status)+" ›",
		label(fieldExclusive)+" "+checkbox(m.exclusive)+" Exclusive",
		"",
	)

	cancel, create := m.theme.Button, m.theme.Button
	switch m.focus {
	case fieldCancel:
		cancel = m.theme.ActiveButton
	case fieldCreate:
		create = m.theme.ActiveButton
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cancel.Render("Cancel"), "  ", create.Render("Create Release")))

	if m.err != "" {
		lines = append(lines, "", m.theme.Error.Render(m.err))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("tab next • enter submit • esc cancel"))

	body := lipgloss.NewStyle().Width(m.width).Render(strings.Join(lines, "\n"))
	box := m.theme.Frame.Render(body)

	var cursor *tea.Cursor
	if m.focus < focusField(inputCount) {
		if c := m.inputs[m.focus].Cursor(); c != nil {
			clone := *c
			clone.Position.X += labelWidth + 1
			clone.Position.Y += inputRow[m.focus]
			clone.Position.X += m.theme.Frame.GetBorderLeftSize() + m.theme.Frame.GetPaddingLeft()
			clone.Position.Y += m.theme.Frame.GetBorderTopSize() + m.theme.Frame.GetPaddingTop()
			cursor = &clone
		}
	}
	return box, cursor
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
