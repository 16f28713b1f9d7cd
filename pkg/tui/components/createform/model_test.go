package createform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/tui/theme"
)

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		if r == ansi.Marker {
			inEsc = true
			continue
		}
		if inEsc {
			if ansi.IsTerminator(r) {
				inEsc = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Text: string(r), Code: r})
	}
}

func press(m *Model, code rune) tea.Cmd {
	return m.Update(tea.KeyPressMsg{Code: code})
}

func fill(m *Model) {
	typeText(m, "Comet Run - Hulu")
	press(m, tea.KeyTab)
	typeText(m, "Hulu")
	press(m, tea.KeyTab)
	typeText(m, "United States")
	press(m, tea.KeyTab)
	typeText(m, "2026-01-10")
	press(m, tea.KeyTab)
	typeText(m, "2026-03-10")
}

func TestDraftFromTypedFields(t *testing.T) {
	m := New(theme.Default().Modal)
	fill(m)

	d := m.Draft()
	if d.Name != "Comet Run - Hulu" || d.Platform != "Hulu" || d.Territory != "United States" {
		t.Fatalf("unexpected draft text fields: %+v", d)
	}
	if d.StartDate != "2026-01-10" || d.EndDate != "2026-03-10" {
		t.Fatalf("unexpected draft dates: %+v", d)
	}
	if d.Status != string(release.StatusScheduled) || d.Exclusive {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestStatusAndExclusivityControls(t *testing.T) {
	m := New(theme.Default().Modal)
	m.focus = fieldStatus
	press(m, tea.KeyRight)
	if got := m.Draft().Status; got != string(release.StatusActive) {
		t.Fatalf("status after right = %s", got)
	}
	press(m, tea.KeyLeft)
	press(m, tea.KeyLeft)
	if got := m.Draft().Status; got != string(release.StatusCancelled) {
		t.Fatalf("status should wrap to cancelled, got %s", got)
	}

	press(m, tea.KeyTab)
	press(m, tea.KeySpace)
	if !m.Draft().Exclusive {
		t.Fatalf("space should toggle exclusivity")
	}
	press(m, tea.KeyEnter)
	if m.Draft().Exclusive {
		t.Fatalf("enter should toggle exclusivity back")
	}
}

func TestEnterSubmitsDraft(t *testing.T) {
	m := New(theme.Default().Modal)
	fill(m)
	cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	if msg.Draft.Name != "Comet Run - Hulu" {
		t.Fatalf("submitted draft = %+v", msg.Draft)
	}
}

func TestEscAndCancelButton(t *testing.T) {
	m := New(theme.Default().Modal)
	if _, ok := press(m, tea.KeyEscape)().(CancelMsg); !ok {
		t.Fatalf("esc should cancel")
	}
	m.focus = fieldCreate
	press(m, tea.KeyLeft)
	if m.focus != fieldCancel {
		t.Fatalf("left on buttons should move to Cancel")
	}
	if _, ok := press(m, tea.KeyEnter)().(CancelMsg); !ok {
		t.Fatalf("enter on Cancel should cancel")
	}
}

func TestTabWrapsAround(t *testing.T) {
	m := New(theme.Default().Modal)
	for i := 0; i <= int(fieldCreate); i++ {
		press(m, tea.KeyTab)
	}
	if m.focus != fieldName {
		t.Fatalf("focus should wrap to name, got %d", m.focus)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.focus != fieldCreate {
		t.Fatalf("shift+tab should wrap to Create, got %d", m.focus)
	}
}

func TestViewShowsErrorAndReset(t *testing.T) {
	m := New(theme.Default().Modal)
	fill(m)
	m.SetError(errBoom("end date is before start date"))
	view, _ := m.View()
	out := stripANSI(view)
	for _, want := range []string{"Create Release Window", "Start Date", "Cancel", "Create Release", "end date is before start date"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	m.Reset()
	if m.Err() != "" || m.Draft().Name != "" || m.focus != fieldName {
		t.Fatalf("Reset left state behind: err=%q draft=%+v focus=%d", m.Err(), m.Draft(), m.focus)
	}
}

type errBoom string

func (e errBoom) Error() string { return string(e) }
