package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/tui/theme"
)

func plain(s string) string {
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

func overlay() *Model {
	m := New(theme.Default().Panel)
	m.SetSize(80, 20)
	return m
}

func TestOpensAtActiveLayout(t *testing.T) {
	m := overlay()

	m.Open(dashboard.ModeList)
	out := plain(m.View())
	if !strings.Contains(out, "first / last") || strings.Contains(out, "Everywhere") {
		t.Fatalf("expected the list keys at the top:\n%s", out)
	}

	m.Open(dashboard.ModeCalendar)
	out = plain(m.View())
	if !strings.Contains(out, "jump to today") || !strings.Contains(out, "calendar") {
		t.Fatalf("expected the calendar keys:\n%s", out)
	}
}

func TestTabSwitchesSection(t *testing.T) {
	m := overlay()
	m.Open(dashboard.ModeList)
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.mode != dashboard.ModeCalendar {
		t.Fatalf("tab should move to the calendar keys, mode %q", m.mode)
	}
	m.Update(tea.KeyPressMsg{Text: "g", Code: 'g'})
	if !strings.Contains(plain(m.View()), "Everywhere") {
		t.Fatalf("g should return to the top")
	}
}

func TestHeadingsIndexLayouts(t *testing.T) {
	lines := []string{"## Everywhere", "", "  ## List", "x", "## Calendar"}
	got := headings(lines)
	if got[dashboard.ModeList] != 2 || got[dashboard.ModeCalendar] != 4 {
		t.Fatalf("headings = %v", got)
	}
}
