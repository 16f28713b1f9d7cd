package releaselist

import (
	"strings"
	"testing"

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

func windows() []release.Window {
	return []release.Window{
		{ID: "1", Name: "Stellar Odyssey - Netflix", Platform: "Netflix", Territory: "United States", StartDate: "2025-11-15", EndDate: "2026-01-15", Status: release.StatusScheduled, Exclusive: true},
		{ID: "2", Name: "Stellar Odyssey - Prime", Platform: "Prime Video", Territory: "United Kingdom", StartDate: "2025-12-01", EndDate: "2026-02-28", Status: release.StatusActive},
		{ID: "3", Name: "Midnight Heist - Disney+", Platform: "Disney+", Territory: "Canada", StartDate: "2026-01-10", EndDate: "2026-04-10", Status: release.StatusCompleted},
	}
}

func TestViewFullTable(t *testing.T) {
	m := New(theme.Default().Table)
	m.SetReleases(windows())
	out := stripANSI(m.View())
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d:\n%s", len(lines), out)
	}
	for _, want := range []string{"Name", "Platform", "Territory", "Dates", "Status"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("header missing %q: %q", want, lines[0])
		}
	}
	if !strings.HasPrefix(lines[1], "* Stellar Odyssey") {
		t.Fatalf("expected exclusive marker on first row, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "Nov 15, 2025 - Jan 15, 2026") {
		t.Fatalf("expected date range, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "Active") {
		t.Fatalf("expected status badge, got %q", lines[2])
	}
}

func TestViewCollapsed(t *testing.T) {
	m := New(theme.Default().Table)
	m.SetReleases(windows())
	m.SetSelected("2")
	m.SetCollapsed(true)
	out := stripANSI(m.View())
	if strings.Contains(out, "Platform") || strings.Contains(out, "Prime Video") {
		t.Fatalf("collapsed list should only show name and status:\n%s", out)
	}
	if !strings.Contains(out, "> Stellar Odyssey - Prime") {
		t.Fatalf("expected selected marker:\n%s", out)
	}
}

func TestCursorMovement(t *testing.T) {
	m := New(theme.Default().Table)
	m.SetReleases(windows())
	m.Move(-1)
	if m.Cursor() != 0 {
		t.Fatalf("cursor should stop at top, got %d", m.Cursor())
	}
	m.Move(5)
	if m.Cursor() != 2 {
		t.Fatalf("cursor should stop at bottom, got %d", m.Cursor())
	}
	m.Home()
	if w, _ := m.Current(); w.ID != "1" {
		t.Fatalf("Home current = %s", w.ID)
	}
	if !m.SetCursorByID("3") {
		t.Fatalf("SetCursorByID(3) failed")
	}
	// replacing rows keeps the cursor on the same id
	reordered := windows()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	m.SetReleases(reordered)
	if m.Cursor() != 0 {
		t.Fatalf("cursor should follow id 3 to row 0, got %d", m.Cursor())
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := New(theme.Default().Table)
	m.SetReleases(windows())
	m.SetSize(200, 3) // header + 2 rows
	m.End()
	out := stripANSI(m.View())
	if strings.Contains(out, "Netflix") {
		t.Fatalf("first row should scroll out of view:\n%s", out)
	}
	if !strings.Contains(out, "Disney+") {
		t.Fatalf("cursor row should be visible:\n%s", out)
	}
}

func TestEmpty(t *testing.T) {
	m := New(theme.Default().Table)
	if _, ok := m.Current(); ok {
		t.Fatalf("empty list has no current row")
	}
	if !strings.Contains(stripANSI(m.View()), "No release windows") {
		t.Fatalf("expected empty message")
	}
}
