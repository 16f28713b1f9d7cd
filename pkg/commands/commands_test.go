package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/marquee/pkg/release"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MARQUEE_CONFIG_PATH", t.TempDir())
	cfg = nil
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", writeConfig(t)))
	err := cmd.Execute()
	return out.String(), err
}

// writeConfig keeps tests away from any .marquee.yaml on the machine.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marquee.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: error\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestListSeed(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Theatrical Release - Domestic", "Hulu"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListJSONWithStatus(t *testing.T) {
	out, err := run(t, "list", "--status", "active", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var windows []release.Window
	if err := json.Unmarshal([]byte(out), &windows); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(windows) != 5 {
		t.Fatalf("expected 5 active windows, got %d", len(windows))
	}
	for _, w := range windows {
		if w.Status != release.StatusActive {
			t.Fatalf("unexpected status %s", w.Status)
		}
	}
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "2")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Theatrical Release - International") || !strings.Contains(out, "Dub Tracks") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	if _, err := run(t, "show", "404"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestCalendarMonthArg(t *testing.T) {
	out, err := run(t, "calendar", "2025-11")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(out, "November 2025") {
		t.Fatalf("expected November title:\n%s", out)
	}
	if _, err := run(t, "calendar", "November"); err == nil {
		t.Fatalf("expected error for bad month")
	}
}

func TestEventsOnDay(t *testing.T) {
	out, err := run(t, "events", "--on", "2025-10-10", "--json")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var events []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(events) != 1 || events[0].ID != "deliverable-d6" {
		t.Fatalf("unexpected events %+v", events)
	}

	out, err = run(t, "events", "--on", "10/10", "--types", "marketing", "--json")
	if err != nil {
		t.Fatalf("events short date: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected no marketing events on Oct 10, got %s", out)
	}
}

func TestAgendaDefaultsToConfiguredMonth(t *testing.T) {
	out, err := run(t, "agenda", "--json")
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	var res struct {
		From  string `json:"From"`
		To    string `json:"To"`
		Total int    `json:"Total"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.From != "2025-10-01" || res.To != "2025-10-31" || res.Total != 3 {
		t.Fatalf("unexpected agenda %+v", res)
	}
}

func TestCheckSeedIsClean(t *testing.T) {
	if _, err := run(t, "check"); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestExportICS(t *testing.T) {
	out, err := run(t, "export", "ics", "--types", "release")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "UID:release-start-1") {
		t.Fatalf("unexpected ics:\n%s", out)
	}
	if strings.Contains(out, "UID:marketing-") {
		t.Fatalf("marketing events should be filtered out")
	}
}

func TestImportThenListDisk(t *testing.T) {
	src := filepath.Join(t.TempDir(), "releases.yaml")
	data := `releases:
  - id: "1"
    name: "Comet Run - Hulu"
    startDate: "2026-01-10"
    endDate: "2026-03-10"
    platform: Hulu
    territory: United States
    status: scheduled
`
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "store")

	out, err := run(t, "import", src, "--to", dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 1 release windows") {
		t.Fatalf("unexpected import output: %s", out)
	}

	out, err = run(t, "list", "--source", "disk", "--path", dir, "--json")
	if err != nil {
		t.Fatalf("list disk: %v", err)
	}
	if !strings.Contains(out, "Comet Run - Hulu") {
		t.Fatalf("expected imported window: %s", out)
	}
}

func TestImportNeedsDestination(t *testing.T) {
	if _, err := run(t, "import", "whatever.yaml"); err == nil {
		t.Fatalf("expected error without a destination")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version output: %s", out)
	}
}

func TestAgendaWithin(t *testing.T) {
	out, err := run(t, "agenda", "--within", "1w", "--json")
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	var res struct {
		From string `json:"From"`
		To   string `json:"To"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.From != "2025-10-05" || res.To != "2025-10-12" {
		t.Fatalf("unexpected range %+v", res)
	}

	if _, err := run(t, "agenda", "--within", "3h"); err == nil {
		t.Fatalf("expected error for an hour span")
	}
}
