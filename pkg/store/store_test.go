package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

type cfg struct {
	kind, path string
}

func (c cfg) SourceKind() string { return c.kind }
func (c cfg) SourcePath() string { return c.path }

func TestSeedCollection(t *testing.T) {
	windows, err := Seed().Releases(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(windows) != 10 {
		t.Fatalf("expected 10 seed windows, got %d", len(windows))
	}
	wantOrder := []string{"1", "2", "3", "4", "6", "5", "7", "8", "9", "10"}
	for i, id := range wantOrder {
		if windows[i].ID != id {
			t.Fatalf("windows[%d].ID = %q, want %q", i, windows[i].ID, id)
		}
	}
	if problems := release.ValidateAll(windows); len(problems) != 0 {
		t.Fatalf("seed has problems: %v", problems)
	}

	res, err := timeline.Project(windows)
	if err != nil {
		t.Fatalf("project seed: %v", err)
	}
	if len(res.Events) != 57 {
		t.Fatalf("expected 57 seed events, got %d", len(res.Events))
	}

	first := windows[0]
	if first.Name != "Theatrical Release - Domestic" || !first.Exclusive || first.Status != release.StatusScheduled {
		t.Fatalf("unexpected first window %+v", first)
	}
	if got := first.Deliverables[0].ApprovalStatus; got != release.ApprovalApproved {
		t.Fatalf("d1 approval = %q", got)
	}
}

func TestFileAcceptsDocumentAndList(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.yaml")
	list := filepath.Join(dir, "list.json")
	if err := os.WriteFile(doc, []byte(`releases:
  - id: "1"
    name: Theatrical
    startDate: 2025-11-15
    endDate: 2026-01-15
    status: scheduled
    exclusivity: true
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(list, []byte(`[{"id":"2","name":"Netflix","startDate":"2026-02-15","endDate":"2028-02-15","status":"active","exclusivity":false}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(doc)
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	if len(got) != 1 || got[0].StartDate != "2025-11-15" || !got[0].Exclusive {
		t.Fatalf("unexpected doc windows %+v", got)
	}

	got, err = ReadFile(list)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" || got[0].Status != release.StatusActive {
		t.Fatalf("unexpected list windows %+v", got)
	}
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("just a string\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(bad); err == nil {
		t.Fatal("expected decode error")
	}
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(empty)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty file = %v, %v", got, err)
	}
}

func TestDiskRoundTrip(t *testing.T) {
	s := NewDisk(t.TempDir(), zerolog.Nop())
	ctx := context.Background()

	got, err := s.Releases(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty store = %v, %v", got, err)
	}

	seed, err := Seed().Releases(ctx)
	if err != nil {
		t.Fatal(err)
	}
	n, err := s.Import(seed)
	if err != nil || n != 10 {
		t.Fatalf("import = %d, %v", n, err)
	}

	got, err = s.Releases(ctx)
	if err != nil {
		t.Fatalf("releases: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 windows, got %d", len(got))
	}
	if got[4].ID != "5" || got[9].ID != "10" {
		t.Fatalf("last id = %q", got[9].ID)
	}

	w, err := s.Get("3")
	if err != nil || w.Name != "SVOD Release - Netflix" || len(w.Deliverables) != 3 {
		t.Fatalf("get 3 = %+v, %v", w, err)
	}
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing err = %v", err)
	}
	if err := s.Delete("3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if err := s.Put(release.Window{ID: "a/b"}); err == nil {
		t.Fatal("expected id with separator to be rejected")
	}
}

func TestOpen(t *testing.T) {
	src, err := Open(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(seedSource); !ok {
		t.Fatalf("nil config should give seed, got %T", src)
	}

	dir := t.TempDir()
	src, err = Open(cfg{kind: "file", path: filepath.Join(dir, "r.yaml")}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*File); !ok {
		t.Fatalf("expected *File, got %T", src)
	}

	src, err = Open(cfg{kind: "DISK", path: dir}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(Watcher); !ok {
		t.Fatalf("disk source should be watchable")
	}

	if _, err := Open(cfg{kind: "file"}, zerolog.Nop()); err == nil {
		t.Fatal("file without path should fail")
	}
	if _, err := Open(cfg{kind: "s3"}, zerolog.Nop()); err == nil {
		t.Fatal("unknown kind should fail")
	}
}

func TestDiskReloadSeesExternalEdit(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s := NewDisk(base, zerolog.Nop())
	if err := s.Put(release.Window{ID: "1", Name: "Old"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got, err := s.Releases(ctx); err != nil || got[0].Name != "Old" {
		t.Fatalf("first read = %+v, %v", got, err)
	}

	other := NewDisk(base, zerolog.Nop())
	if err := other.Put(release.Window{ID: "1", Name: "New"}); err != nil {
		t.Fatalf("put from second store: %v", err)
	}

	got, err := s.Releases(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 1 || got[0].Name != "New" {
		t.Fatalf("reload returned %+v, expected the edited record", got)
	}
	w, err := s.Get("1")
	if err != nil || w.Name != "New" {
		t.Fatalf("get after edit = %+v, %v", w, err)
	}
}
