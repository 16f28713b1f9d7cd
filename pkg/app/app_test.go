package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/store"
)

type memorySource struct {
	mu      sync.Mutex
	windows []release.Window
	err     error
	calls   int
}

func (m *memorySource) Releases(context.Context) ([]release.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return release.CloneAll(m.windows), nil
}

func seeded(t *testing.T) *Service {
	t.Helper()
	windows, err := store.Seed().Releases(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(&memorySource{windows: windows}, zerolog.Nop(), false)
}

func TestServiceLoadsOnce(t *testing.T) {
	src := &memorySource{windows: []release.Window{{ID: "1", Name: "A", StartDate: "2025-10-01", EndDate: "2025-10-02"}}}
	svc := New(src, zerolog.Nop(), false)
	ctx := context.Background()

	if _, err := svc.Releases(ctx); err != nil {
		t.Fatalf("releases: %v", err)
	}
	if _, err := svc.Events(ctx); err != nil {
		t.Fatalf("events: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected one load, got %d", src.calls)
	}
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected reload to hit the source, got %d calls", src.calls)
	}
}

func TestServiceNoSource(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Releases(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := svc.Watch(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource from watch, got %v", err)
	}
}

func TestServiceLoadFailureRetries(t *testing.T) {
	boom := errors.New("boom")
	src := &memorySource{err: boom}
	svc := New(src, zerolog.Nop(), false)
	if _, err := svc.Releases(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	src.err = nil
	src.windows = []release.Window{{ID: "1", Name: "A", StartDate: "2025-10-01", EndDate: "2025-10-02"}}
	got, err := svc.Releases(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("retry = %v, %v", got, err)
	}
}

func TestServiceRelease(t *testing.T) {
	svc := seeded(t)
	w, err := svc.Release(context.Background(), "9")
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if w.Platform != "Apple TV+" {
		t.Fatalf("unexpected window %+v", w)
	}
	if _, err := svc.Release(context.Background(), "99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceEventsOn(t *testing.T) {
	svc := seeded(t)
	got, err := svc.EventsOn(context.Background(), "2025-10-10")
	if err != nil {
		t.Fatalf("events on: %v", err)
	}
	if len(got) != 1 || got[0].ID != "deliverable-d6" || got[0].Title != "Due: Dub Tracks" {
		t.Fatalf("unexpected events %+v", got)
	}
	if _, err := svc.EventsOn(context.Background(), "10/10/2025"); err == nil {
		t.Fatal("expected invalid day error")
	}
}

func TestServiceCreate(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()
	w, err := svc.Create(ctx, dashboard.Draft{Name: "AVOD - Tubi", StartDate: "2028-03-01", EndDate: "2029-03-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.ID != "11" {
		t.Fatalf("expected id 11, got %q", w.ID)
	}
	got, err := svc.EventsOn(ctx, "2029-03-01")
	if err != nil || len(got) != 1 || got[0].ID != "release-end-11" {
		t.Fatalf("new window not projected: %+v, %v", got, err)
	}
	if _, err := svc.Create(ctx, dashboard.Draft{}); !errors.Is(err, dashboard.ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestServiceAgenda(t *testing.T) {
	svc := seeded(t)
	res, err := svc.Agenda(context.Background(), "2025-10-31", "2025-10-01")
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if res.From != "2025-10-01" || res.To != "2025-10-31" {
		t.Fatalf("range not normalised: %s..%s", res.From, res.To)
	}
	if res.Total != 3 {
		t.Fatalf("expected 3 October events, got %d", res.Total)
	}
	if len(res.Sections) != 2 || res.Sections[0].Release.ID != "1" || res.Sections[1].Release.ID != "2" {
		t.Fatalf("unexpected sections %+v", res.Sections)
	}
	if got := res.Sections[1].Events; len(got) != 2 || got[0].ID != "deliverable-d6" || got[1].ID != "deliverable-d4" {
		t.Fatalf("unexpected section events %+v", got)
	}
}

func TestServiceAgendaKeepsCreatedEventsUnderCreate(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 25; i++ {
			draft := dashboard.Draft{Name: fmt.Sprintf("Pop-up %d", i), StartDate: "2025-10-15", EndDate: "2025-10-20"}
			if _, err := svc.Create(ctx, draft); err != nil {
				t.Errorf("create %d: %v", i, err)
				return
			}
		}
	}()

	check := func() {
		res, err := svc.Agenda(ctx, "2025-10-01", "2025-10-31")
		if err != nil {
			t.Fatalf("agenda: %v", err)
		}
		listed := 0
		for _, sec := range res.Sections {
			listed += len(sec.Events)
		}
		if listed != res.Total {
			t.Fatalf("agenda counted %d events but listed %d", res.Total, listed)
		}
	}
	for {
		select {
		case <-done:
			check()
			res, _ := svc.Agenda(ctx, "2025-10-01", "2025-10-31")
			if res.Total != 3+2*25 {
				t.Fatalf("expected every created window in the agenda, got %d events", res.Total)
			}
			return
		default:
			check()
		}
	}
}

func TestServiceWatchUnsupported(t *testing.T) {
	svc := seeded(t)
	if _, err := svc.Watch(context.Background()); !errors.Is(err, ErrNotWatchable) {
		t.Fatalf("expected ErrNotWatchable, got %v", err)
	}
}
