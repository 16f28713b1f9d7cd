package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/store"
	"tableflip.dev/marquee/pkg/timeline"
)

var (
	// ErrNoSource means the service was built without a release source.
	ErrNoSource = errors.New("app: no release source configured")
	// ErrNotFound means no window has the requested id.
	ErrNotFound = errors.New("app: release not found")
	// ErrNotWatchable means the configured source has nothing to watch.
	ErrNotWatchable = errors.New("app: source does not support watching")
)

// Service provides high-level release operations shared by the CLI, the
// MCP server and the TUI. It owns one Board and guards it with a mutex.
type Service struct {
	Source store.Source
	Log    zerolog.Logger
	Strict bool

	mu    sync.Mutex
	board *dashboard.Board
}

// New returns a Service over src.
func New(src store.Source, log zerolog.Logger, strict bool) *Service {
	return &Service{Source: src, Log: log, Strict: strict}
}

func (s *Service) ensure(ctx context.Context) (*dashboard.Board, error) {
	if s.Source == nil {
		return nil, ErrNoSource
	}
	if s.board == nil {
		s.board = dashboard.New(dashboard.WithLogger(s.Log), dashboard.WithStrict(s.Strict))
	}
	if s.board.LoadState() != dashboard.Loaded {
		if err := s.board.Load(ctx, s.Source); err != nil {
			return nil, err
		}
	}
	return s.board, nil
}

// NewBoard loads a fresh board for a caller that keeps its own view state.
func (s *Service) NewBoard(ctx context.Context) (*dashboard.Board, error) {
	b := dashboard.New(dashboard.WithLogger(s.Log), dashboard.WithStrict(s.Strict))
	if s.Source == nil {
		return b, ErrNoSource
	}
	return b, b.Load(ctx, s.Source)
}

// Reload re-reads the source.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Source == nil {
		return ErrNoSource
	}
	if s.board == nil {
		s.board = dashboard.New(dashboard.WithLogger(s.Log), dashboard.WithStrict(s.Strict))
	}
	return s.board.Load(ctx, s.Source)
}

// Releases returns the collection in source order.
func (s *Service) Releases(ctx context.Context) ([]release.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return b.Releases(), nil
}

// Release returns the window with id.
func (s *Service) Release(ctx context.Context, id string) (release.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return release.Window{}, err
	}
	w, ok := b.Release(id)
	if !ok {
		return release.Window{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return w, nil
}

// Events returns the projected timeline sorted by date.
func (s *Service) Events(ctx context.Context) ([]timeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	events := b.Events()
	timeline.SortByDate(events)
	return events, nil
}

// snapshot returns the collection and its sorted timeline from one load.
func (s *Service) snapshot(ctx context.Context) ([]release.Window, []timeline.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return nil, nil, err
	}
	events := b.Events()
	timeline.SortByDate(events)
	return b.Releases(), events, nil
}

// EventsOn returns the events on a single day.
func (s *Service) EventsOn(ctx context.Context, day release.Date) ([]timeline.Event, error) {
	y, m, d, ok := day.Civil()
	if !ok {
		return nil, fmt.Errorf("app: invalid day %q", string(day))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return b.EventsOn(y, m, d), nil
}

// Month lays out the calendar grid for a month.
func (s *Service) Month(ctx context.Context, year int, month time.Month, weekStart time.Weekday, today release.Date) (timeline.MonthGrid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return timeline.MonthGrid{}, err
	}
	return b.Month(year, month, weekStart, today), nil
}

// Diagnostics lists windows left out of the timeline and ingestion problems.
func (s *Service) Diagnostics(ctx context.Context) ([]timeline.Diagnostic, []release.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return nil, nil, err
	}
	return b.Diagnostics(), b.Problems(), nil
}

// Create commits a draft through the create dialog. The new window lives in
// this session only.
func (s *Service) Create(ctx context.Context, draft dashboard.Draft) (release.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.ensure(ctx)
	if err != nil {
		return release.Window{}, err
	}
	b.OpenCreateDialog()
	w, err := b.CloseCreateDialog(dashboard.CloseCreate, draft)
	if err != nil {
		_, _ = b.CloseCreateDialog(dashboard.CloseCancel, dashboard.Draft{})
		return release.Window{}, err
	}
	return w, nil
}

// Watch subscribes to source change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Source == nil {
		return nil, ErrNoSource
	}
	w, ok := s.Source.(store.Watcher)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx)
}
