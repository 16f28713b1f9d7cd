// Package dashboard holds the session state behind the release dashboard:
// the loaded windows, their projected timeline, and the view flags the user
// toggles (selection, display mode, create dialog).
//
// A Board is owned by one thread of control. Surfaces that share a Board
// across goroutines must serialize access themselves.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

// Loader supplies the release collection.
type Loader interface {
	Releases(ctx context.Context) ([]release.Window, error)
}

// LoadState tells an empty collection apart from one that failed to load.
type LoadState int

const (
	// LoadIdle means nothing has been loaded yet.
	LoadIdle LoadState = iota
	// Loaded means the last load succeeded, even if it returned no windows.
	Loaded
	// LoadFailed means the last load failed; LoadErr has the cause.
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Board is the session-scoped dashboard state.
type Board struct {
	log    zerolog.Logger
	strict bool

	releases []release.Window
	result   timeline.Result
	problems []release.Problem

	loadState LoadState
	loadErr   error

	view View
}

// Option customises a Board.
type Option func(*Board)

// WithLogger routes board diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Board) {
		b.log = l
	}
}

// WithStrict makes ingestion problems fail the load instead of being logged.
func WithStrict(strict bool) Option {
	return func(b *Board) {
		b.strict = strict
	}
}

// New returns an empty board in list mode.
func New(opts ...Option) *Board {
	b := &Board{
		log:  zerolog.Nop(),
		view: View{Mode: ModeList},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches the collection from src and re-projects the timeline. On
// failure the board keeps whatever it held before and reports LoadFailed.
func (b *Board) Load(ctx context.Context, src Loader) error {
	if src == nil {
		return b.fail(errors.New("dashboard: no release source configured"))
	}
	windows, err := src.Releases(ctx)
	if err != nil {
		return b.fail(fmt.Errorf("dashboard: load releases: %w", err))
	}
	if err := b.Replace(windows); err != nil {
		return b.fail(err)
	}
	return nil
}

// Replace swaps the collection wholesale and recomputes the timeline. The
// board copies windows; later changes by the caller are not seen.
func (b *Board) Replace(windows []release.Window) error {
	windows = release.CloneAll(windows)

	problems := release.ValidateAll(windows)
	if len(problems) > 0 {
		if b.strict {
			return &release.ValidationError{Problems: problems}
		}
		for _, p := range problems {
			b.log.Warn().Str("window", p.WindowID).Str("field", p.Field).Msg(p.Message)
		}
	}

	res, err := timeline.Project(windows)
	if err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		b.log.Warn().Str("window", d.WindowID).Str("field", d.Field).Err(d.Err).Msg("window left out of timeline")
	}

	b.releases = windows
	b.result = res
	b.problems = problems
	b.loadState = Loaded
	b.loadErr = nil
	b.log.Debug().Int("releases", len(windows)).Int("events", len(res.Events)).Msg("timeline projected")
	return nil
}

func (b *Board) fail(err error) error {
	b.loadState = LoadFailed
	b.loadErr = err
	b.log.Error().Err(err).Msg("load failed")
	return err
}

// LoadState reports the outcome of the last load.
func (b *Board) LoadState() LoadState { return b.loadState }

// LoadErr is the cause of the last failed load.
func (b *Board) LoadErr() error { return b.loadErr }

// Releases returns a copy of the current collection in source order.
func (b *Board) Releases() []release.Window {
	return release.CloneAll(b.releases)
}

// Release looks up a window by id.
func (b *Board) Release(id string) (release.Window, bool) {
	w, ok := release.Find(b.releases, id)
	if !ok {
		return release.Window{}, false
	}
	return w.Clone(), true
}

// Events returns the projected timeline.
func (b *Board) Events() []timeline.Event {
	return append([]timeline.Event(nil), b.result.Events...)
}

// Diagnostics returns the windows left out of the last projection.
func (b *Board) Diagnostics() []timeline.Diagnostic {
	return append([]timeline.Diagnostic(nil), b.result.Diagnostics...)
}

// Problems returns the ingestion problems found on the last load.
func (b *Board) Problems() []release.Problem {
	return append([]release.Problem(nil), b.problems...)
}

// EventsOn returns the events dated on the given day.
func (b *Board) EventsOn(year int, month time.Month, day int) []timeline.Event {
	return timeline.OnDay(b.result.Events, year, month, day)
}

// Month lays out a month grid over the current timeline.
func (b *Board) Month(year int, month time.Month, weekStart time.Weekday, today release.Date) timeline.MonthGrid {
	return timeline.Month(year, month, weekStart, today, b.result.Events)
}

// OwnerOf returns the id of the window that produced the event.
func (b *Board) OwnerOf(eventID string) (string, bool) {
	id, ok := timeline.Owners(b.releases)[eventID]
	return id, ok
}
