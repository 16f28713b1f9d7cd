package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// EventType describes the nature of a source change notification.
type EventType int

const (
	// EventReleasesChanged means one or more release records were written or
	// removed; the collection should be reloaded.
	EventReleasesChanged EventType = iota

	// EventSourceInvalidated means the watcher could not classify what
	// happened (an error, a new directory); reload everything.
	EventSourceInvalidated
)

func (t EventType) String() string {
	if t == EventSourceInvalidated {
		return "invalidated"
	}
	return "changed"
}

// Event is emitted by Watch when the underlying files change.
type Event struct {
	Type EventType
	Path string
}

const throttleDelay = 100 * time.Millisecond

// Watch streams change events for the store directory until ctx is
// cancelled. Callers should drain the channel; events are dropped when the
// consumer falls behind.
func (s *Disk) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	dirs, err := collectDirs(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	return watch(ctx, s.log, dirs, func(string) bool { return true })
}

// Watch streams change events for the release file. The parent directory is
// watched so editors that replace the file on save are still seen.
func (f *File) Watch(ctx context.Context) (<-chan Event, error) {
	dir := filepath.Dir(f.path)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}
	return watch(ctx, f.log, []string{dir}, func(name string) bool {
		return filepath.Clean(name) == f.path
	})
}

func watch(ctx context.Context, log zerolog.Logger, dirs []string, match func(string) bool) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn().Err(err).Msg("watcher close")
			}
		})
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		var (
			sendMu sync.Mutex
			closed bool
		)
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// Consumer is behind; the next event triggers a full reload anyway.
			}
		}

		throttle := newEventThrottle(throttleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("watcher error")
				throttle.Enqueue(Event{Type: EventSourceInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								log.Warn().Str("dir", absDir).Err(err).Msg("watch directory")
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventSourceInvalidated}, send)
						continue
					}
				}

				if evt.Op == fsnotify.Chmod || !match(evt.Name) {
					continue
				}
				throttle.Enqueue(Event{Type: EventReleasesChanged, Path: filepath.Clean(evt.Name)}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces a burst of writes into one event per path.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Path] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if paths, ok := pending[EventSourceInvalidated]; ok && len(paths) > 0 {
		send(Event{Type: EventSourceInvalidated})
		return
	}
	for path := range pending[EventReleasesChanged] {
		send(Event{Type: EventReleasesChanged, Path: path})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
