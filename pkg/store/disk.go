package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/release"
)

const windowsDir = "windows"

// Disk keeps one JSON record per release window under a base directory.
type Disk struct {
	d        *diskv.Diskv
	basePath string
	log      zerolog.Logger
}

// NewDisk returns a Disk store rooted at basePath.
func NewDisk(basePath string, log zerolog.Logger) *Disk {
	basePath = filepath.Clean(basePath)
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      log,
	}
}

// BasePath is the directory holding the records.
func (s *Disk) BasePath() string { return s.basePath }

// Releases reads every stored window, ordered by id. Unreadable records are
// logged and skipped.
func (s *Disk) Releases(ctx context.Context) ([]release.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.basePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []release.Window{}, nil
		}
		return nil, fmt.Errorf("store: stat %s: %w", s.basePath, err)
	}

	all := make([]release.Window, 0)
	for key := range s.d.Keys(ctx.Done()) {
		w, err := s.read(key)
		if err != nil {
			s.log.Warn().Str("key", key).Err(err).Msg("skipping unreadable record")
			continue
		}
		all = append(all, w)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortWindows(all)
	return all, nil
}

// Get reads a single window.
func (s *Disk) Get(id string) (release.Window, error) {
	key := toKey(id)
	if !s.d.Has(key) {
		return release.Window{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.read(key)
}

// Put writes w, replacing any record with the same id.
func (s *Disk) Put(w release.Window) error {
	id := strings.TrimSpace(w.ID)
	if id == "" {
		return errors.New("store: release id required")
	}
	if strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("store: release id %q must not contain path separators", id)
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", id, err)
	}
	if err := s.d.Write(toKey(id), data); err != nil {
		return fmt.Errorf("store: write %q: %w", id, err)
	}
	return nil
}

// Delete removes the window with id.
func (s *Disk) Delete(id string) error {
	key := toKey(id)
	if !s.d.Has(key) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.d.Erase(key)
}

// Import stores every window and returns how many were written. It stops at
// the first failure.
func (s *Disk) Import(windows []release.Window) (int, error) {
	for i, w := range windows {
		if err := s.Put(w); err != nil {
			return i, err
		}
	}
	s.log.Info().Str("path", s.basePath).Int("releases", len(windows)).Msg("imported releases")
	return len(windows), nil
}

// read bypasses the diskv cache so reloads see edits made by other processes.
func (s *Disk) read(key string) (release.Window, error) {
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		return release.Window{}, err
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return release.Window{}, err
	}
	var w release.Window
	if err := json.Unmarshal(val, &w); err != nil {
		return release.Window{}, err
	}
	if w.ID == "" {
		w.ID = fromKey(key)
	}
	return w, nil
}

// sortWindows orders numeric ids numerically and puts the rest after them.
func sortWindows(windows []release.Window) {
	sort.SliceStable(windows, func(i, j int) bool {
		a, aErr := strconv.Atoi(windows[i].ID)
		b, bErr := strconv.Atoi(windows[j].ID)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return windows[i].ID < windows[j].ID
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1] + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	if len(pathKey.Path) == 0 {
		return name
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), name)
}

// toKey makes `windows-<id>`
func toKey(id string) string {
	return windowsDir + "-" + id
}

func fromKey(key string) string {
	return strings.TrimPrefix(key, windowsDir+"-")
}
