// Package logging builds the zerolog loggers used across marquee.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

// EnvVar selects console output when set to "dev".
const EnvVar = "MARQUEE_ENV"

// Options configures the shared log output.
type Options struct {
	Level  string
	Format string // json or console
	File   string
}

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stderr
	level            = zerolog.InfoLevel
	format string
)

// Setup applies opts to every logger created afterwards. When a file is named
// it is opened for append and returned so the caller can close it.
func Setup(opts Options) (io.Closer, error) {
	lvl := zerolog.InfoLevel
	if raw := strings.TrimSpace(opts.Level); raw != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("logging: level %q: %w", raw, err)
		}
		lvl = parsed
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		path, err := homedir.Expand(opts.File)
		if err != nil {
			return nil, fmt.Errorf("logging: expand %q: %w", opts.File, err)
		}
		fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", path, err)
		}
		w, closer = fh, fh
	}

	mu.Lock()
	out, level, format = w, lvl, strings.ToLower(opts.Format)
	mu.Unlock()
	return closer, nil
}

// SetOutput redirects loggers created afterwards to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// New returns a logger tagged with component. Output is human readable when
// MARQUEE_ENV=dev or the configured format is console, JSON otherwise.
func New(component string) zerolog.Logger {
	mu.RLock()
	w, lvl, f := out, level, format
	mu.RUnlock()

	if f == "console" || strings.ToLower(os.Getenv(EnvVar)) == "dev" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
