// Package store supplies release collections to the dashboard. A Source
// reads the whole collection at once; the dashboard never asks for partial
// data.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/release"
)

// ErrNotFound is returned when a window id is not in the store.
var ErrNotFound = errors.New("store: release not found")

// Source defines the read contract every release backend satisfies.
type Source interface {
	Releases(ctx context.Context) ([]release.Window, error)
}

// Watcher is implemented by sources backed by something on disk.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Kind names a source implementation.
type Kind string

const (
	KindSeed Kind = "seed"
	KindFile Kind = "file"
	KindDisk Kind = "disk"
)

// ParseKind converts raw config into a Kind. Empty means seed.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "":
		return KindSeed, nil
	case KindSeed, KindFile, KindDisk:
		return k, nil
	default:
		return "", fmt.Errorf("store: unknown source kind %q", raw)
	}
}

// Config describes where releases come from.
type Config interface {
	SourceKind() string
	SourcePath() string
}

// Open builds the Source described by cfg.
func Open(cfg Config, log zerolog.Logger) (Source, error) {
	if cfg == nil {
		return Seed(), nil
	}
	kind, err := ParseKind(cfg.SourceKind())
	if err != nil {
		return nil, err
	}
	if kind == KindSeed {
		return Seed(), nil
	}

	path, err := homedir.Expand(strings.TrimSpace(cfg.SourcePath()))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	if path == "" {
		return nil, fmt.Errorf("store: %s source needs a path", kind)
	}

	switch kind {
	case KindFile:
		return NewFile(path, log), nil
	default:
		return NewDisk(path, log), nil
	}
}
