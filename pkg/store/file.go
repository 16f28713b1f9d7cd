package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tableflip.dev/marquee/pkg/release"
)

// document is the on-disk layout of a release file. A bare list of windows
// is accepted too.
type document struct {
	Releases []release.Window `yaml:"releases"`
}

// File reads a YAML (or JSON) document of release windows.
type File struct {
	path string
	log  zerolog.Logger
}

// NewFile returns a Source reading path on every load.
func NewFile(path string, log zerolog.Logger) *File {
	return &File{path: filepath.Clean(path), log: log}
}

// Path is the file being read.
func (f *File) Path() string { return f.path }

func (f *File) Releases(ctx context.Context) ([]release.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", f.path, err)
	}
	defer fh.Close()

	windows, err := decode(fh)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", f.path, err)
	}
	f.log.Debug().Str("path", f.path).Int("releases", len(windows)).Msg("read release file")
	return windows, nil
}

// ReadFile decodes a release document from path.
func ReadFile(path string) ([]release.Window, error) {
	return NewFile(path, zerolog.Nop()).Releases(context.Background())
}

func decode(r io.Reader) ([]release.Window, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return []release.Window{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var list []release.Window
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return nonNil(list), nil
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}
		return nonNil(doc.Releases), nil
	default:
		return nil, errors.New("expected a list of releases or a releases key")
	}
}

func nonNil(list []release.Window) []release.Window {
	if list == nil {
		return []release.Window{}
	}
	return list
}
