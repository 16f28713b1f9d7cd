package store

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"tableflip.dev/marquee/pkg/release"
)

//go:embed seed/releases.yaml
var seedYAML []byte

type seedSource struct{}

// Seed returns the built-in demonstration collection.
func Seed() Source {
	return seedSource{}
}

func (seedSource) Releases(ctx context.Context) ([]release.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	windows, err := decode(bytes.NewReader(seedYAML))
	if err != nil {
		return nil, fmt.Errorf("store: decode seed: %w", err)
	}
	return windows, nil
}
