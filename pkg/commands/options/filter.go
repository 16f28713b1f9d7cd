package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

// FilterOptions narrow listings.
type FilterOptions struct {
	Status string
	Types  string
}

func AddStatusArg(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Only show windows with this status: scheduled, active, completed or cancelled.")
}

func AddTypesArg(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Types, "types", "",
		"Comma separated event types to include: release, marketing, deliverable.")
}

// Releases applies --status to windows.
func (o *FilterOptions) Releases(windows []release.Window) ([]release.Window, error) {
	if o.Status == "" {
		return windows, nil
	}
	status, err := release.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	out := make([]release.Window, 0, len(windows))
	for _, w := range windows {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

// Events keeps events whose type is listed in types.
func Events(events []timeline.Event, types []timeline.Type) []timeline.Event {
	if len(types) == 0 {
		return events
	}
	keep := make(map[timeline.Type]bool, len(types))
	for _, t := range types {
		keep[t] = true
	}
	out := make([]timeline.Event, 0, len(events))
	for _, ev := range events {
		if keep[ev.Type] {
			out = append(out, ev)
		}
	}
	return out
}
