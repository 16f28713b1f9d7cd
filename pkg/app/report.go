package app

import (
	"context"
	"fmt"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

// AgendaSection groups the events of one release window.
type AgendaSection struct {
	Release release.Window
	Events  []timeline.Event
}

// AgendaResult lists the events that fall in a date range.
type AgendaResult struct {
	From     release.Date
	To       release.Date
	Sections []AgendaSection
	Total    int
}

// Agenda returns the events between from and to (inclusive) grouped by the
// release they belong to. Sections follow source order; events inside a
// section are sorted by date.
func (s *Service) Agenda(ctx context.Context, from, to release.Date) (AgendaResult, error) {
	if !from.Valid() || !to.Valid() {
		return AgendaResult{}, fmt.Errorf("app: agenda range %q..%q is not valid", string(from), string(to))
	}
	if to.Before(from) {
		from, to = to, from
	}

	windows, events, err := s.snapshot(ctx)
	if err != nil {
		return AgendaResult{}, err
	}

	owner := timeline.Owners(windows)

	grouped := make(map[string][]timeline.Event)
	result := AgendaResult{From: from, To: to}
	for _, ev := range timeline.Between(events, from, to) {
		id := owner[ev.ID]
		grouped[id] = append(grouped[id], ev)
		result.Total++
	}
	for _, w := range windows {
		if evs := grouped[w.ID]; len(evs) > 0 {
			result.Sections = append(result.Sections, AgendaSection{Release: w, Events: evs})
		}
	}
	return result, nil
}
