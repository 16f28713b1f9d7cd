package timeline

import (
	"sort"
	"time"

	"tableflip.dev/marquee/pkg/release"
)

// OnDay returns the events dated exactly on the given calendar day, in
// timeline order. A day without events yields an empty, non-nil slice.
func OnDay(events []Event, year int, month time.Month, day int) []Event {
	out := make([]Event, 0)
	for _, ev := range events {
		if ev.Date.SameDay(year, month, day) {
			out = append(out, ev)
		}
	}
	return out
}

// Index buckets events by calendar day so repeated per-day lookups do not
// rescan the whole timeline.
type Index map[release.Date][]Event

// IndexByDay builds an Index. Events whose date does not parse are dropped;
// Project never emits those.
func IndexByDay(events []Event) Index {
	idx := make(Index)
	for _, ev := range events {
		y, m, d, ok := ev.Date.Civil()
		if !ok {
			continue
		}
		key := release.NewDate(y, m, d)
		idx[key] = append(idx[key], ev)
	}
	return idx
}

// On returns the events for a day. It matches OnDay for the same input.
func (idx Index) On(year int, month time.Month, day int) []Event {
	evs := idx[release.NewDate(year, month, day)]
	if evs == nil {
		return []Event{}
	}
	return evs
}

// SortByDate orders events by date, then type, then id, so listings are
// stable. The slice is sorted in place.
func SortByDate(events []Event) {
	rank := map[Type]int{TypeRelease: 0, TypeMarketing: 1, TypeDeliverable: 2}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Type != b.Type {
			return rank[a.Type] < rank[b.Type]
		}
		return a.ID < b.ID
	})
}

// Between returns events whose dates fall in [from, to], sorted by date.
func Between(events []Event, from, to release.Date) []Event {
	out := make([]Event, 0)
	for _, ev := range events {
		if ev.Date.Before(from) || to.Before(ev.Date) {
			continue
		}
		out = append(out, ev)
	}
	SortByDate(out)
	return out
}
