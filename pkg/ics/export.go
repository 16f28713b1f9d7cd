// Package ics exports the release timeline as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/marquee/pkg/timeline"
)

// ProductID identifies marquee in exported calendars.
const ProductID = "-//tableflip.dev//marquee//EN"

// Options controls an export.
type Options struct {
	// Name is written as X-WR-CALNAME when set.
	Name string
	// Stamp is the DTSTAMP of every event. Zero means now.
	Stamp time.Time
	// Types limits the export to the given event types. Empty means all.
	Types []timeline.Type
}

// Calendar builds an iCalendar with one all-day VEVENT per timeline event.
// Event ids become UIDs so re-imports update rather than duplicate.
func Calendar(events []timeline.Event, opts Options) (*ical.Calendar, error) {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	keep := make(map[timeline.Type]bool, len(opts.Types))
	for _, t := range opts.Types {
		keep[t] = true
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for _, ev := range events {
		if len(keep) > 0 && !keep[ev.Type] {
			continue
		}
		day, err := ev.Date.Time()
		if err != nil {
			return nil, fmt.Errorf("ics: event %s: %w", ev.ID, err)
		}
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(stamp.UTC())
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ve.SetSummary(ev.Title)
		ve.SetDescription(fmt.Sprintf("%s event for %s", ev.Type, ev.RelatedID))
		ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(ev.Type)))
	}
	return cal, nil
}

// Export writes the iCalendar for events to w.
func Export(w io.Writer, events []timeline.Event, opts Options) error {
	cal, err := Calendar(events, opts)
	if err != nil {
		return err
	}
	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("ics: write: %w", err)
	}
	return nil
}

// ParseTypes converts a comma separated list like "release,deliverable".
func ParseTypes(raw string) ([]timeline.Type, error) {
	var out []timeline.Type
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		switch t := timeline.Type(part); t {
		case timeline.TypeRelease, timeline.TypeMarketing, timeline.TypeDeliverable:
			out = append(out, t)
		default:
			return nil, fmt.Errorf("ics: unknown event type %q", part)
		}
	}
	return out, nil
}
