// Package timeline projects release windows into a flat, dated event
// timeline and answers per-day questions about it.
package timeline

import (
	"fmt"

	"tableflip.dev/marquee/pkg/release"
)

// Type tags where an event came from.
type Type string

const (
	// TypeRelease marks the start or end of a window.
	TypeRelease Type = "release"
	// TypeMarketing marks a marketing deadline.
	TypeMarketing Type = "marketing"
	// TypeDeliverable marks a deliverable due date.
	TypeDeliverable Type = "deliverable"
)

// Event is one dated item on the timeline. Events are derived; they are
// regenerated from the windows and never edited in place.
type Event struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Date      release.Date `json:"date"`
	Type      Type         `json:"type"`
	RelatedID string       `json:"relatedId"`
}

// Diagnostic records a window left out of the projection.
type Diagnostic struct {
	WindowID string
	Field    string
	Err      error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("window %q: %s: %v", d.WindowID, d.Field, d.Err)
}

// Result is the output of Project.
type Result struct {
	Events      []Event
	Diagnostics []Diagnostic
}

// DuplicateIDError reports two source records that would produce the same
// event id.
type DuplicateIDError struct {
	EventID string
	Type    Type
	// SourceID is the colliding window, deadline or deliverable id.
	SourceID string
	// Windows holds the ids of the windows owning the colliding records.
	Windows [2]string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("timeline: duplicate %s id %q (windows %q and %q)", e.Type, e.SourceID, e.Windows[0], e.Windows[1])
}

// ReleaseStartID is the event id for the opening day of a window.
func ReleaseStartID(windowID string) string { return "release-start-" + windowID }

// ReleaseEndID is the event id for the closing day of a window.
func ReleaseEndID(windowID string) string { return "release-end-" + windowID }

// MarketingID is the event id for a marketing deadline.
func MarketingID(deadlineID string) string { return "marketing-" + deadlineID }

// DeliverableID is the event id for a deliverable.
func DeliverableID(deliverableID string) string { return "deliverable-" + deliverableID }

// Project expands windows into events. Every window yields a start and an end
// event; every marketing deadline and deliverable yields one event. Windows
// holding a date that does not parse are skipped whole and reported in
// Result.Diagnostics. Colliding event ids fail the projection with a
// *DuplicateIDError. The input is never modified.
func Project(windows []release.Window) (Result, error) {
	size := 0
	for _, w := range windows {
		size += 2 + len(w.MarketingDeadlines) + len(w.Deliverables)
	}
	res := Result{Events: make([]Event, 0, size)}

	// event id -> owning window id
	owners := make(map[string]string, size)
	claim := func(ev Event, sourceID, windowID string) error {
		if prev, ok := owners[ev.ID]; ok {
			return &DuplicateIDError{
				EventID:  ev.ID,
				Type:     ev.Type,
				SourceID: sourceID,
				Windows:  [2]string{prev, windowID},
			}
		}
		owners[ev.ID] = windowID
		return nil
	}

	for _, w := range windows {
		if d, bad := malformed(w); bad {
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}
		for _, ev := range expand(w) {
			if err := claim(ev, sourceOf(ev, w), w.ID); err != nil {
				return Result{}, err
			}
			res.Events = append(res.Events, ev)
		}
	}
	return res, nil
}

func expand(w release.Window) []Event {
	out := make([]Event, 0, 2+len(w.MarketingDeadlines)+len(w.Deliverables))
	out = append(out,
		Event{
			ID:        ReleaseStartID(w.ID),
			Title:     w.Name + " Start",
			Date:      w.StartDate,
			Type:      TypeRelease,
			RelatedID: w.ID,
		},
		Event{
			ID:        ReleaseEndID(w.ID),
			Title:     w.Name + " End",
			Date:      w.EndDate,
			Type:      TypeRelease,
			RelatedID: w.ID,
		},
	)
	for _, md := range w.MarketingDeadlines {
		out = append(out, Event{
			ID:        MarketingID(md.ID),
			Title:     md.Name,
			Date:      md.Date,
			Type:      TypeMarketing,
			RelatedID: md.ID,
		})
	}
	for _, d := range w.Deliverables {
		out = append(out, Event{
			ID:        DeliverableID(d.ID),
			Title:     "Due: " + d.Name,
			Date:      d.DueDate,
			Type:      TypeDeliverable,
			RelatedID: d.ID,
		})
	}
	return out
}

// sourceOf names the record that produced ev, for error reporting.
func sourceOf(ev Event, w release.Window) string {
	if ev.Type == TypeRelease {
		return w.ID
	}
	return ev.RelatedID
}

func malformed(w release.Window) (Diagnostic, bool) {
	check := func(field string, d release.Date) (Diagnostic, bool) {
		if _, err := d.Time(); err != nil {
			return Diagnostic{WindowID: w.ID, Field: field, Err: err}, true
		}
		return Diagnostic{}, false
	}
	if d, bad := check("startDate", w.StartDate); bad {
		return d, true
	}
	if d, bad := check("endDate", w.EndDate); bad {
		return d, true
	}
	for i, md := range w.MarketingDeadlines {
		if d, bad := check(fmt.Sprintf("marketingDeadlines[%d].date", i), md.Date); bad {
			return d, true
		}
	}
	for i, dl := range w.Deliverables {
		if d, bad := check(fmt.Sprintf("deliverables[%d].dueDate", i), dl.DueDate); bad {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Count returns how many events of each type are in events.
func Count(events []Event) map[Type]int {
	out := make(map[Type]int, 3)
	for _, ev := range events {
		out[ev.Type]++
	}
	return out
}

// Owners maps each derived event id to the id of the window it came from.
func Owners(windows []release.Window) map[string]string {
	owners := make(map[string]string)
	for _, w := range windows {
		owners[ReleaseStartID(w.ID)] = w.ID
		owners[ReleaseEndID(w.ID)] = w.ID
		for _, md := range w.MarketingDeadlines {
			owners[MarketingID(md.ID)] = w.ID
		}
		for _, d := range w.Deliverables {
			owners[DeliverableID(d.ID)] = w.ID
		}
	}
	return owners
}
