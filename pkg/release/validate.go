package release

import (
	"fmt"
	"strings"
)

// Problem describes one ingestion issue found on a window.
type Problem struct {
	WindowID string
	Field    string
	Message  string
}

func (p Problem) String() string {
	if p.WindowID == "" {
		return fmt.Sprintf("%s: %s", p.Field, p.Message)
	}
	return fmt.Sprintf("%s: %s: %s", p.WindowID, p.Field, p.Message)
}

// ValidationError bundles the problems that made a window unacceptable.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return "release: invalid window: " + strings.Join(parts, "; ")
}

// Validate inspects a window the way an ingestion step would. The projector
// does not call it; callers decide whether problems are fatal.
func Validate(w Window) []Problem {
	var problems []Problem
	add := func(field, format string, args ...any) {
		problems = append(problems, Problem{
			WindowID: w.ID,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(w.ID) == "" {
		add("id", "required")
	}
	if strings.TrimSpace(w.Name) == "" {
		add("name", "required")
	}
	if !w.StartDate.Valid() {
		add("startDate", "invalid date %q", string(w.StartDate))
	}
	if !w.EndDate.Valid() {
		add("endDate", "invalid date %q", string(w.EndDate))
	}
	if w.EndDate.Before(w.StartDate) {
		add("endDate", "%s is before start %s", w.EndDate, w.StartDate)
	}
	if w.Status != "" && !w.Status.Valid() {
		add("status", "unknown status %q", string(w.Status))
	}

	seen := make(map[string]struct{}, len(w.MarketingDeadlines))
	for i, md := range w.MarketingDeadlines {
		field := fmt.Sprintf("marketingDeadlines[%d]", i)
		if md.ID == "" {
			add(field+".id", "required")
		} else if _, dup := seen[md.ID]; dup {
			add(field+".id", "duplicate id %q", md.ID)
		}
		seen[md.ID] = struct{}{}
		if !md.Date.Valid() {
			add(field+".date", "invalid date %q", string(md.Date))
		}
	}

	seen = make(map[string]struct{}, len(w.Deliverables))
	for i, d := range w.Deliverables {
		field := fmt.Sprintf("deliverables[%d]", i)
		if d.ID == "" {
			add(field+".id", "required")
		} else if _, dup := seen[d.ID]; dup {
			add(field+".id", "duplicate id %q", d.ID)
		}
		seen[d.ID] = struct{}{}
		if !d.DueDate.Valid() {
			add(field+".dueDate", "invalid date %q", string(d.DueDate))
		}
		if d.ApprovalStatus != "" && !d.ApprovalStatus.Valid() {
			add(field+".approvalStatus", "unknown approval status %q", string(d.ApprovalStatus))
		}
	}
	return problems
}

// Check wraps Validate into an error.
func Check(w Window) error {
	if problems := Validate(w); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateAll validates every window and also flags ids repeated across the
// collection.
func ValidateAll(windows []Window) []Problem {
	var problems []Problem
	seen := make(map[string]struct{}, len(windows))
	for _, w := range windows {
		problems = append(problems, Validate(w)...)
		if w.ID == "" {
			continue
		}
		if _, dup := seen[w.ID]; dup {
			problems = append(problems, Problem{WindowID: w.ID, Field: "id", Message: "duplicate window id"})
		}
		seen[w.ID] = struct{}{}
	}
	return problems
}
