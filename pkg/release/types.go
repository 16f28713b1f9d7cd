// Package release defines the release window model shared by the projector,
// the dashboard state and every rendering surface.
package release

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a release window.
type Status string

const (
	// StatusScheduled is a window that has not opened yet.
	StatusScheduled Status = "scheduled"
	// StatusActive is a window that is currently open.
	StatusActive Status = "active"
	// StatusCompleted is a window that has closed.
	StatusCompleted Status = "completed"
	// StatusCancelled is a window that will not happen.
	StatusCancelled Status = "cancelled"
)

// AllStatuses returns the supported window statuses in display order.
func AllStatuses() []Status {
	return []Status{
		StatusScheduled,
		StatusActive,
		StatusCompleted,
		StatusCancelled,
	}
}

// ParseStatus converts raw input into a Status. Empty input defaults to
// scheduled.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return StatusScheduled, nil
	}
	for _, candidate := range AllStatuses() {
		if candidate == s {
			return candidate, nil
		}
	}
	return StatusScheduled, fmt.Errorf("release: unknown status %q", raw)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, candidate := range AllStatuses() {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label renders the status for display, e.g. "Scheduled".
func (s Status) Label() string {
	return capitalize(string(s))
}

// ApprovalStatus tracks where a deliverable sits in the review cycle.
type ApprovalStatus string

const (
	ApprovalPending      ApprovalStatus = "pending"
	ApprovalApproved     ApprovalStatus = "approved"
	ApprovalRejected     ApprovalStatus = "rejected"
	ApprovalNotSubmitted ApprovalStatus = "not_submitted"
)

// AllApprovalStatuses returns every approval status.
func AllApprovalStatuses() []ApprovalStatus {
	return []ApprovalStatus{
		ApprovalPending,
		ApprovalApproved,
		ApprovalRejected,
		ApprovalNotSubmitted,
	}
}

// ParseApprovalStatus converts raw input into an ApprovalStatus. Empty input
// means nothing was submitted yet.
func ParseApprovalStatus(raw string) (ApprovalStatus, error) {
	a := ApprovalStatus(strings.ToLower(strings.TrimSpace(raw)))
	a = ApprovalStatus(strings.ReplaceAll(string(a), " ", "_"))
	if a == "" {
		return ApprovalNotSubmitted, nil
	}
	for _, candidate := range AllApprovalStatuses() {
		if candidate == a {
			return candidate, nil
		}
	}
	return ApprovalNotSubmitted, fmt.Errorf("release: unknown approval status %q", raw)
}

// Valid reports whether a is one of the known approval statuses.
func (a ApprovalStatus) Valid() bool {
	for _, candidate := range AllApprovalStatuses() {
		if candidate == a {
			return true
		}
	}
	return false
}

// Label renders the approval status for display, e.g. "Not submitted".
func (a ApprovalStatus) Label() string {
	return capitalize(strings.Replace(string(a), "_", " ", 1))
}

// MarketingDeadline is a dated promotional milestone owned by a Window.
type MarketingDeadline struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Date        Date   `json:"date" yaml:"date"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Responsible string `json:"responsible" yaml:"responsible"`
}

// Deliverable is a content or asset submission owned by a Window.
type Deliverable struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	DueDate        Date           `json:"dueDate" yaml:"dueDate"`
	Submitted      bool           `json:"submitted" yaml:"submitted"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus" yaml:"approvalStatus"`
}

// Window is a scheduled distribution period for a title on a platform and
// territory combination.
type Window struct {
	ID                 string              `json:"id" yaml:"id"`
	Name               string              `json:"name" yaml:"name"`
	StartDate          Date                `json:"startDate" yaml:"startDate"`
	EndDate            Date                `json:"endDate" yaml:"endDate"`
	Platform           string              `json:"platform" yaml:"platform"`
	Territory          string              `json:"territory" yaml:"territory"`
	Status             Status              `json:"status" yaml:"status"`
	Exclusive          bool                `json:"exclusivity" yaml:"exclusivity"`
	MarketingDeadlines []MarketingDeadline `json:"marketingDeadlines" yaml:"marketingDeadlines"`
	Deliverables       []Deliverable       `json:"deliverables" yaml:"deliverables"`
	Notes              string              `json:"notes" yaml:"notes"`
}

// Clone returns a deep copy so callers can hand windows out without sharing
// the child slices.
func (w Window) Clone() Window {
	cp := w
	if w.MarketingDeadlines != nil {
		cp.MarketingDeadlines = append([]MarketingDeadline(nil), w.MarketingDeadlines...)
	}
	if w.Deliverables != nil {
		cp.Deliverables = append([]Deliverable(nil), w.Deliverables...)
	}
	return cp
}

// CloneAll deep copies a collection.
func CloneAll(windows []Window) []Window {
	if windows == nil {
		return nil
	}
	out := make([]Window, len(windows))
	for i, w := range windows {
		out[i] = w.Clone()
	}
	return out
}

// Find returns the window with the given id.
func Find(windows []Window, id string) (Window, bool) {
	for _, w := range windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

// ExclusivityLabel renders the exclusivity flag for display.
func (w Window) ExclusivityLabel() string {
	if w.Exclusive {
		return "Exclusive"
	}
	return "Non-exclusive"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
