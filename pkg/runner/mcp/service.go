// Package mcp provides the Model Context Protocol server integration for marquee.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/marquee/pkg/app"
	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

// Service adapts app.Service results into transport-friendly shapes.
type Service struct {
	App *app.Service
}

// NewService builds a service wrapper around the shared release service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ReleaseSummary is a compact row for release listings.
type ReleaseSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Platform         string `json:"platform"`
	Territory        string `json:"territory"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Dates            string `json:"dates"`
	Status           string `json:"status"`
	StatusLabel      string `json:"statusLabel"`
	Exclusive        bool   `json:"exclusivity"`
	DeadlineCount    int    `json:"deadlineCount"`
	DeliverableCount int    `json:"deliverableCount"`
}

// ReleaseDTO is the full detail of a window plus display labels.
type ReleaseDTO struct {
	release.Window
	StatusLabel      string   `json:"statusLabel"`
	ExclusivityLabel string   `json:"exclusivityLabel"`
	ApprovalLabels   []string `json:"approvalLabels,omitempty"`
}

// EventDTO is a timeline event with its display date.
type EventDTO struct {
	timeline.Event
	DisplayDate string `json:"displayDate"`
}

// ListReleasesOptions filters release listings.
type ListReleasesOptions struct {
	Status   string
	Platform string
}

// ListEventsOptions filters event listings.
type ListEventsOptions struct {
	From string
	To   string
	Type string
}

// CreateReleaseOptions captures a new window drafted over MCP.
type CreateReleaseOptions struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	Territory string `json:"territory"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Exclusive bool   `json:"exclusivity"`
	Notes     string `json:"notes"`
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errors.New("release service is not configured")
	}
	return nil
}

// ListReleases returns summaries in source order.
func (s *Service) ListReleases(ctx context.Context, opts ListReleasesOptions) ([]ReleaseSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var status release.Status
	if raw := strings.TrimSpace(opts.Status); raw != "" {
		parsed, err := release.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	windows, err := s.App.Releases(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReleaseSummary, 0, len(windows))
	for _, w := range windows {
		if status != "" && w.Status != status {
			continue
		}
		if opts.Platform != "" && !strings.EqualFold(w.Platform, opts.Platform) {
			continue
		}
		out = append(out, summarize(w))
	}
	return out, nil
}

// GetRelease returns one window.
func (s *Service) GetRelease(ctx context.Context, id string) (*ReleaseDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	w, err := s.App.Release(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	return toDTO(w), nil
}

// ListEvents returns the projected timeline, optionally bounded and filtered
// by type.
func (s *Service) ListEvents(ctx context.Context, opts ListEventsOptions) ([]EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	events, err := s.App.Events(ctx)
	if err != nil {
		return nil, err
	}

	from, to := strings.TrimSpace(opts.From), strings.TrimSpace(opts.To)
	if from != "" || to != "" {
		lo, hi := release.Date("0001-01-01"), release.Date("9999-12-31")
		if from != "" {
			if lo, err = release.ParseDate(from); err != nil {
				return nil, fmt.Errorf("invalid from: %w", err)
			}
		}
		if to != "" {
			if hi, err = release.ParseDate(to); err != nil {
				return nil, fmt.Errorf("invalid to: %w", err)
			}
		}
		events = timeline.Between(events, lo, hi)
	}

	typ := timeline.Type(strings.ToLower(strings.TrimSpace(opts.Type)))
	out := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		if typ != "" && ev.Type != typ {
			continue
		}
		out = append(out, toEventDTO(ev))
	}
	return out, nil
}

// EventsOnDay returns the events dated on day (YYYY-MM-DD).
func (s *Service) EventsOnDay(ctx context.Context, day string) ([]EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d, err := release.ParseDate(day)
	if err != nil {
		return nil, err
	}
	events, err := s.App.EventsOn(ctx, d)
	if err != nil {
		return nil, err
	}
	out := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventDTO(ev))
	}
	return out, nil
}

// CreateRelease adds a window for the lifetime of the server process.
func (s *Service) CreateRelease(ctx context.Context, opts CreateReleaseOptions) (*ReleaseDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	w, err := s.App.Create(ctx, dashboard.Draft{
		ID:        opts.ID,
		Name:      opts.Name,
		Platform:  opts.Platform,
		Territory: opts.Territory,
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
		Status:    opts.Status,
		Exclusive: opts.Exclusive,
		Notes:     opts.Notes,
	})
	if err != nil {
		return nil, err
	}
	return toDTO(w), nil
}

func summarize(w release.Window) ReleaseSummary {
	return ReleaseSummary{
		ID:               w.ID,
		Name:             w.Name,
		Platform:         w.Platform,
		Territory:        w.Territory,
		StartDate:        string(w.StartDate),
		EndDate:          string(w.EndDate),
		Dates:            w.StartDate.Short() + " - " + w.EndDate.Short(),
		Status:           string(w.Status),
		StatusLabel:      w.Status.Label(),
		Exclusive:        w.Exclusive,
		DeadlineCount:    len(w.MarketingDeadlines),
		DeliverableCount: len(w.Deliverables),
	}
}

func toDTO(w release.Window) *ReleaseDTO {
	dto := &ReleaseDTO{
		Window:           w,
		StatusLabel:      w.Status.Label(),
		ExclusivityLabel: w.ExclusivityLabel(),
	}
	for _, d := range w.Deliverables {
		dto.ApprovalLabels = append(dto.ApprovalLabels, d.ApprovalStatus.Label())
	}
	return dto
}

func toEventDTO(ev timeline.Event) EventDTO {
	return EventDTO{Event: ev, DisplayDate: ev.Date.Short()}
}
