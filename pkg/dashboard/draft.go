package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/marquee/pkg/release"
)

// ErrEmptyDraft is returned when a draft has no name.
var ErrEmptyDraft = errors.New("dashboard: release name is required")

// Draft holds the create dialog fields as typed by the user.
type Draft struct {
	ID        string
	Name      string
	Platform  string
	Territory string
	StartDate string
	EndDate   string
	Status    string
	Exclusive bool
	Notes     string
}

// Window validates the draft against the existing collection and converts
// it. A missing id is assigned the next free numeric id.
func (d Draft) Window(existing []release.Window) (release.Window, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return release.Window{}, ErrEmptyDraft
	}
	status, err := release.ParseStatus(d.Status)
	if err != nil {
		return release.Window{}, err
	}
	start, err := release.ParseDate(d.StartDate)
	if err != nil {
		return release.Window{}, fmt.Errorf("dashboard: start date: %w", err)
	}
	end, err := release.ParseDate(d.EndDate)
	if err != nil {
		return release.Window{}, fmt.Errorf("dashboard: end date: %w", err)
	}

	id := strings.TrimSpace(d.ID)
	if id == "" {
		id = NextID(existing)
	}
	if _, taken := release.Find(existing, id); taken {
		return release.Window{}, fmt.Errorf("dashboard: release id %q already exists", id)
	}

	w := release.Window{
		ID:        id,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Platform:  strings.TrimSpace(d.Platform),
		Territory: strings.TrimSpace(d.Territory),
		Status:    status,
		Exclusive: d.Exclusive,
		Notes:     strings.TrimSpace(d.Notes),
	}
	if err := release.Check(w); err != nil {
		return release.Window{}, err
	}
	return w, nil
}

// NextID returns one past the largest numeric window id.
func NextID(existing []release.Window) string {
	max := 0
	for _, w := range existing {
		if n, err := strconv.Atoi(w.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
