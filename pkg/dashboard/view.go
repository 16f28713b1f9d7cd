package dashboard

import (
	"fmt"
	"strings"

	"tableflip.dev/marquee/pkg/release"
)

// Mode selects how the collection is displayed.
type Mode string

const (
	// ModeList shows the tabular release list.
	ModeList Mode = "list"
	// ModeCalendar shows the month grid.
	ModeCalendar Mode = "calendar"
)

// ParseMode converts raw input into a Mode.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeList:
		return ModeList, nil
	case ModeCalendar:
		return ModeCalendar, nil
	default:
		return ModeList, fmt.Errorf("dashboard: unknown mode %q", raw)
	}
}

// View is the set of independent UI flags. Any combination is valid.
type View struct {
	Mode       Mode
	SelectedID string
	CreateOpen bool
}

// DetailVisible reports whether the detail panel is shown.
func (v View) DetailVisible() bool { return v.SelectedID != "" }

// ListCollapsed reports whether the list shrinks to a narrow column to make
// room for the detail panel.
func (v View) ListCollapsed() bool { return v.Mode == ModeList && v.DetailVisible() }

// View returns a snapshot of the view flags.
func (b *Board) View() View { return b.view }

// SelectRelease shows the detail panel for the window with id.
func (b *Board) SelectRelease(id string) {
	b.view.SelectedID = id
}

// ClearSelection hides the detail panel. It is a no-op without a selection.
func (b *Board) ClearSelection() {
	b.view.SelectedID = ""
}

// Selected resolves the selection against the current collection. A
// selection whose window no longer exists resolves to nothing.
func (b *Board) Selected() (release.Window, bool) {
	if b.view.SelectedID == "" {
		return release.Window{}, false
	}
	return b.Release(b.view.SelectedID)
}

// SetDisplayMode switches between list and calendar. The selection is kept.
// Any mode other than ModeCalendar, including one ParseMode would reject,
// selects the list.
func (b *Board) SetDisplayMode(m Mode) {
	if m != ModeCalendar {
		m = ModeList
	}
	b.view.Mode = m
}

// ToggleDisplayMode flips between list and calendar.
func (b *Board) ToggleDisplayMode() {
	if b.view.Mode == ModeCalendar {
		b.SetDisplayMode(ModeList)
		return
	}
	b.SetDisplayMode(ModeCalendar)
}

// OpenCreateDialog shows the create dialog.
func (b *Board) OpenCreateDialog() {
	b.view.CreateOpen = true
}

// CloseAction says which dialog button closed the create dialog.
type CloseAction int

const (
	// CloseCancel discards the draft.
	CloseCancel CloseAction = iota
	// CloseCreate commits the draft.
	CloseCreate
)

// CloseCreateDialog closes the create dialog. Cancel discards the draft and
// leaves the collection untouched. Create validates the draft, appends it and
// re-projects the timeline; if the draft is rejected the dialog stays open and
// the error is returned. Committed windows live in memory only.
func (b *Board) CloseCreateDialog(action CloseAction, draft Draft) (release.Window, error) {
	if action != CloseCreate {
		b.view.CreateOpen = false
		return release.Window{}, nil
	}
	w, err := draft.Window(b.releases)
	if err != nil {
		return release.Window{}, err
	}
	next := append(release.CloneAll(b.releases), w)
	if err := b.Replace(next); err != nil {
		return release.Window{}, err
	}
	b.view.CreateOpen = false
	b.log.Info().Str("window", w.ID).Str("name", w.Name).Msg("release created")
	return w.Clone(), nil
}
