package dashboard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

type fakeLoader struct {
	windows []release.Window
	err     error
}

func (f fakeLoader) Releases(context.Context) ([]release.Window, error) {
	return f.windows, f.err
}

func sample() []release.Window {
	return []release.Window{
		{
			ID:        "1",
			Name:      "Theatrical - Domestic",
			StartDate: "2025-11-15",
			EndDate:   "2026-02-15",
			Platform:  "Theatrical",
			Territory: "US & Canada",
			Status:    release.StatusScheduled,
			Exclusive: true,
			MarketingDeadlines: []release.MarketingDeadline{
				{ID: "m1", Name: "Trailer Launch", Date: "2025-10-15", Completed: true, Responsible: "Marketing Team"},
			},
			Deliverables: []release.Deliverable{
				{ID: "d1", Name: "DCP Package", DueDate: "2025-10-30", ApprovalStatus: release.ApprovalPending},
			},
		},
		{
			ID:        "2",
			Name:      "Streaming - Netflix",
			StartDate: "2026-03-01",
			EndDate:   "2026-08-31",
			Platform:  "SVOD",
			Territory: "Worldwide",
			Status:    release.StatusScheduled,
		},
	}
}

func loaded(t *testing.T) *Board {
	t.Helper()
	b := New()
	if err := b.Load(context.Background(), fakeLoader{windows: sample()}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return b
}

func TestNewBoardDefaults(t *testing.T) {
	b := New()
	v := b.View()
	if v.Mode != ModeList || v.SelectedID != "" || v.CreateOpen {
		t.Fatalf("default view = %+v", v)
	}
	if b.LoadState() != LoadIdle {
		t.Fatalf("LoadState() = %v, want idle", b.LoadState())
	}
}

func TestLoadProjectsTimeline(t *testing.T) {
	b := loaded(t)
	if b.LoadState() != Loaded {
		t.Fatalf("LoadState() = %v", b.LoadState())
	}
	if got := len(b.Events()); got != 6 {
		t.Fatalf("len(Events()) = %d, want 6", got)
	}
	if got := b.EventsOn(2025, 10, 30); len(got) != 1 || got[0].ID != "deliverable-d1" {
		t.Fatalf("EventsOn(2025-10-30) = %+v", got)
	}
}

func TestSelectCalendarClearScenario(t *testing.T) {
	b := loaded(t)

	b.SelectRelease("1")
	if v := b.View(); v.SelectedID != "1" || v.Mode != ModeList || v.CreateOpen {
		t.Fatalf("after select view = %+v", v)
	}
	if !b.View().ListCollapsed() {
		t.Fatalf("list should collapse while a release is selected")
	}

	b.SetDisplayMode(ModeCalendar)
	if v := b.View(); v.SelectedID != "1" || v.Mode != ModeCalendar {
		t.Fatalf("after calendar view = %+v", v)
	}
	w, ok := b.Selected()
	if !ok || w.Name != "Theatrical - Domestic" {
		t.Fatalf("Selected() = %+v, %v", w, ok)
	}

	b.ClearSelection()
	if v := b.View(); v.SelectedID != "" || v.Mode != ModeCalendar {
		t.Fatalf("after clear view = %+v", v)
	}
	if b.View().DetailVisible() {
		t.Fatalf("detail should be hidden")
	}

	// Clearing again is a no-op.
	b.ClearSelection()
	if v := b.View(); v.SelectedID != "" || v.Mode != ModeCalendar {
		t.Fatalf("second clear view = %+v", v)
	}
}

func TestSetDisplayModeIdempotent(t *testing.T) {
	b := New()
	b.SetDisplayMode(ModeCalendar)
	b.SetDisplayMode(ModeCalendar)
	if b.View().Mode != ModeCalendar {
		t.Fatalf("mode = %v", b.View().Mode)
	}
	b.ToggleDisplayMode()
	if b.View().Mode != ModeList {
		t.Fatalf("toggle mode = %v", b.View().Mode)
	}
}

func TestSelectionIsResolvedLazily(t *testing.T) {
	b := loaded(t)
	b.SelectRelease("2")
	if err := b.Replace(sample()[:1]); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if b.View().SelectedID != "2" {
		t.Fatalf("selection id should survive a reload")
	}
	if _, ok := b.Selected(); ok {
		t.Fatalf("Selected() should not resolve a window that is gone")
	}
}

func TestCreateDialogCancelChangesNothing(t *testing.T) {
	b := loaded(t)
	beforeReleases := b.Releases()
	beforeEvents := b.Events()

	b.OpenCreateDialog()
	if !b.View().CreateOpen {
		t.Fatalf("dialog should be open")
	}
	if _, err := b.CloseCreateDialog(CloseCancel, Draft{Name: "ignored"}); err != nil {
		t.Fatalf("cancel error = %v", err)
	}
	if b.View().CreateOpen {
		t.Fatalf("dialog should be closed")
	}
	if !reflect.DeepEqual(beforeReleases, b.Releases()) {
		t.Fatalf("releases changed on cancel")
	}
	if !reflect.DeepEqual(beforeEvents, b.Events()) {
		t.Fatalf("events changed on cancel")
	}
}

func TestCreateDialogCommitAppendsAndReprojects(t *testing.T) {
	b := loaded(t)
	b.OpenCreateDialog()

	w, err := b.CloseCreateDialog(CloseCreate, Draft{
		Name:      "PVOD - Apple",
		Platform:  "PVOD",
		Territory: "US",
		StartDate: "2026-01-10",
		EndDate:   "2026-02-10",
	})
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if w.ID != "3" || w.Status != release.StatusScheduled {
		t.Fatalf("created window = %+v", w)
	}
	if b.View().CreateOpen {
		t.Fatalf("dialog should close after create")
	}
	if got := len(b.Releases()); got != 3 {
		t.Fatalf("len(Releases()) = %d, want 3", got)
	}
	if got := b.EventsOn(2026, 1, 10); len(got) != 1 || got[0].ID != timeline.ReleaseStartID("3") {
		t.Fatalf("EventsOn(2026-01-10) = %+v", got)
	}
}

func TestCreateDialogRejectsBadDraft(t *testing.T) {
	b := loaded(t)
	b.OpenCreateDialog()

	_, err := b.CloseCreateDialog(CloseCreate, Draft{StartDate: "2026-01-01", EndDate: "2026-01-02"})
	if !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("err = %v, want ErrEmptyDraft", err)
	}
	if _, err := b.CloseCreateDialog(CloseCreate, Draft{Name: "x", StartDate: "soon", EndDate: "2026-01-02"}); err == nil {
		t.Fatalf("expected a date error")
	}
	if _, err := b.CloseCreateDialog(CloseCreate, Draft{ID: "1", Name: "x", StartDate: "2026-01-01", EndDate: "2026-01-02"}); err == nil {
		t.Fatalf("expected a duplicate id error")
	}
	if !b.View().CreateOpen {
		t.Fatalf("dialog should stay open after a rejected draft")
	}
	if got := len(b.Releases()); got != 2 {
		t.Fatalf("len(Releases()) = %d, want 2", got)
	}
}

func TestLoadFailureKeepsPriorData(t *testing.T) {
	b := loaded(t)
	boom := errors.New("boom")
	err := b.Load(context.Background(), fakeLoader{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want boom", err)
	}
	if b.LoadState() != LoadFailed || !errors.Is(b.LoadErr(), boom) {
		t.Fatalf("state = %v err = %v", b.LoadState(), b.LoadErr())
	}
	if got := len(b.Releases()); got != 2 {
		t.Fatalf("prior releases dropped: %d", got)
	}
}

func TestLoadEmptyIsNotFailure(t *testing.T) {
	b := New()
	if err := b.Load(context.Background(), fakeLoader{}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.LoadState() != Loaded || len(b.Events()) != 0 {
		t.Fatalf("state = %v events = %d", b.LoadState(), len(b.Events()))
	}
	if err := New().Load(context.Background(), nil); err == nil {
		t.Fatalf("nil loader should fail")
	}
}

func TestStrictRejectsProblems(t *testing.T) {
	bad := sample()
	bad[1].Name = ""

	lenient := New()
	if err := lenient.Replace(bad); err != nil {
		t.Fatalf("lenient Replace() error = %v", err)
	}
	if len(lenient.Problems()) != 1 {
		t.Fatalf("Problems() = %+v", lenient.Problems())
	}

	strict := New(WithStrict(true))
	err := strict.Load(context.Background(), fakeLoader{windows: bad})
	var verr *release.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("strict Load() error = %v", err)
	}
	if strict.LoadState() != LoadFailed {
		t.Fatalf("strict state = %v", strict.LoadState())
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	in := sample()
	b := New()
	if err := b.Replace(in); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	in[0].Name = "mutated"
	in[0].Deliverables[0].Name = "mutated"
	w, _ := b.Release("1")
	if w.Name == "mutated" || w.Deliverables[0].Name == "mutated" {
		t.Fatalf("board shares memory with caller")
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != "1" {
		t.Fatalf("NextID(nil) = %q", got)
	}
	got := NextID([]release.Window{{ID: "4"}, {ID: "abc"}, {ID: "10"}})
	if got != "11" {
		t.Fatalf("NextID() = %q, want 11", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Calendar"); err != nil || m != ModeCalendar {
		t.Fatalf("ParseMode(Calendar) = %v, %v", m, err)
	}
	if _, err := ParseMode("grid"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestOwnerOf(t *testing.T) {
	b := New()
	if err := b.Replace(sample()); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	for _, ev := range b.Events() {
		id, ok := b.OwnerOf(ev.ID)
		if !ok {
			t.Fatalf("OwnerOf(%s) not found", ev.ID)
		}
		if _, ok := b.Release(id); !ok {
			t.Fatalf("owner %s of %s is not loaded", id, ev.ID)
		}
	}
	if _, ok := b.OwnerOf("nope"); ok {
		t.Fatalf("OwnerOf(nope) should miss")
	}
}

func TestSetDisplayModeUnknownSelectsList(t *testing.T) {
	b := New()
	b.SetDisplayMode(ModeCalendar)
	b.SetDisplayMode(Mode("agenda"))
	if got := b.View().Mode; got != ModeList {
		t.Fatalf("unknown mode should select the list, got %q", got)
	}
}
