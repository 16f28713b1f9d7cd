// Package teaui hosts the Bubble Tea program for the release dashboard.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/rs/zerolog"

	"tableflip.dev/marquee/pkg/app"
	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/store"
	"tableflip.dev/marquee/pkg/tui/components/calendar"
	"tableflip.dev/marquee/pkg/tui/components/createform"
	"tableflip.dev/marquee/pkg/tui/components/detail"
	"tableflip.dev/marquee/pkg/tui/components/help"
	"tableflip.dev/marquee/pkg/tui/components/releaselist"
	"tableflip.dev/marquee/pkg/tui/theme"
)

// Options seeds the initial view.
type Options struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	// Today is highlighted in the calendar; empty disables the highlight.
	Today release.Date
	Mode  dashboard.Mode
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx context.Context
	svc *app.Service
	log zerolog.Logger

	board *dashboard.Board
	opts  Options
	theme theme.Theme

	list    *releaselist.Model
	detail  *detail.Model
	form    *createform.Model
	help    *help.Model
	calOpts calendar.Options

	showHelp bool

	year   int
	month  time.Month
	cursor release.Date

	width  int
	height int
	status string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New creates a model backed by svc. The board starts empty; Init loads it.
func New(svc *app.Service, opts Options) *Model {
	if opts.Year == 0 {
		now := time.Now()
		opts.Year, opts.Month = now.Year(), now.Month()
	}
	if opts.Mode == "" {
		opts.Mode = dashboard.ModeList
	}

	log := zerolog.Nop()
	strict := false
	if svc != nil {
		log = svc.Log
		strict = svc.Strict
	}

	th := theme.Default()
	m := &Model{
		ctx:     context.Background(),
		svc:     svc,
		log:     log,
		board:   dashboard.New(dashboard.WithLogger(log), dashboard.WithStrict(strict)),
		opts:    opts,
		theme:   th,
		list:    releaselist.New(th.Table),
		detail:  detail.New(th.Panel),
		form:    createform.New(th.Modal),
		calOpts: calendar.DefaultOptions(),
		year:    opts.Year,
		month:   opts.Month,
	}
	m.cursor = calendar.Clamp(opts.Today, m.year, m.month)
	m.board.SetDisplayMode(opts.Mode)
	return m
}

// Board exposes the dashboard state.
func (m *Model) Board() *dashboard.Board { return m.board }

// Init loads the releases and starts watching the source.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.svc), startWatchCmd(m.ctx, m.svc))
}

type loadedMsg struct {
	windows []release.Window
	err     error
}

// Releases lets a loadedMsg stand in as the board's Loader so the fetch runs
// off the update loop and the board is only touched inside Update.
func (l loadedMsg) Releases(context.Context) ([]release.Window, error) {
	return l.windows, l.err
}

func loadCmd(ctx context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		if svc == nil || svc.Source == nil {
			return loadedMsg{err: app.ErrNoSource}
		}
		windows, err := svc.Source.Releases(ctx)
		return loadedMsg{windows: windows, err: err}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
	case loadedMsg:
		if err := m.board.Load(m.ctx, msg); err != nil {
			m.log.Error().Err(err).Msg("load releases")
			m.status = ""
		} else {
			m.status = fmt.Sprintf("Loaded %d release windows", len(m.board.Releases()))
		}
		m.sync()
	case watchStartedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, app.ErrNotWatchable) {
				m.status = "ERR: watch " + msg.err.Error()
			}
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.log.Debug().Str("event", msg.event.Type.String()).Str("path", msg.event.Path).Msg("source changed")
		m.status = "Source changed, reloading"
		cmds = append(cmds, loadCmd(m.ctx, m.svc))
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case createform.SubmitMsg:
		w, err := m.board.CloseCreateDialog(dashboard.CloseCreate, msg.Draft)
		if err != nil {
			m.form.SetError(err)
			break
		}
		m.status = fmt.Sprintf("Created release %q", w.Name)
		m.sync()
		m.list.SetCursorByID(w.ID)
	case createform.CancelMsg:
		if _, err := m.board.CloseCreateDialog(dashboard.CloseCancel, dashboard.Draft{}); err != nil {
			m.status = "ERR: " + err.Error()
		}
	case tea.KeyPressMsg:
		if m.board.View().CreateOpen {
			cmds = append(cmds, m.form.Update(msg))
			break
		}
		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			case "ctrl+c":
				m.stopWatch()
				return m, tea.Quit
			default:
				cmds = append(cmds, m.help.Update(msg))
			}
			break
		}
		if quit := m.handleKey(msg, &cmds); quit {
			m.stopWatch()
			return m, tea.Quit
		}
	default:
		if m.board.View().CreateOpen {
			cmds = append(cmds, m.form.Update(msg))
		} else if m.showHelp {
			cmds = append(cmds, m.help.Update(msg))
		} else if m.board.View().DetailVisible() {
			cmds = append(cmds, m.detail.Update(msg))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return true
	case "tab":
		m.board.ToggleDisplayMode()
		m.applySizes()
		return false
	case "l":
		m.board.SetDisplayMode(dashboard.ModeList)
		m.applySizes()
		return false
	case "c":
		m.board.SetDisplayMode(dashboard.ModeCalendar)
		m.applySizes()
		return false
	case "r":
		m.status = "Reloading…"
		*cmds = append(*cmds, loadCmd(m.ctx, m.svc))
		return false
	case "?":
		if m.help == nil {
			m.help = help.New(m.theme.Panel)
			m.help.SetSize(m.helpSize())
		}
		m.help.Open(m.board.View().Mode)
		m.showHelp = true
		return false
	case "n":
		m.board.OpenCreateDialog()
		*cmds = append(*cmds, m.form.Reset())
		return false
	case "esc":
		m.board.ClearSelection()
		m.sync()
		return false
	case "pgup", "ctrl+u":
		m.detail.ScrollBy(-m.scrollStep())
		return false
	case "pgdown", "ctrl+d":
		m.detail.ScrollBy(m.scrollStep())
		return false
	}

	if m.board.View().Mode == dashboard.ModeCalendar {
		m.handleCalendarKey(key)
		return false
	}
	m.handleListKey(key)
	return false
}

func (m *Model) handleListKey(key string) {
	switch key {
	case "up", "k":
		m.list.Move(-1)
	case "down", "j":
		m.list.Move(1)
	case "home", "g":
		m.list.Home()
	case "end", "G":
		m.list.End()
	case "enter", "space":
		if w, ok := m.list.Current(); ok {
			m.board.SelectRelease(w.ID)
			m.sync()
		}
	}
}

func (m *Model) handleCalendarKey(key string) {
	switch key {
	case "left", "h":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case "t":
		m.cursor = calendar.Clamp(m.opts.Today, m.year, m.month)
	case "enter", "space":
		m.selectDay()
	}
}

// moveCursor moves the calendar cursor by days. The calendar shows a single
// month, so moves that would leave it are ignored.
func (m *Model) moveCursor(days int) {
	next, ok := calendar.Shift(m.cursor, days)
	if !ok {
		return
	}
	if y, mo, _, ok := next.Civil(); !ok || y != m.year || mo != m.month {
		return
	}
	m.cursor = next
}

// selectDay selects the release owning the first event on the cursor day.
func (m *Model) selectDay() {
	y, mo, d, ok := m.cursor.Civil()
	if !ok {
		return
	}
	events := m.board.EventsOn(y, mo, d)
	if len(events) == 0 {
		m.status = "No events on " + m.cursor.Short()
		return
	}
	id, ok := m.board.OwnerOf(events[0].ID)
	if !ok {
		return
	}
	m.board.SelectRelease(id)
	m.sync()
}

func (m *Model) scrollStep() int {
	return max(m.height/2, 1)
}

// sync pushes board state into the components.
func (m *Model) sync() {
	v := m.board.View()
	m.list.SetReleases(m.board.Releases())
	m.list.SetSelected(v.SelectedID)
	m.list.SetCollapsed(v.ListCollapsed())
	if w, ok := m.board.Selected(); ok {
		m.detail.SetWindow(w)
	} else {
		m.detail.Clear()
	}
	m.applySizes()
}

// Run launches the interactive TUI program.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m := New(svc, opts)
	m.ctx = ctx
	defer m.stopWatch()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
