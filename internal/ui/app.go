package ui

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/TimelordUK/setlist/internal/clock"
	"github.com/TimelordUK/setlist/internal/config"
	"github.com/TimelordUK/setlist/internal/listing"
	"github.com/TimelordUK/setlist/internal/render"
	"github.com/TimelordUK/setlist/internal/view"
	"github.com/TimelordUK/setlist/pkg/timefmt"
)

// State is the current step of the boot and scroll flow
type State int

const (
	StateUpdateNTP State = iota
	StateServerConnect
	StateSelectFile
	StateScrollFile
	StateError
)

func (s State) String() string {
	switch s {
	case StateUpdateNTP:
		return "update-ntp"
	case StateServerConnect:
		return "server-connect"
	case StateSelectFile:
		return "select-file"
	case StateScrollFile:
		return "scroll-file"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Syncer corrects the RTC from a time server
type Syncer interface {
	Sync(ctx context.Context, rtc clock.RTC) (clock.Result, error)
}

// ModelOptions configures a new Model
type ModelOptions struct {
	FS       fs.FS
	Config   *config.Config
	RTC      clock.RTC
	Syncer   Syncer
	File     string // open this setlist straight after boot
	SkipSync bool
	Logger   zerolog.Logger
}

type clockTickMsg time.Time

type syncDoneMsg struct {
	result clock.Result
	err    error
}

// Model is the main application model
type Model struct {
	fsys   fs.FS
	cfg    *config.Config
	rtc    clock.RTC
	syncer Syncer
	logger zerolog.Logger

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	screen  *view.Screen

	state    State
	file     string
	width    int
	height   int
	shownAt  time.Time
	clockStr string
	toast    string

	// File select state
	files       []string
	cursor      int
	listing     string
	showListing bool
	listErr     error

	pane *Pane
}

// NewModel creates the application model
func NewModel(opts ModelOptions) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Display.Accent))

	m := &Model{
		fsys:    opts.FS,
		cfg:     cfg,
		rtc:     opts.RTC,
		syncer:  opts.Syncer,
		logger:  opts.Logger,
		keys:    NewKeyMap(cfg.Keybindings),
		help:    help.New(),
		spinner: sp,
		screen:  view.NewScreen(cfg.Display),
		file:    opts.File,
	}
	m.refreshClock(m.rtc.Now())

	if opts.SkipSync || !cfg.Clock.SyncOnBoot || m.syncer == nil {
		m.afterSync()
	} else {
		m.enter(StateUpdateNTP)
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if ev, ok := m.keys.Resolve(msg); ok {
			return m, m.handleEvent(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clockTickMsg:
		m.refreshClock(m.rtc.Now())
		return m, m.tick()

	case syncDoneMsg:
		if msg.err != nil {
			m.toast = "time sync failed"
		} else {
			m.toast = "synced " + timefmt.Offset(msg.result.Offset)
			m.refreshClock(m.rtc.Now())
		}
		m.afterSync()
		return m, nil

	case spinner.TickMsg:
		if m.state != StateServerConnect {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleEvent(ev Event) tea.Cmd {
	m.logger.Debug().Str("state", m.state.String()).Int("button", int(ev.Button)).Int("kind", int(ev.Kind)).Msg("button")

	switch m.state {
	case StateUpdateNTP:
		return m.handleUpdateNTP(ev)
	case StateSelectFile:
		m.handleSelectFile(ev)
	case StateScrollFile:
		m.handleScrollFile(ev)
	case StateError:
		// Any button goes back to the picker, which lists the card again
		m.toSelect()
	}
	// Buttons are ignored while connecting
	return nil
}

func (m *Model) handleUpdateNTP(ev Event) tea.Cmd {
	if ev.Kind != Press {
		return nil
	}
	if ev.Button == ButtonLeft {
		m.enter(StateServerConnect)
		return tea.Batch(m.spinner.Tick, m.syncCmd())
	}
	m.afterSync()
	return nil
}

func (m *Model) handleSelectFile(ev Event) {
	if m.showListing {
		m.showListing = false
		return
	}

	switch ev {
	case Event{ButtonLeft, Press}:
		if m.cursor > 0 {
			m.cursor--
		}
	case Event{ButtonRight, Press}:
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case Event{ButtonRight, LongPress}:
		if len(m.files) > 0 {
			m.openFile(m.files[m.cursor])
		}
	case Event{ButtonLeft, LongPress}:
		m.showDirectory()
	}
}

func (m *Model) handleScrollFile(ev Event) {
	switch ev {
	case Event{ButtonLeft, Press}:
		m.pane.Backward()
	case Event{ButtonRight, Press}:
		m.pane.Forward()
	case Event{ButtonLeft, LongPress}:
		m.toSelect()
	case Event{ButtonRight, LongPress}:
		m.pane.Rewind()
	}
}

// afterSync leaves the boot states: straight to the configured setlist when
// there is one, otherwise to the file picker.
func (m *Model) afterSync() {
	if m.file != "" {
		m.openFile(m.file)
		m.file = ""
		return
	}
	m.toSelect()
}

func (m *Model) enter(s State) {
	if s != m.state {
		m.logger.Info().Str("from", m.state.String()).Str("to", s.String()).Msg("state change")
	}
	m.state = s
}

func (m *Model) openFile(name string) {
	m.pane = OpenPane(m.fsys, name, m.cfg.Storage.MaxLines, m.logger)
	if w := m.pane.Warning(); w != "" {
		m.toast = w
	} else {
		m.toast = ""
	}
	m.enter(StateScrollFile)
}

// toSelect lists the card and shows the picker, or the error state when the
// card cannot be read.
func (m *Model) toSelect() {
	m.showListing = false
	files, err := listing.Setlists(m.fsys, "/", m.cfg.Storage.SetlistPattern)
	if err != nil {
		m.logger.Error().Err(err).Msg("cannot list setlists")
		m.listErr = err
		m.enter(StateError)
		return
	}

	m.files = files
	m.listErr = nil
	if m.cursor >= len(files) {
		m.cursor = 0
	}
	m.enter(StateSelectFile)
}

func (m *Model) showDirectory() {
	text, err := listing.ListDirectory(m.fsys, "/", 0)
	if err != nil {
		text = err.Error()
	}
	m.listing = text
	m.showListing = true
}

func (m *Model) syncCmd() tea.Cmd {
	syncer, rtc := m.syncer, m.rtc
	timeout := m.cfg.Clock.SyncTimeout.Duration + time.Second
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := syncer.Sync(ctx, rtc)
		return syncDoneMsg{result: res, err: err}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Clock.RefreshPeriod.Duration, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// refreshClock updates the header only when the minute changes
func (m *Model) refreshClock(now time.Time) {
	if m.clockStr != "" && timefmt.SameMinute(now, m.shownAt) {
		return
	}
	m.shownAt = now
	m.clockStr = timefmt.Clock(now)
}

// View implements tea.Model
func (m *Model) View() string {
	var body, left, right, status string

	switch m.state {
	case StateUpdateNTP:
		body = m.screen.Centered("The time is", m.clockStr, "", "Update time using wifi?")
		left, right = "YES", "NO"

	case StateServerConnect:
		body = m.screen.Centered(m.spinner.View() + " syncing with " + m.cfg.Clock.NTPServer)

	case StateSelectFile:
		body = m.selectBody()
		left, right = "◀ PREV", "NEXT ▶"
		status = fmt.Sprintf(" %d setlists", len(m.files))

	case StateScrollFile:
		body = m.pane.Render(m.screen)
		left = "◀ PREV"
		if !m.pane.AtEnd() {
			right = "NEXT ▶"
		}
		status = m.pane.Status()

	case StateError:
		body = m.screen.Error(m.listErr.Error())
		right = "RETRY"
	}

	var builder strings.Builder
	builder.WriteString(m.screen.Frame(m.clockStr, m.toast, body, m.screen.Footer(left, right)))
	builder.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	builder.WriteString(statusStyle.Render(status))
	builder.WriteString("\n")
	builder.WriteString(m.help.View(m.keys))

	return builder.String()
}

func (m *Model) selectBody() string {
	if m.showListing {
		return m.screen.Body(m.listing)
	}
	if len(m.files) == 0 {
		return m.screen.Centered("No setlists found")
	}

	// Keep the cursor inside a window of BodyRows names
	start := max(0, m.cursor-render.BodyRows/2)
	end := min(len(m.files), start+render.BodyRows)
	start = max(0, end-render.BodyRows)

	var rows []string
	for i := start; i < end; i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		rows = append(rows, prefix+m.files[i])
	}
	return m.screen.Body(strings.Join(rows, "\n"))
}

// State returns the current flow state
func (m *Model) State() State {
	return m.state
}

// Pane returns the open setlist pane, if any
func (m *Model) Pane() *Pane {
	return m.pane
}

// Close cleans up resources
func (m *Model) Close() error {
	return nil
}
