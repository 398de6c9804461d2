package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/coordinator"
	"github.com/five82/stash/internal/fault"
	"github.com/five82/stash/internal/prefs"
	"github.com/five82/stash/internal/render"
)

// Controller is the coordinator surface the TUI drives.
type Controller interface {
	Load()
	ToggleFavorite(id string)
	OpenRandom()
	Current() coordinator.Screen
	States(ctx context.Context) <-chan coordinator.Screen
	Signals() <-chan coordinator.Signal
}

var _ Controller = (*coordinator.Coordinator)(nil)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Controller     Controller
	Prefs          prefs.Prefs
	PrefsPath      string
	Sponsored      bool // config default, overridden by a saved preference
	SponsoredEvery int
	LoadingDwell   time.Duration
	LogFile        string
	Logger         zerolog.Logger
}

type toast struct {
	id    int
	text  string
	error bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	ctrl    Controller
	states  <-chan coordinator.Screen
	signals <-chan coordinator.Signal
	log     zerolog.Logger

	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	theme     Theme
	prefs     prefs.Prefs
	prefsPath string

	sponsored bool
	every     int
	dwell     time.Duration
	logFile   string

	width  int
	height int

	screen coordinator.Screen
	rows   []render.Item
	cursor int

	// loading dwell
	dwellUntil time.Time
	dwellSeq   int
	pending    *coordinator.Screen

	detail   *catalog.Item
	showHelp bool
	showLogs bool
	logView  viewport.Model

	toast    *toast
	toastSeq int
}

// New creates the Bubble Tea model. The state subscription lives as long as
// opts.Context.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		log:       opts.Logger.With().Str("component", "ui").Logger(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		theme:     GetTheme(opts.Prefs.Theme),
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		sponsored: opts.Prefs.SponsoredOr(opts.Sponsored),
		every:     opts.SponsoredEvery,
		dwell:     opts.LoadingDwell,
		logFile:   opts.LogFile,
		screen:    coordinator.Screen{Phase: coordinator.PhaseLoading},
		logView:   viewport.New(0, 0),
	}
	if m.ctrl != nil {
		m.states = m.ctrl.States(ctx)
		m.signals = m.ctrl.Signals()
		m.screen = m.ctrl.Current()
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		waitState(m.states),
		waitSignal(m.signals),
	}
	if m.ctrl != nil {
		cmds = append(cmds, loadCmd(m.ctrl))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logView.Width = msg.Width
		m.logView.Height = max(msg.Height-4, 1)
		return m, nil

	case stateMsg:
		cmd := m.applyState(coordinator.Screen(msg), time.Now())
		return m, tea.Batch(cmd, waitState(m.states))

	case dwellDoneMsg:
		if msg.seq == m.dwellSeq && m.pending != nil {
			m.setScreen(*m.pending)
			m.pending = nil
		}
		return m, nil

	case signalMsg:
		cmd := m.handleSignal(msg.signal)
		return m, tea.Batch(cmd, waitSignal(m.signals))

	case dismissToastMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case logTailMsg:
		if msg.err != nil {
			return m, m.showToast("Could not read the log file.", true)
		}
		m.logView.SetContent(joinLines(msg.lines))
		m.logView.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyState installs a Screen, holding non-loading screens back until the
// loading dwell has elapsed so a fast reload does not flash.
func (m *Model) applyState(s coordinator.Screen, now time.Time) tea.Cmd {
	if s.Phase == coordinator.PhaseLoading {
		m.pending = nil
		m.dwellSeq++
		if m.dwell > 0 {
			m.dwellUntil = now.Add(m.dwell)
		}
		m.setScreen(s)
		return nil
	}
	if wait := m.dwellUntil.Sub(now); wait > 0 && m.screen.Phase == coordinator.PhaseLoading {
		m.pending = &s
		return dwellAfter(m.dwellSeq, wait)
	}
	m.pending = nil
	m.setScreen(s)
	return nil
}

func (m *Model) setScreen(s coordinator.Screen) {
	selected := m.selectedID()
	m.screen = s
	m.rebuildRows()
	m.restoreCursor(selected)
}

func (m *Model) rebuildRows() {
	if m.screen.Phase != coordinator.PhaseSuccess {
		m.rows = nil
		return
	}
	m.rows = render.Materialize(m.screen.Items, m.sponsored, m.every)
}

// restoreCursor keeps the selection on the same item when it is still
// present, otherwise clamps to the nearest content row.
func (m *Model) restoreCursor(id string) {
	if id != "" {
		for i, row := range m.rows {
			if !row.IsPlaceholder() && row.Entry.ID == id {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = min(m.cursor, len(m.rows)-1)
	m.cursor = max(m.cursor, 0)
	m.snapCursor(1)
}

// snapCursor moves off a placeholder row in direction dir, falling back to
// the other direction at the list edge.
func (m *Model) snapCursor(dir int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	for _, d := range []int{dir, -dir} {
		for i := m.cursor; i >= 0 && i < len(m.rows); i += d {
			if !m.rows[i].IsPlaceholder() {
				m.cursor = i
				return
			}
		}
	}
}

func (m Model) selectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].IsPlaceholder() {
		return ""
	}
	return m.rows[m.cursor].Entry.ID
}

func (m Model) selectedItem() (catalog.Item, bool) {
	if id := m.selectedID(); id != "" {
		return m.rows[m.cursor].Entry, true
	}
	return catalog.Item{}, false
}

func (m *Model) handleSignal(sig coordinator.Signal) tea.Cmd {
	switch s := sig.(type) {
	case coordinator.SignalNavigate:
		item := s.Item
		m.detail = &item
		return nil
	case coordinator.SignalLoadFailed:
		text := s.Reason.Message()
		if s.Retryable() {
			text += " Press r to retry."
		}
		return m.showToast(text, true)
	case coordinator.SignalToggleFailed:
		return m.showToast(toggleFailedText(s.Reason), true)
	}
	return nil
}

func toggleFailedText(reason fault.Kind) string {
	if reason == fault.KindPersistence {
		return reason.Message()
	}
	return "Could not update favorites. " + reason.Message()
}

func (m *Model) showToast(text string, isError bool) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{id: m.toastSeq, text: text, error: isError}
	return dismissToastAfter(m.toastSeq, toastTTL)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.toast != nil:
			m.toast = nil
		case m.detail != nil:
			m.detail = nil
		case m.showLogs:
			m.showLogs = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Sponsored):
		m.sponsored = !m.sponsored
		m.prefs = m.prefs.WithSponsored(m.sponsored)
		m.savePrefs()
		m.setScreen(m.screen)
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, tailLogCmd(m.logFile)
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.ctrl == nil {
			return m, nil
		}
		return m, loadCmd(m.ctrl)
	}

	if m.showLogs {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	if m.detail != nil {
		if key.Matches(msg, m.keys.Toggle) && m.ctrl != nil {
			return m, toggleCmd(m.ctrl, m.detail.ID)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.snapCursor(-1)
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.snapCursor(1)
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.snapCursor(1)
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.rows)-1, 0)
		m.snapCursor(-1)
	case key.Matches(msg, m.keys.Open):
		if item, ok := m.selectedItem(); ok {
			m.detail = &item
		}
	case key.Matches(msg, m.keys.Toggle):
		if id := m.selectedID(); id != "" && m.ctrl != nil {
			return m, toggleCmd(m.ctrl, id)
		}
	case key.Matches(msg, m.keys.Random):
		if m.ctrl != nil {
			return m, randomCmd(m.ctrl)
		}
	}
	return m, nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Msg("save prefs failed")
	}
}
