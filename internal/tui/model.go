// Package tui is the terminal cockpit. It drives the same navigator as
// the live web surface; sequencer timers arrive as bubbletea messages so
// every mutation happens on the program's update loop.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/recera/mission-control/internal/clock"
	"github.com/recera/mission-control/internal/views"
	"github.com/recera/mission-control/pkg/cockpit"
	"github.com/recera/mission-control/pkg/zoom"
)

// taskMsg carries a timer callback onto the update loop
type taskMsg struct{ run func() }

type options struct {
	clock  clock.Clock
	timing zoom.Timing
}

// Option configures a Model
type Option func(*options)

// WithClock sets the clock transitions are timed on
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTiming sets the transition timing
func WithTiming(t zoom.Timing) Option {
	return func(o *options) { o.timing = t }
}

// Model represents the TUI application state
type Model struct {
	// Window dimensions
	width  int
	height int

	provider cockpit.Provider
	nav      *zoom.Navigator
	tasks    chan func()

	snap     zoom.Snapshot
	screen   views.Screen
	selected int

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	status   string
	quitting bool
}

// New creates a model at the root of the cockpit
func New(p cockpit.Provider, opts ...Option) Model {
	o := options{clock: clock.Real(), timing: zoom.DefaultTiming()}
	for _, opt := range opts {
		opt(&o)
	}

	tasks := make(chan func(), 64)
	nav := zoom.NewNavigator(
		zoom.WithClock(o.clock),
		zoom.WithTiming(o.timing),
		zoom.WithPost(func(f func()) { tasks <- f }),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)

	m := Model{
		provider: p,
		nav:      nav,
		tasks:    tasks,
		keys:     DefaultKeyMap,
		help:     help.New(),
		spinner:  s,
	}
	m.refresh()
	return m
}

// Navigator returns the navigator the model drives
func (m Model) Navigator() *zoom.Navigator {
	return m.nav
}

// Snapshot returns the frame last rendered
func (m Model) Snapshot() zoom.Snapshot {
	return m.snap
}

// Screen returns the screen last resolved
func (m Model) Screen() views.Screen {
	return m.screen
}

// Selected returns the index of the highlighted target
func (m Model) Selected() int {
	return m.selected
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForTask())
}

// waitForTask delivers the next timer callback as a message
func (m Model) waitForTask() tea.Cmd {
	return func() tea.Msg {
		return taskMsg{run: <-m.tasks}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case taskMsg:
		msg.run()
		m.refresh()
		return m, m.waitForTask()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.nav.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.screen.Targets)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.selected < len(m.screen.Targets) {
			m.apply(m.screen.Targets[m.selected].Apply(m.nav.Controller))
		}

	case key.Matches(msg, m.keys.Back):
		m.apply(m.nav.ExitLevel())

	case key.Matches(msg, m.keys.Jump):
		index := int(msg.Runes[0] - '1')
		m.apply(m.nav.JumpToStackIndex(index))
	}
	return m, nil
}

func (m *Model) apply(res zoom.Result) {
	if !res.Applied {
		m.status = fmt.Sprintf("ignored: %s", res.Reason)
		return
	}
	m.status = ""
	m.selected = 0
	m.refresh()
}

// refresh re-reads the navigator and resolves the screen
func (m *Model) refresh() {
	m.snap = m.nav.Snapshot()
	m.screen = views.Resolve(m.snap.State, m.provider)
	if m.selected >= len(m.screen.Targets) {
		m.selected = 0
	}
}

// Run starts the terminal cockpit and blocks until the user quits
func Run(p cockpit.Provider, opts ...Option) error {
	m := New(p, opts...)
	defer m.nav.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
