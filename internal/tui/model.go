package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/player"
	"github.com/tessro/spin/internal/tui/components"
)

const (
	volumeStep  = 0.05
	refreshRate = time.Second
	minListRows = 3
)

// Model is the main TUI model
type Model struct {
	controller *player.Controller
	display    *Display
	tracks     []core.Track
	name       string

	keys keyMap
	help help.Model

	// Components
	nowPlaying *components.NowPlaying
	listView   *components.Playlist

	width    int
	height   int
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(c *player.Controller, d *Display) Model {
	return Model{
		controller: c,
		display:    d,
		tracks:     c.Playlist().Tracks(),
		name:       c.Playlist().Name(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		nowPlaying: components.NewNowPlaying(),
		listView:   components.NewPlaylist(),
	}
}

// Messages
type tickMsg time.Time
type eventMsg core.Event

// EventSink forwards engine events into the program's update loop.
func EventSink(p *tea.Program) core.EventSink {
	return func(ev core.Event) {
		p.Send(eventMsg(ev))
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.controller.HandleEvent(core.Event(msg))
		return m, nil

	case tickMsg:
		// Redraw so expired status messages disappear.
		return m, tick()
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Toggle):
		m.controller.TogglePlayPause()

	case key.Matches(msg, m.keys.Next):
		m.controller.Next()

	case key.Matches(msg, m.keys.Previous):
		m.controller.Previous()

	case key.Matches(msg, m.keys.Shuffle):
		m.controller.ToggleShuffle()

	case key.Matches(msg, m.keys.Repeat):
		m.controller.CycleRepeat()

	case key.Matches(msg, m.keys.VolUp):
		m.controller.SetVolume(m.controller.State().Volume + volumeStep)

	case key.Matches(msg, m.keys.VolDown):
		m.controller.SetVolume(m.controller.State().Volume - volumeStep)

	case key.Matches(msg, m.keys.Seek):
		tenths := float64(msg.String()[0] - '0')
		m.controller.Seek(tenths, 10)

	case key.Matches(msg, m.keys.Up):
		m.listView.CursorUp()

	case key.Matches(msg, m.keys.Down):
		m.listView.CursorDown(len(m.tracks))

	case key.Matches(msg, m.keys.Select):
		m.controller.Select(m.listView.Cursor())
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	bar := m.BarRegion()
	if bar.Contains(msg.X, msg.Y) {
		m.controller.Seek(float64(msg.X-bar.X), float64(bar.Width))
	}
	return m, nil
}

// BarRegion returns the screen cells covered by the progress bar.
func (m Model) BarRegion() components.Region {
	return m.nowPlaying.BarRegion(0, m.panelWidth())
}

func (m Model) panelWidth() int {
	// Border takes one column on each side
	return max(m.width-2, 0)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	nowPlaying := m.nowPlaying.Render(m.display.View(), m.panelWidth(), false)

	helpView := m.help.View(m.keys)

	// Borders of both panels plus the help lines
	listHeight := m.height - (components.NowPlayingHeight + 2) - 2 - lipgloss.Height(helpView)
	listHeight = max(listHeight, minListRows)

	list := m.listView.Render(m.name, m.tracks, m.display.Active(), m.panelWidth(), listHeight, true)

	statusBar := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(helpView)

	return lipgloss.JoinVertical(lipgloss.Left, nowPlaying, list, statusBar)
}

// EventSource delivers engine events to a sink.
type EventSource interface {
	Subscribe(sink core.EventSink)
}

// Run starts the TUI application. The controller is initialized once the
// program is ready to receive engine events.
func Run(c *player.Controller, d *Display, events EventSource) error {
	model := NewModel(c, d)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	events.Subscribe(EventSink(p))
	c.Initialize()

	_, err := p.Run()
	return err
}
