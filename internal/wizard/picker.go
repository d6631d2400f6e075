package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spin/internal/playlist"
)

// Entry is a playlist file offered by the picker.
type Entry struct {
	Path   string
	Name   string
	Tracks int
	Err    error
}

// Scan loads every playlist file in dir. Files that fail to parse are
// still listed, with Err set.
func Scan(dir string) ([]Entry, error) {
	paths, err := playlist.Discover(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e := Entry{Path: p, Name: filepath.Base(p)}
		if pl, err := playlist.Load(p); err != nil {
			e.Err = err
		} else {
			e.Name = pl.Name()
			e.Tracks = pl.Len()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// PickerModel is the bubbletea model for the playlist picker.
type PickerModel struct {
	entries  []Entry
	current  string
	cursor   int
	selected *Entry
	width    int
	height   int
}

// Styles for playlist picker
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	pickerItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	pickerSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	pickerCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82"))

	pickerDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	pickerErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

// NewPickerModel creates a new playlist picker model. current is the path
// of the configured playlist, marked in the list.
func NewPickerModel(entries []Entry, current string) PickerModel {
	return PickerModel{
		entries: entries,
		current: current,
		width:   80,
		height:  20,
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if m.cursor < len(m.entries) && m.entries[m.cursor].Err == nil {
				m.selected = &m.entries[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = max(len(m.entries)-1, 0)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("♪ Select Playlist"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(pickerDimStyle.Render("No playlists found"))
		b.WriteString("\n\n")
		b.WriteString(pickerDimStyle.Render("Supported files: " + strings.Join(playlist.Extensions, " ")))
	} else {
		for i, entry := range m.entries {
			var line strings.Builder

			if entry.Path == m.current {
				line.WriteString(pickerCurrentStyle.Render("● "))
			} else {
				line.WriteString(pickerDimStyle.Render("○ "))
			}

			line.WriteString(entry.Name)

			if entry.Err != nil {
				line.WriteString(" " + pickerErrorStyle.Render("(unreadable)"))
			} else {
				line.WriteString(" " + pickerDimStyle.Render(fmt.Sprintf("(%d tracks, %s)", entry.Tracks, filepath.Base(entry.Path))))
			}

			if i == m.cursor {
				b.WriteString(pickerSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(pickerItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	b.WriteString(pickerDimStyle.Render("● current  ○ other"))

	return b.String()
}

// Selected returns the selected entry, or nil if none.
func (m PickerModel) Selected() *Entry {
	return m.selected
}

// RunPicker runs the playlist picker and returns the selected entry.
func RunPicker(entries []Entry, current string) (*Entry, error) {
	model := NewPickerModel(entries, current)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(PickerModel).Selected(), nil
}
