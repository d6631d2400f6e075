package wizard

import (
	"os"

	"golang.org/x/term"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
	entries []Entry
	current string
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// SetEntries sets the playlists offered by the picker and the path of the
// currently configured one.
func (i *Interactive) SetEntries(entries []Entry, current string) {
	i.entries = entries
	i.current = current
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptPlaylist launches the playlist picker if interactive mode is
// available. Returns the selected entry, or nil if cancelled or not
// interactive.
func (i *Interactive) PromptPlaylist() (*Entry, error) {
	if !i.CanInteract() || len(i.entries) == 0 {
		return nil, nil
	}
	return RunPicker(i.entries, i.current)
}

// NeedsPlaylist returns true if no playlist was given on the command line
// or in the config.
func NeedsPlaylist(args []string, configured string) bool {
	return len(args) == 0 && configured == ""
}
