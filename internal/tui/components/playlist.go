package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/tui/styles"
)

// Playlist displays the track list with the active track marked
type Playlist struct {
	offset int
	cursor int
}

// NewPlaylist creates a new Playlist component
func NewPlaylist() *Playlist {
	return &Playlist{}
}

// CursorDown moves the selection cursor down
func (p *Playlist) CursorDown(n int) {
	if p.cursor < n-1 {
		p.cursor++
	}
}

// CursorUp moves the selection cursor up
func (p *Playlist) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// Cursor returns the index under the cursor
func (p *Playlist) Cursor() int {
	return p.cursor
}

// Render renders the playlist panel. Exactly one row, the one at active,
// carries the active marker.
func (p *Playlist) Render(name string, tracks []core.Track, active, width, height int, focused bool) string {
	title := styles.PanelTitle(name, focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("Playlist is empty")
	} else {
		content = p.renderTracks(tracks, active, width-2, height-2, focused)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (p *Playlist) renderTracks(tracks []core.Track, active, width, maxLines int, focused bool) string {
	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the cursor on screen
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+visibleCount {
		p.offset = p.cursor - visibleCount + 1
	}

	start := p.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2) + " — " (3) = 9 chars
	const overhead = 9

	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)

		available := width - overhead
		titleLen := len(track.Title)
		artistLen := len(track.Artist)

		var title, artist string
		if titleLen+artistLen <= available {
			title = track.Title
			artist = track.Artist
		} else {
			// Give artist at least 1/3 of space (min 10 chars)
			minArtist := max(available/3, 10)
			minArtist = min(minArtist, available-10)

			artistSpace := min(minArtist, artistLen)
			titleSpace := available - artistSpace

			title = truncate(track.Title, titleSpace)
			artist = truncate(track.Artist, artistSpace)
		}

		var line string
		if i == active {
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(artist))
		}
		if i == p.cursor && focused {
			line = styles.Cursor.Render(line)
		}

		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
