package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/tui/styles"
)

// Layout of the now playing panel, in rows and columns from its top-left
// border corner.
const (
	NowPlayingHeight = 10 // content rows, excluding borders
	progressRow      = 7
	timeWidth        = 5
	minBarWidth      = 10
)

// NowPlayingView is everything the now playing panel shows.
type NowPlayingView struct {
	Title        string
	Artist       string
	Cover        string
	Progress     float64
	Elapsed      string
	Duration     string
	Transport    core.Affordance
	ShuffleColor string
	Repeat       core.RepeatMode
	Volume       float64
	Status       string
}

// Region is a horizontal span on a single screen row.
type Region struct {
	Row   int
	X     int
	Width int
}

// Contains reports whether the cell at (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return y == r.Row && x >= r.X && x < r.X+r.Width
}

// NowPlaying displays the loaded track and the transport controls
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// BarRegion returns where the progress bar lands when the panel is
// rendered at the given width with its top border on row top.
func (n *NowPlaying) BarRegion(top, width int) Region {
	return Region{
		Row:   top + progressRow,
		X:     2 + timeWidth + 1,
		Width: barWidth(width),
	}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(v NowPlayingView, width int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)
	content := width - 2

	var trackTitle string
	if v.Title == "" {
		trackTitle = styles.Muted.Render("No track loaded")
	} else {
		trackTitle = styles.Title.Render(truncate(v.Title, content-2))
	}
	artist := styles.Subtitle.Render(truncate(v.Artist, content-2))
	cover := styles.Dim.Render(truncate(v.Cover, content-2))

	bar := styles.ProgressBar(v.Progress, barWidth(width))
	progress := fmt.Sprintf("%*s %s %-*s", timeWidth, v.Elapsed, bar, timeWidth, v.Duration)

	status := ""
	if v.Status != "" {
		status = styles.Status.Render(truncate(v.Status, content))
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(NowPlayingHeight)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		styles.StatusIcon(v.Transport == core.PauseAffordance)+" "+trackTitle,
		"  "+artist,
		"  "+cover,
		"",
		progress,
		"",
		n.renderControls(v),
		status,
	))
}

func (n *NowPlaying) renderControls(v NowPlayingView) string {
	controls := styles.Dim.Render("⏮ ")

	if v.Transport == core.PauseAffordance {
		controls += styles.Playing.Render(v.Transport.Glyph + " " + v.Transport.Label)
	} else {
		controls += styles.Paused.Render(v.Transport.Glyph + " " + v.Transport.Label)
	}

	controls += styles.Dim.Render(" ⏭")

	shuffle := lipgloss.NewStyle().Foreground(styles.ColorOf(v.ShuffleColor)).Render("shuffle")
	repeat := styles.Muted.Render("repeat " + string(v.Repeat))
	volume := styles.Muted.Render(fmt.Sprintf("vol %d%%", int(math.Round(v.Volume*100))))

	return controls + "   " + shuffle + "   " + repeat + "   " + volume
}

func barWidth(width int) int {
	w := width - 2 - 2*timeWidth - 2
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}
