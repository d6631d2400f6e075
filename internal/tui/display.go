package tui

import (
	"time"

	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/tui/components"
)

// Display is the terminal surface the player controller drives. It only
// stores what it is told; Model renders it.
type Display struct {
	title  string
	artist string
	cover  string

	progress float64
	elapsed  string
	duration string

	transport    core.Affordance
	shuffleColor string
	repeat       core.RepeatMode
	active       int
	volume       float64

	status        string
	statusExpiry  time.Time
	statusTimeout time.Duration

	now func() time.Time
}

// NewDisplay creates a Display. Status messages disappear after
// statusTimeout. A timeout of zero or less keeps them until replaced.
func NewDisplay(statusTimeout time.Duration) *Display {
	return &Display{
		elapsed:       "0:00",
		duration:      "0:00",
		transport:     core.PlayAffordance,
		shuffleColor:  core.ShuffleOffColor,
		repeat:        core.RepeatOff,
		volume:        1,
		statusTimeout: statusTimeout,
		now:           time.Now,
	}
}

func (d *Display) SetTrackInfo(title, artist, cover string) {
	d.title = title
	d.artist = artist
	d.cover = cover
}

func (d *Display) SetProgress(percent float64) { d.progress = percent }

func (d *Display) SetElapsed(label string) { d.elapsed = label }

func (d *Display) SetDuration(label string) { d.duration = label }

func (d *Display) SetTransport(a core.Affordance) { d.transport = a }

func (d *Display) SetShuffleIndicator(color string) { d.shuffleColor = color }

func (d *Display) SetRepeatIndicator(mode core.RepeatMode) { d.repeat = mode }

func (d *Display) SetActive(index int) { d.active = index }

func (d *Display) SetVolume(level float64) { d.volume = level }

func (d *Display) SetStatus(msg string) {
	d.status = msg
	d.statusExpiry = d.now().Add(d.statusTimeout)
}

// Active returns the index of the active playlist item.
func (d *Display) Active() int {
	return d.active
}

// Transport returns the affordance on the play/pause control.
func (d *Display) Transport() core.Affordance {
	return d.transport
}

// Status returns the current status message, or "" once it has expired.
func (d *Display) Status() string {
	if d.status == "" {
		return ""
	}
	if d.statusTimeout > 0 && d.now().After(d.statusExpiry) {
		return ""
	}
	return d.status
}

// View returns the now playing panel contents.
func (d *Display) View() components.NowPlayingView {
	return components.NowPlayingView{
		Title:        d.title,
		Artist:       d.artist,
		Cover:        d.cover,
		Progress:     d.progress,
		Elapsed:      d.elapsed,
		Duration:     d.duration,
		Transport:    d.transport,
		ShuffleColor: d.shuffleColor,
		Repeat:       d.repeat,
		Volume:       d.volume,
		Status:       d.Status(),
	}
}

var _ core.Surface = (*Display)(nil)
