package core

// Affordance is the glyph and label of a control.
type Affordance struct {
	Glyph string
	Label string
}

var (
	PlayAffordance  = Affordance{Glyph: "▶", Label: "Play"}
	PauseAffordance = Affordance{Glyph: "⏸", Label: "Pause"}
)

// Shuffle indicator colours.
const (
	ShuffleOnColor  = "#1DB954"
	ShuffleOffColor = "white"
)

// Surface defines the display properties a player controller can set.
type Surface interface {
	SetTrackInfo(title, artist, cover string)
	SetProgress(percent float64)
	SetElapsed(label string)
	SetDuration(label string)
	SetTransport(a Affordance)
	SetShuffleIndicator(color string)
	SetRepeatIndicator(mode RepeatMode)
	// SetActive marks exactly the item at index as active.
	SetActive(index int)
	SetVolume(level float64)
	// SetStatus shows a transient message. An empty message clears it.
	SetStatus(msg string)
}
