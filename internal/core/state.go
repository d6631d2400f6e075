package core

import "math"

// Transport is the playing/paused state of the playback engine.
type Transport int

const (
	TransportPaused Transport = iota
	TransportPlaying
)

func (t Transport) String() string {
	if t == TransportPlaying {
		return "playing"
	}
	return "paused"
}

// RepeatMode controls what happens at the end of a track or the playlist.
type RepeatMode string

const (
	// RepeatOff pauses on the last track when advancing past the end.
	RepeatOff RepeatMode = "off"
	// RepeatAll wraps from the last track back to the first.
	RepeatAll RepeatMode = "all"
	// RepeatTrack replays the current track when it ends naturally.
	RepeatTrack RepeatMode = "track"
)

// Next returns the mode that follows m in the off → all → track cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatTrack
	default:
		return RepeatOff
	}
}

// ParseRepeatMode converts a string to a RepeatMode. Empty means off.
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch RepeatMode(s) {
	case "", RepeatOff:
		return RepeatOff, true
	case RepeatAll, RepeatTrack:
		return RepeatMode(s), true
	}
	return RepeatOff, false
}

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Index       int        `json:"index"`
	Track       Track      `json:"track"`
	Shuffle     bool       `json:"shuffle"`
	Repeat      RepeatMode `json:"repeat"`
	Transport   Transport  `json:"transport"`
	Position    float64    `json:"position"`
	Duration    float64    `json:"duration"`
	Volume      float64    `json:"volume"`
	Unavailable bool       `json:"unavailable"`
}

// IsPlaying returns true if the transport is playing.
func (s *PlaybackState) IsPlaying() bool {
	return s != nil && s.Transport == TransportPlaying
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil {
		return 0
	}
	return Percent(s.Position, s.Duration)
}

// Percent returns current/duration as a percentage clamped to 0-100.
// An unknown (non-finite or non-positive) duration yields 0.
func Percent(current, duration float64) float64 {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return 0
	}
	if math.IsNaN(current) || current <= 0 {
		return 0
	}
	p := current / duration * 100
	if p > 100 {
		return 100
	}
	return p
}
