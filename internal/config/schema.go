package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Player PlayerConfig `toml:"player" json:"player"`
	Engine EngineConfig `toml:"engine" json:"engine"`
	TUI    TUIConfig    `toml:"tui" json:"tui"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// PlayerConfig holds default playback settings.
type PlayerConfig struct {
	Playlist string `toml:"playlist" json:"playlist"`
	Volume   int    `toml:"volume" json:"volume"`
	Shuffle  bool   `toml:"shuffle" json:"shuffle"`
	Repeat   string `toml:"repeat" json:"repeat"`
}

// VolumeLevel returns the configured volume as a 0.0-1.0 level.
func (c *PlayerConfig) VolumeLevel() float64 {
	return float64(c.Volume) / 100
}

// EngineConfig holds audio output settings.
type EngineConfig struct {
	SampleRate   int `toml:"sample_rate" json:"sample_rate"`
	BufferMS     int `toml:"buffer_ms" json:"buffer_ms"`
	TickInterval int `toml:"tick_interval" json:"tick_interval"`
}

// Buffer returns the output buffer length.
func (c *EngineConfig) Buffer() time.Duration {
	return time.Duration(c.BufferMS) * time.Millisecond
}

// Tick returns the position update interval.
func (c *EngineConfig) Tick() time.Duration {
	return time.Duration(c.TickInterval) * time.Millisecond
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme         string `toml:"theme" json:"theme"`
	// StatusTimeout is in milliseconds. Zero selects the default and a
	// negative value keeps messages until they are replaced.
	StatusTimeout int    `toml:"status_timeout" json:"status_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
