package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Volume:  100,
			Shuffle: false,
			Repeat:  "off",
		},
		Engine: EngineConfig{
			SampleRate:   44100,
			BufferMS:     100,
			TickInterval: 250,
		},
		TUI: TUIConfig{
			Theme:         "auto",
			StatusTimeout: 5000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Volume == 0 {
		c.Player.Volume = d.Player.Volume
	}
	if c.Player.Repeat == "" {
		c.Player.Repeat = d.Player.Repeat
	}

	// Engine
	if c.Engine.SampleRate == 0 {
		c.Engine.SampleRate = d.Engine.SampleRate
	}
	if c.Engine.BufferMS == 0 {
		c.Engine.BufferMS = d.Engine.BufferMS
	}
	if c.Engine.TickInterval == 0 {
		c.Engine.TickInterval = d.Engine.TickInterval
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.StatusTimeout == 0 {
		c.TUI.StatusTimeout = d.TUI.StatusTimeout
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
