// Package player implements the playlist player state machine.
package player

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
)

// Controller owns the playback position within a playlist and keeps the
// engine and the display in step. It is not safe for concurrent use: every
// method is expected to run on the single goroutine that delivers input and
// engine events.
type Controller struct {
	playlist *core.Playlist
	engine   core.Engine
	surface  core.Surface
	rng      *rand.Rand
	log      zerolog.Logger

	index       int
	shuffle     bool
	repeat      core.RepeatMode
	transport   core.Transport
	generation  uint64
	position    float64
	duration    float64
	unavailable bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used by shuffle.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithRepeat sets the initial repeat mode.
func WithRepeat(m core.RepeatMode) Option {
	return func(c *Controller) {
		c.repeat = m
	}
}

// New creates a controller for a non-empty playlist. Call Initialize before
// delivering any input.
func New(pl *core.Playlist, e core.Engine, s core.Surface, opts ...Option) *Controller {
	now := uint64(time.Now().UnixNano())
	c := &Controller{
		playlist: pl,
		engine:   e,
		surface:  s,
		rng:      rand.New(rand.NewPCG(now, now>>1)),
		log:      zerolog.Nop(),
		repeat:   core.RepeatOff,
		duration: math.NaN(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads the first track without starting playback.
func (c *Controller) Initialize() {
	c.index = 0
	_ = c.Load(c.playlist.At(c.index))

	c.transport = core.TransportPaused
	c.surface.SetTransport(core.PlayAffordance)
	c.surface.SetShuffleIndicator(shuffleColor(c.shuffle))
	c.surface.SetRepeatIndicator(c.repeat)
	c.surface.SetVolume(c.engine.Volume())
	c.surface.SetActive(c.index)

	c.log.Info().
		Str("playlist", c.playlist.Name()).
		Int("tracks", c.playlist.Len()).
		Msg("player initialized")
}

// Load shows the track on the display and hands its audio to the engine.
// It never starts playback. Events from any earlier load are ignored from
// here on. A failed load leaves the track marked unavailable and the
// transport paused.
func (c *Controller) Load(track core.Track) error {
	c.surface.SetTrackInfo(track.Title, track.Artist, track.Cover)
	c.surface.SetProgress(0)
	c.surface.SetElapsed(core.FormatTime(0))
	c.surface.SetDuration(core.FormatTime(math.NaN()))
	c.position = 0
	c.duration = math.NaN()

	gen, err := c.engine.Load(track.Audio)
	c.generation = gen
	if err != nil {
		c.markUnavailable(track, err)
		return err
	}

	c.unavailable = false
	c.surface.SetStatus("")
	c.log.Debug().Uint64("generation", gen).Str("track", track.Label()).Str("audio", track.Audio).Msg("track loaded")
	return nil
}

// Play starts or resumes playback of the loaded track.
func (c *Controller) Play() {
	if c.unavailable {
		c.surface.SetStatus("Track unavailable: " + c.current().Title)
		return
	}
	if err := c.engine.Play(); err != nil {
		c.log.Error().Err(err).Msg("play failed")
		c.surface.SetStatus(err.Error())
		return
	}
	c.transport = core.TransportPlaying
	c.surface.SetTransport(core.PauseAffordance)
}

// Pause halts playback.
func (c *Controller) Pause() {
	if err := c.engine.Pause(); err != nil && !errors.Is(err, spinerrors.ErrNothingLoaded) {
		c.log.Error().Err(err).Msg("pause failed")
	}
	c.transport = core.TransportPaused
	c.surface.SetTransport(core.PlayAffordance)
}

// TogglePlayPause pauses when playing and plays otherwise.
func (c *Controller) TogglePlayPause() {
	if c.transport == core.TransportPlaying {
		c.Pause()
		return
	}
	c.Play()
}

// Previous moves to the previous track, wrapping from the first track to
// the last, and plays it.
func (c *Controller) Previous() {
	c.index--
	if c.index < 0 {
		c.index = c.playlist.Len() - 1
	}
	c.loadAndPlay()
}

// Next moves to the following track and plays it. In shuffle mode it picks
// a random track instead. Past the last track it pauses and stays put,
// unless repeat is set to all, in which case it wraps to the first track.
func (c *Controller) Next() {
	if c.shuffle {
		c.ShuffleNext()
		return
	}

	c.index++
	if c.index > c.playlist.Len()-1 {
		if c.repeat != core.RepeatAll {
			c.Pause()
			c.index--
			c.log.Debug().Int("index", c.index).Msg("end of playlist")
			return
		}
		c.index = 0
	}
	c.loadAndPlay()
}

// ShuffleNext plays a random track other than the current one. A
// single-track playlist replays its only track.
func (c *Controller) ShuffleNext() {
	n := c.playlist.Len()
	next := c.rng.IntN(n)
	for next == c.index && n > 1 {
		next = c.rng.IntN(n)
	}
	c.index = next
	c.loadAndPlay()
}

// Select loads and plays the track at index. Out-of-range indexes are
// ignored.
func (c *Controller) Select(index int) {
	if !c.playlist.Valid(index) {
		return
	}
	c.index = index
	c.loadAndPlay()
}

// ToggleShuffle flips shuffle mode.
func (c *Controller) ToggleShuffle() {
	c.shuffle = !c.shuffle
	c.surface.SetShuffleIndicator(shuffleColor(c.shuffle))
	c.log.Debug().Bool("shuffle", c.shuffle).Msg("shuffle toggled")
}

// CycleRepeat steps the repeat mode: off, all, track.
func (c *Controller) CycleRepeat() {
	c.SetRepeat(c.repeat.Next())
}

// SetRepeat sets the repeat mode.
func (c *Controller) SetRepeat(m core.RepeatMode) {
	c.repeat = m
	c.surface.SetRepeatIndicator(m)
}

// OnTimeUpdate reflects the engine position on the progress bar and the
// elapsed time label.
func (c *Controller) OnTimeUpdate(currentTime, duration float64) {
	c.position = currentTime
	if known(duration) {
		c.duration = duration
	}
	c.surface.SetProgress(core.Percent(currentTime, duration))
	c.surface.SetElapsed(core.FormatTime(currentTime))
}

// OnEnded reacts to the loaded track playing to completion.
func (c *Controller) OnEnded() {
	if c.repeat == core.RepeatTrack {
		c.loadAndPlay()
		return
	}
	c.Next()
}

// Seek moves playback to the position of a click at offsetX on a seek bar
// of the given width.
func (c *Controller) Seek(offsetX, width float64) {
	if !(width > 0) || math.IsNaN(offsetX) || !known(c.duration) {
		return
	}
	target := clamp01(offsetX/width) * c.duration
	if err := c.engine.Seek(target); err != nil {
		c.log.Error().Err(err).Float64("target", target).Msg("seek failed")
		return
	}
	c.OnTimeUpdate(target, c.duration)
}

// SetVolume sets the output level, clamped to 0.0-1.0.
func (c *Controller) SetVolume(level float64) {
	if math.IsNaN(level) {
		return
	}
	level = clamp01(level)
	c.engine.SetVolume(level)
	c.surface.SetVolume(level)
}

// HandleEvent dispatches an engine event. Events from an earlier load are
// dropped.
func (c *Controller) HandleEvent(ev core.Event) {
	if ev.Generation != c.generation {
		c.log.Debug().
			Stringer("kind", ev.Kind).
			Uint64("generation", ev.Generation).
			Uint64("current", c.generation).
			Msg("stale event dropped")
		return
	}

	switch ev.Kind {
	case core.EventMetadataReady:
		c.duration = ev.Duration
		c.surface.SetDuration(core.FormatTime(ev.Duration))
	case core.EventTimeUpdate:
		c.OnTimeUpdate(ev.Position, ev.Duration)
	case core.EventEnded:
		c.OnEnded()
	case core.EventError:
		c.markUnavailable(c.current(), ev.Err)
	}
}

// State returns a snapshot of the playback state.
func (c *Controller) State() core.PlaybackState {
	return core.PlaybackState{
		Index:       c.index,
		Track:       c.current(),
		Shuffle:     c.shuffle,
		Repeat:      c.repeat,
		Transport:   c.transport,
		Position:    c.position,
		Duration:    c.duration,
		Volume:      c.engine.Volume(),
		Unavailable: c.unavailable,
	}
}

// Playlist returns the playlist being played.
func (c *Controller) Playlist() *core.Playlist {
	return c.playlist
}

func (c *Controller) current() core.Track {
	return c.playlist.At(c.index)
}

func (c *Controller) loadAndPlay() {
	if err := c.Load(c.current()); err == nil {
		c.Play()
	}
	c.surface.SetActive(c.index)
}

func (c *Controller) markUnavailable(track core.Track, err error) {
	c.unavailable = true
	c.log.Warn().Err(err).Str("title", track.Title).Str("audio", track.Audio).Msg("track unavailable")
	c.surface.SetStatus("Track unavailable: " + track.Title)
	_ = c.engine.Pause()
	c.transport = core.TransportPaused
	c.surface.SetTransport(core.PlayAffordance)
}

func shuffleColor(on bool) string {
	if on {
		return core.ShuffleOnColor
	}
	return core.ShuffleOffColor
}

func known(seconds float64) bool {
	return !math.IsNaN(seconds) && !math.IsInf(seconds, 0) && seconds > 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
