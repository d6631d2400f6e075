// Package engine plays audio files through beep and reports playback
// progress as core events.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/rs/zerolog"
	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
)

const resampleQuality = 4

// Options configures an Engine.
type Options struct {
	SampleRate   int
	Buffer       time.Duration
	TickInterval time.Duration
	// Output defaults to the system speaker.
	Output Output
	Logger zerolog.Logger
}

// source is one loaded audio file. Fields other than generation and format
// are guarded by the output lock.
type source struct {
	generation uint64
	format     beep.Format
	stream     beep.StreamSeekCloser
	ctrl       *beep.Ctrl
	gain       *effects.Volume
	ended      bool
}

// Engine implements core.Engine on top of a beep output.
type Engine struct {
	out    Output
	rate   beep.SampleRate
	log    zerolog.Logger
	decode func(path string) (beep.StreamSeekCloser, beep.Format, error)

	sinkMu sync.Mutex
	sink   core.EventSink

	// guarded by out.Lock
	src        *source
	generation uint64
	volume     float64

	watcher *Watcher
	cancel  context.CancelFunc
}

// New creates an engine and starts its position watcher.
func New(opts Options) (*Engine, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.Buffer == 0 {
		opts.Buffer = 100 * time.Millisecond
	}
	rate := beep.SampleRate(opts.SampleRate)

	out := opts.Output
	if out == nil {
		var err error
		out, err = newSpeakerOutput(rate, opts.Buffer)
		if err != nil {
			return nil, err
		}
	}

	e := &Engine{
		out:    out,
		rate:   rate,
		log:    opts.Logger,
		volume: 1,
		decode: decode,
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.watcher = NewWatcher(e, opts.TickInterval, e.emit)
	go func() {
		_ = e.watcher.Start(ctx)
	}()

	return e, nil
}

// Subscribe replaces the event sink.
func (e *Engine) Subscribe(sink core.EventSink) {
	e.sinkMu.Lock()
	e.sink = sink
	e.sinkMu.Unlock()
}

func (e *Engine) emit(ev core.Event) {
	e.sinkMu.Lock()
	sink := e.sink
	e.sinkMu.Unlock()
	if sink != nil {
		sink(ev)
	}
}

// Load stops the current source and decodes path, paused at the start.
// The duration is reported with an EventMetadataReady event.
func (e *Engine) Load(path string) (uint64, error) {
	e.out.Lock()
	e.generation++
	gen := e.generation
	old := e.src
	e.src = nil
	volume := e.volume
	e.out.Unlock()

	e.out.Clear()
	if old != nil {
		_ = old.stream.Close()
	}

	stream, format, err := e.decode(path)
	if err != nil {
		return gen, err
	}

	var streamer beep.Streamer = stream
	if format.SampleRate != e.rate {
		streamer = beep.Resample(resampleQuality, format.SampleRate, e.rate, stream)
	}
	s := &source{
		generation: gen,
		format:     format,
		stream:     stream,
		ctrl:       &beep.Ctrl{Streamer: streamer, Paused: true},
	}
	s.gain = &effects.Volume{Streamer: s.ctrl, Base: 2}
	applyVolume(s.gain, volume)

	e.out.Lock()
	e.src = s
	e.out.Unlock()
	e.queue(s)

	duration := format.SampleRate.D(stream.Len()).Seconds()
	e.log.Debug().Str("path", path).Uint64("generation", gen).Float64("duration", duration).Msg("source loaded")
	go e.emit(core.Event{Kind: core.EventMetadataReady, Generation: gen, Duration: duration})

	return gen, nil
}

// queue hands s to the output. Must be called without the output lock.
// A stream that stops on a decode error reports EventError instead of
// EventEnded.
func (e *Engine) queue(s *source) {
	e.out.Play(beep.Seq(s.gain, beep.Callback(func() {
		// Runs on the output goroutine with the lock held.
		s.ended = true
		s.ctrl.Paused = true
		if err := s.stream.Err(); err != nil {
			e.log.Warn().Err(err).Uint64("generation", s.generation).Msg("stream failed")
			go e.emit(core.Event{
				Kind:       core.EventError,
				Generation: s.generation,
				Err:        fmt.Errorf("%w: %v", spinerrors.ErrTrackUnavailable, err),
			})
			return
		}
		go e.emit(core.Event{Kind: core.EventEnded, Generation: s.generation})
	})))
}

// Play starts or resumes playback. A source that already ended restarts
// from the beginning.
func (e *Engine) Play() error {
	e.out.Lock()
	s := e.src
	if s == nil {
		e.out.Unlock()
		return spinerrors.ErrNothingLoaded
	}
	requeue := s.ended
	if requeue {
		s.ended = false
		if err := s.stream.Seek(0); err != nil {
			e.out.Unlock()
			return err
		}
	}
	s.ctrl.Paused = false
	e.out.Unlock()

	if requeue {
		e.queue(s)
	}
	return nil
}

// Pause halts playback.
func (e *Engine) Pause() error {
	e.out.Lock()
	defer e.out.Unlock()
	if e.src == nil {
		return spinerrors.ErrNothingLoaded
	}
	e.src.ctrl.Paused = true
	return nil
}

// Seek moves the position of the current source, in seconds.
func (e *Engine) Seek(seconds float64) error {
	e.out.Lock()
	s := e.src
	if s == nil {
		e.out.Unlock()
		return spinerrors.ErrNothingLoaded
	}
	n := s.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	n = max(0, min(n, s.stream.Len()))
	if err := s.stream.Seek(n); err != nil {
		e.out.Unlock()
		return err
	}
	requeue := s.ended
	s.ended = false
	e.out.Unlock()

	if requeue {
		e.queue(s)
	}
	return nil
}

// Position returns the current position in seconds.
func (e *Engine) Position() float64 {
	e.out.Lock()
	defer e.out.Unlock()
	if e.src == nil {
		return 0
	}
	return e.src.format.SampleRate.D(e.src.stream.Position()).Seconds()
}

// Duration returns the length of the current source in seconds, or NaN.
func (e *Engine) Duration() float64 {
	e.out.Lock()
	defer e.out.Unlock()
	if e.src == nil {
		return math.NaN()
	}
	return e.src.format.SampleRate.D(e.src.stream.Len()).Seconds()
}

// Playing reports whether audio is being produced.
func (e *Engine) Playing() bool {
	e.out.Lock()
	defer e.out.Unlock()
	return e.src != nil && !e.src.ctrl.Paused && !e.src.ended
}

// SetVolume sets the output level (0.0-1.0).
func (e *Engine) SetVolume(level float64) {
	level = math.Max(0, math.Min(1, level))
	e.out.Lock()
	defer e.out.Unlock()
	e.volume = level
	if e.src != nil {
		applyVolume(e.src.gain, level)
	}
}

// Volume returns the output level.
func (e *Engine) Volume() float64 {
	e.out.Lock()
	defer e.out.Unlock()
	return e.volume
}

// Snapshot implements Snapshotter.
func (e *Engine) Snapshot() Snapshot {
	e.out.Lock()
	defer e.out.Unlock()
	if e.src == nil {
		return Snapshot{Generation: e.generation, Duration: math.NaN()}
	}
	rate := e.src.format.SampleRate
	return Snapshot{
		Generation: e.src.generation,
		Position:   rate.D(e.src.stream.Position()).Seconds(),
		Duration:   rate.D(e.src.stream.Len()).Seconds(),
		Playing:    !e.src.ctrl.Paused && !e.src.ended,
	}
}

// Close stops the watcher and releases the current source.
func (e *Engine) Close() error {
	e.cancel()
	e.out.Clear()

	e.out.Lock()
	s := e.src
	e.src = nil
	e.out.Unlock()

	if s != nil {
		return s.stream.Close()
	}
	return nil
}

// applyVolume maps a linear level onto a base-2 gain.
func applyVolume(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}

var _ core.Engine = (*Engine)(nil)
