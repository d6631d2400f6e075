package player

import (
	"math"

	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
)

type fakeEngine struct {
	generation uint64
	loaded     []string
	missing    map[string]bool
	playing    bool
	plays      int
	pauses     int
	seeks      []float64
	volume     float64
	hasSource  bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{volume: 1, missing: map[string]bool{}}
}

func (e *fakeEngine) Load(src string) (uint64, error) {
	e.generation++
	e.loaded = append(e.loaded, src)
	e.playing = false
	if e.missing[src] {
		e.hasSource = false
		return e.generation, spinerrors.ErrTrackUnavailable
	}
	e.hasSource = true
	return e.generation, nil
}

func (e *fakeEngine) Play() error {
	if !e.hasSource {
		return spinerrors.ErrNothingLoaded
	}
	e.plays++
	e.playing = true
	return nil
}

func (e *fakeEngine) Pause() error {
	if !e.hasSource {
		return spinerrors.ErrNothingLoaded
	}
	e.pauses++
	e.playing = false
	return nil
}

func (e *fakeEngine) Seek(seconds float64) error {
	e.seeks = append(e.seeks, seconds)
	return nil
}

func (e *fakeEngine) Position() float64       { return 0 }
func (e *fakeEngine) Duration() float64       { return math.NaN() }
func (e *fakeEngine) SetVolume(level float64) { e.volume = level }
func (e *fakeEngine) Volume() float64         { return e.volume }
func (e *fakeEngine) Subscribe(core.EventSink) {}
func (e *fakeEngine) lastLoaded() string { return e.loaded[len(e.loaded)-1] }

type fakeSurface struct {
	title, artist, cover string
	progress             float64
	elapsed              string
	duration             string
	transport            core.Affordance
	shuffleColor         string
	repeat               core.RepeatMode
	active               int
	activeCalls          int
	volume               float64
	status               string
}

func (s *fakeSurface) SetTrackInfo(title, artist, cover string) {
	s.title, s.artist, s.cover = title, artist, cover
}
func (s *fakeSurface) SetProgress(percent float64)             { s.progress = percent }
func (s *fakeSurface) SetElapsed(label string)                 { s.elapsed = label }
func (s *fakeSurface) SetDuration(label string)                { s.duration = label }
func (s *fakeSurface) SetTransport(a core.Affordance)          { s.transport = a }
func (s *fakeSurface) SetShuffleIndicator(color string)        { s.shuffleColor = color }
func (s *fakeSurface) SetRepeatIndicator(mode core.RepeatMode) { s.repeat = mode }
func (s *fakeSurface) SetActive(index int) {
	s.active = index
	s.activeCalls++
}
func (s *fakeSurface) SetVolume(level float64) { s.volume = level }
func (s *fakeSurface) SetStatus(msg string)    { s.status = msg }
