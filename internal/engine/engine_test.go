package engine

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
)

const testRate = 8000

// recordingOutput stands in for the speaker.
type recordingOutput struct {
	mu      sync.Mutex
	queued  []beep.Streamer
	plays   int
	cleared int
}

func (o *recordingOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queued = append(o.queued, s)
	o.plays++
}

func (o *recordingOutput) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queued = nil
	o.cleared++
}

func (o *recordingOutput) Lock()   { o.mu.Lock() }
func (o *recordingOutput) Unlock() { o.mu.Unlock() }

// drain streams everything queued until it is exhausted, the way the
// speaker mixer would.
func (o *recordingOutput) drain(t *testing.T) {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()

	buf := make([][2]float64, 512)
	for _, s := range o.queued {
		for i := 0; ; i++ {
			if i > 10000 {
				t.Fatal("streamer never finished")
			}
			if _, ok := s.Stream(buf); !ok {
				break
			}
		}
	}
	o.queued = nil
}

// writeWAV writes a silent WAV file of the given length.
func writeWAV(t *testing.T, dir string, seconds float64) string {
	t.Helper()
	path := filepath.Join(dir, "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	n := format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if err := wav.Encode(f, beep.Silence(n), format); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	return path
}

type eventRecorder struct {
	ch chan core.Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{ch: make(chan core.Event, 64)}
}

func (r *eventRecorder) sink(ev core.Event) {
	r.ch <- ev
}

func (r *eventRecorder) wait(t *testing.T, kind core.EventKind) core.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-r.ch:
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v event", kind)
		}
	}
}

func newTestEngine(t *testing.T) (*Engine, *recordingOutput, *eventRecorder) {
	t.Helper()
	out := &recordingOutput{}
	e, err := New(Options{
		SampleRate:   testRate,
		TickInterval: 10 * time.Millisecond,
		Output:       out,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })

	rec := newEventRecorder()
	e.Subscribe(rec.sink)
	return e, out, rec
}

func TestLoadReportsDuration(t *testing.T) {
	e, out, rec := newTestEngine(t)
	path := writeWAV(t, t.TempDir(), 1)

	gen, err := e.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if gen != 1 {
		t.Errorf("generation = %d, want 1", gen)
	}
	if got := e.Duration(); got != 1 {
		t.Errorf("Duration() = %v, want 1", got)
	}
	if e.Playing() {
		t.Error("a freshly loaded source should be paused")
	}
	if out.plays != 1 {
		t.Errorf("output plays = %d, want 1", out.plays)
	}

	ev := rec.wait(t, core.EventMetadataReady)
	if ev.Generation != gen || ev.Duration != 1 {
		t.Errorf("metadata event = %+v", ev)
	}
}

func TestLoadMissingFile(t *testing.T) {
	e, _, _ := newTestEngine(t)

	gen, err := e.Load(filepath.Join(t.TempDir(), "nope.mp3"))
	if !errors.Is(err, spinerrors.ErrTrackUnavailable) {
		t.Fatalf("Load() error = %v, want ErrTrackUnavailable", err)
	}
	if gen != 1 {
		t.Errorf("generation = %d, want 1", gen)
	}
	if err := e.Play(); !errors.Is(err, spinerrors.ErrNothingLoaded) {
		t.Errorf("Play() error = %v, want ErrNothingLoaded", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	e, _, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Load(path); !errors.Is(err, spinerrors.ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	e, _, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("not a wav file"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := e.Load(path); !errors.Is(err, spinerrors.ErrTrackUnavailable) {
		t.Errorf("Load() error = %v, want ErrTrackUnavailable", err)
	}
}

func TestPlayPauseSeek(t *testing.T) {
	e, _, _ := newTestEngine(t)
	path := writeWAV(t, t.TempDir(), 2)
	if _, err := e.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := e.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !e.Playing() {
		t.Error("Playing() = false after Play()")
	}

	if err := e.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if e.Playing() {
		t.Error("Playing() = true after Pause()")
	}

	if err := e.Seek(0.5); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if got := e.Position(); got != 0.5 {
		t.Errorf("Position() = %v, want 0.5", got)
	}

	if err := e.Seek(10); err != nil {
		t.Fatalf("Seek() past end error = %v", err)
	}
	if got := e.Position(); got != 2 {
		t.Errorf("Position() = %v, want 2", got)
	}
}

func TestEndedEmittedAndReplay(t *testing.T) {
	e, out, rec := newTestEngine(t)
	path := writeWAV(t, t.TempDir(), 0.25)
	gen, err := e.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	out.drain(t)

	ev := rec.wait(t, core.EventEnded)
	if ev.Generation != gen {
		t.Errorf("ended generation = %d, want %d", ev.Generation, gen)
	}
	if e.Playing() {
		t.Error("Playing() = true after end")
	}

	if err := e.Play(); err != nil {
		t.Fatalf("Play() after end error = %v", err)
	}
	if out.plays != 2 {
		t.Errorf("output plays = %d, want 2 (requeued)", out.plays)
	}
	if got := e.Position(); got != 0 {
		t.Errorf("Position() = %v, want 0 after restart", got)
	}
}

// brokenStream yields silence until it reaches failAt, then reports a
// decode error.
type brokenStream struct {
	pos, length, failAt int
	err                 error
}

func (b *brokenStream) Stream(samples [][2]float64) (int, bool) {
	if b.err != nil {
		return 0, false
	}
	if b.pos >= b.failAt {
		b.err = errors.New("unexpected EOF")
		return 0, false
	}
	n := min(len(samples), b.failAt-b.pos)
	for i := range samples[:n] {
		samples[i] = [2]float64{}
	}
	b.pos += n
	return n, true
}

func (b *brokenStream) Err() error    { return b.err }
func (b *brokenStream) Len() int      { return b.length }
func (b *brokenStream) Position() int { return b.pos }
func (b *brokenStream) Close() error  { return nil }
func (b *brokenStream) Seek(p int) error {
	b.pos = p
	return nil
}

func TestDecodeErrorMidStream(t *testing.T) {
	e, out, rec := newTestEngine(t)
	broken := &brokenStream{length: testRate, failAt: testRate / 4}
	e.decode = func(string) (beep.StreamSeekCloser, beep.Format, error) {
		return broken, beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}, nil
	}

	gen, err := e.Load("truncated.wav")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	out.drain(t)

	ev := rec.wait(t, core.EventError)
	if ev.Generation != gen {
		t.Errorf("error generation = %d, want %d", ev.Generation, gen)
	}
	if !errors.Is(ev.Err, spinerrors.ErrTrackUnavailable) {
		t.Errorf("error = %v, want ErrTrackUnavailable", ev.Err)
	}
	if e.Playing() {
		t.Error("Playing() = true after a decode error")
	}
	quiet := time.After(50 * time.Millisecond)
	for {
		select {
		case ev := <-rec.ch:
			if ev.Kind == core.EventEnded {
				t.Fatal("decode error also reported EventEnded")
			}
		case <-quiet:
			return
		}
	}
}

func TestLoadReplacesSource(t *testing.T) {
	e, out, _ := newTestEngine(t)
	dir := t.TempDir()
	path := writeWAV(t, dir, 1)

	first, _ := e.Load(path)
	second, err := e.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second <= first {
		t.Errorf("generation did not advance: %d -> %d", first, second)
	}
	if out.cleared != 2 {
		t.Errorf("output cleared %d times, want 2", out.cleared)
	}
	if len(out.queued) != 1 {
		t.Errorf("queued streamers = %d, want 1", len(out.queued))
	}
}

func TestSetVolume(t *testing.T) {
	e, _, _ := newTestEngine(t)
	path := writeWAV(t, t.TempDir(), 1)
	if _, err := e.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	e.SetVolume(0.5)
	if e.Volume() != 0.5 {
		t.Errorf("Volume() = %v, want 0.5", e.Volume())
	}
	if e.src.gain.Volume != -1 || e.src.gain.Silent {
		t.Errorf("gain = %+v, want -1 and audible", e.src.gain)
	}

	e.SetVolume(0)
	if !e.src.gain.Silent {
		t.Error("zero volume should silence output")
	}

	e.SetVolume(3)
	if e.Volume() != 1 {
		t.Errorf("Volume() = %v, want clamped 1", e.Volume())
	}
}

func TestProbe(t *testing.T) {
	path := writeWAV(t, t.TempDir(), 1.5)

	d, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if d != 1500*time.Millisecond {
		t.Errorf("Probe() = %v, want 1.5s", d)
	}

	if _, err := Probe("missing.flac"); !errors.Is(err, spinerrors.ErrTrackUnavailable) {
		t.Errorf("Probe() error = %v, want ErrTrackUnavailable", err)
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.mp3", "b.WAV", "c.flac", "d.ogg"} {
		if !Supported(p) {
			t.Errorf("Supported(%q) = false", p)
		}
	}
	for _, p := range []string{"a.txt", "b", "c.m4a"} {
		if Supported(p) {
			t.Errorf("Supported(%q) = true", p)
		}
	}
}
