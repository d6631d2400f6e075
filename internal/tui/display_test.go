package tui

import (
	"testing"
	"time"

	"github.com/tessro/spin/internal/core"
)

func TestDisplayDefaults(t *testing.T) {
	d := NewDisplay(time.Second)
	v := d.View()

	if v.Elapsed != "0:00" || v.Duration != "0:00" {
		t.Errorf("times = %q/%q, want 0:00/0:00", v.Elapsed, v.Duration)
	}
	if v.Transport != core.PlayAffordance {
		t.Errorf("Transport = %+v, want Play", v.Transport)
	}
	if v.ShuffleColor != core.ShuffleOffColor {
		t.Errorf("ShuffleColor = %q", v.ShuffleColor)
	}
}

func TestDisplayStoresProperties(t *testing.T) {
	d := NewDisplay(0)

	d.SetTrackInfo("Golden", "Jill Scott", "covers/golden.jpg")
	d.SetProgress(42)
	d.SetElapsed("1:05")
	d.SetDuration("3:58")
	d.SetTransport(core.PauseAffordance)
	d.SetShuffleIndicator(core.ShuffleOnColor)
	d.SetRepeatIndicator(core.RepeatTrack)
	d.SetActive(2)
	d.SetVolume(0.5)

	v := d.View()
	if v.Title != "Golden" || v.Artist != "Jill Scott" || v.Cover != "covers/golden.jpg" {
		t.Errorf("track info = %+v", v)
	}
	if v.Progress != 42 || v.Elapsed != "1:05" || v.Duration != "3:58" {
		t.Errorf("progress = %+v", v)
	}
	if d.Transport() != core.PauseAffordance || v.ShuffleColor != core.ShuffleOnColor {
		t.Errorf("controls = %+v", v)
	}
	if v.Repeat != core.RepeatTrack || v.Volume != 0.5 || d.Active() != 2 {
		t.Errorf("indicators = %+v active=%d", v, d.Active())
	}
}

func TestDisplayStatusExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	d := NewDisplay(5 * time.Second)
	d.now = func() time.Time { return now }

	d.SetStatus("Track unavailable: Golden")
	if got := d.Status(); got != "Track unavailable: Golden" {
		t.Fatalf("Status() = %q", got)
	}

	now = now.Add(6 * time.Second)
	if got := d.Status(); got != "" {
		t.Errorf("Status() after timeout = %q, want empty", got)
	}

	d.SetStatus("")
	if got := d.Status(); got != "" {
		t.Errorf("cleared Status() = %q", got)
	}
}

func TestDisplayStatusWithoutTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Millisecond} {
		now := time.Unix(1000, 0)
		d := NewDisplay(timeout)
		d.now = func() time.Time { return now }

		d.SetStatus("sticky")
		now = now.Add(time.Hour)
		if got := d.Status(); got != "sticky" {
			t.Errorf("timeout %v: Status() = %q, want sticky", timeout, got)
		}
	}
}
