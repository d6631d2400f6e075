package core

import (
	"math"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name              string
		current, duration float64
		want              float64
	}{
		{"quarter", 30, 120, 25},
		{"start", 0, 120, 0},
		{"end", 120, 120, 100},
		{"past end", 130, 120, 100},
		{"unknown duration", 30, math.NaN(), 0},
		{"infinite duration", 30, math.Inf(1), 0},
		{"zero duration", 30, 0, 0},
		{"negative current", -1, 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.current, tt.duration); got != tt.want {
				t.Errorf("Percent(%v, %v) = %v, want %v", tt.current, tt.duration, got, tt.want)
			}
		})
	}
}

func TestPlaybackStateProgressPercent(t *testing.T) {
	var nilState *PlaybackState
	if nilState.ProgressPercent() != 0 {
		t.Error("nil state should report 0%")
	}
	if nilState.IsPlaying() {
		t.Error("nil state should not be playing")
	}

	s := &PlaybackState{Position: 45, Duration: 180, Transport: TransportPlaying}
	if got := s.ProgressPercent(); got != 25 {
		t.Errorf("ProgressPercent() = %v, want 25", got)
	}
	if !s.IsPlaying() {
		t.Error("IsPlaying() = false, want true")
	}
}

func TestRepeatMode(t *testing.T) {
	if got := RepeatOff.Next().Next().Next(); got != RepeatOff {
		t.Errorf("three steps from off = %q, want off", got)
	}
	if RepeatOff.Next() != RepeatAll || RepeatAll.Next() != RepeatTrack {
		t.Error("unexpected repeat cycle order")
	}

	for _, s := range []string{"", "off", "all", "track"} {
		if _, ok := ParseRepeatMode(s); !ok {
			t.Errorf("ParseRepeatMode(%q) not ok", s)
		}
	}
	if _, ok := ParseRepeatMode("context"); ok {
		t.Error("ParseRepeatMode(context) should fail")
	}
}

func TestTransportString(t *testing.T) {
	if TransportPlaying.String() != "playing" || TransportPaused.String() != "paused" {
		t.Error("unexpected transport names")
	}
}
