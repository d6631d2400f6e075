package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty playlist", ErrEmptyPlaylist, "Add at least one track"},
		{"wrapped unavailable", fmt.Errorf("load song.mp3: %w", ErrTrackUnavailable), "audio file exists"},
		{"unsupported", fmt.Errorf("load a.xyz: %w", ErrUnsupportedFormat), "mp3, wav, flac"},
		{"explicit", WithSuggestion(errors.New("boom"), "try again"), "try again"},
		{"unknown", errors.New("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(ErrEmptyPlaylist)
	if !strings.HasPrefix(got, "Error: playlist is empty") {
		t.Errorf("Format() = %q", got)
	}
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, want a suggestion", got)
	}

	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q, want %q", got, "Error: plain")
	}
}

func TestSpinErrorUnwrap(t *testing.T) {
	err := WithSuggestion(ErrTrackUnavailable, "hint")
	if !errors.Is(err, ErrTrackUnavailable) {
		t.Error("errors.Is() = false, want true")
	}
}

func TestPartialResult(t *testing.T) {
	var p PartialResult[[]string]
	if p.HasErrors() {
		t.Error("HasErrors() = true for empty result")
	}
	if p.ErrorSummary() != "" {
		t.Errorf("ErrorSummary() = %q, want empty", p.ErrorSummary())
	}

	p.AddError(nil)
	p.AddError(errors.New("first"))
	if got := p.ErrorSummary(); got != "first" {
		t.Errorf("ErrorSummary() = %q, want %q", got, "first")
	}

	p.AddError(errors.New("second"))
	got := p.ErrorSummary()
	if !strings.HasPrefix(got, "2 errors occurred:") {
		t.Errorf("ErrorSummary() = %q", got)
	}
	if !strings.Contains(got, "  2. second") {
		t.Errorf("ErrorSummary() = %q, want numbered entries", got)
	}
}
