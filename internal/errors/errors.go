package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrEmptyPlaylist     = errors.New("playlist is empty")
	ErrPlaylistNotFound  = errors.New("playlist not found")
	ErrTrackUnavailable  = errors.New("track unavailable")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNothingLoaded     = errors.New("nothing loaded")
	ErrAudioDevice       = errors.New("audio device unavailable")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// SpinError wraps an error with a user-friendly suggestion.
type SpinError struct {
	Err        error
	Suggestion string
}

func (e *SpinError) Error() string {
	return e.Err.Error()
}

func (e *SpinError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SpinError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a SpinError with suggestion
	var spinErr *SpinError
	if errors.As(err, &spinErr) && spinErr.Suggestion != "" {
		return spinErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Playlist errors
	if errors.Is(err, ErrEmptyPlaylist) {
		return "Add at least one track to the playlist file"
	}
	if errors.Is(err, ErrPlaylistNotFound) {
		return "Check the path, or run 'spin config pick' to choose a playlist"
	}

	// Track errors
	if errors.Is(err, ErrUnsupportedFormat) {
		return "Supported audio formats are mp3, wav, flac and ogg"
	}
	if errors.Is(err, ErrTrackUnavailable) || strings.Contains(errStr, "no such file") {
		return "Check that the audio file exists and is readable"
	}

	// Output errors
	if errors.Is(err, ErrAudioDevice) || strings.Contains(errStr, "oto") {
		return "Make sure an audio output device is available"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'spin config init' to set up your configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
