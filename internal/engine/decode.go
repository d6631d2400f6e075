package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	spinerrors "github.com/tessro/spin/internal/errors"
)

// Supported reports whether the file extension has a decoder.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".flac", ".ogg", ".oga":
		return true
	}
	return false
}

// decode opens and decodes an audio file. The returned stream owns the file.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if !Supported(path) {
		return nil, beep.Format{}, fmt.Errorf("%s: %w", path, spinerrors.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %v", spinerrors.ErrTrackUnavailable, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	default:
		stream, format, err = vorbis.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: decode %s: %v", spinerrors.ErrTrackUnavailable, path, err)
	}
	return stream, format, nil
}

// Probe decodes the header of an audio file and returns its duration.
func Probe(path string) (time.Duration, error) {
	stream, format, err := decode(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stream.Close() }()
	return format.SampleRate.D(stream.Len()), nil
}
