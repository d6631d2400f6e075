package core

import (
	spinerrors "github.com/tessro/spin/internal/errors"
)

// Playlist is an ordered, immutable sequence of tracks.
type Playlist struct {
	name   string
	tracks []Track
}

// NewPlaylist creates a playlist from the given tracks. The slice is copied.
func NewPlaylist(name string, tracks []Track) (*Playlist, error) {
	if len(tracks) == 0 {
		return nil, spinerrors.ErrEmptyPlaylist
	}
	cp := make([]Track, len(tracks))
	copy(cp, tracks)
	return &Playlist{name: name, tracks: cp}, nil
}

// Name returns the playlist name.
func (p *Playlist) Name() string {
	return p.name
}

// Len returns the total number of tracks in the playlist.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.tracks)
}

// At returns the track at index i. It panics if i is out of range.
func (p *Playlist) At(i int) Track {
	return p.tracks[i]
}

// Tracks returns a copy of the tracks.
func (p *Playlist) Tracks() []Track {
	cp := make([]Track, len(p.tracks))
	copy(cp, p.tracks)
	return cp
}

// Valid reports whether i is a valid track index.
func (p *Playlist) Valid(i int) bool {
	return i >= 0 && i < p.Len()
}
