package playlist

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	spinerrors "github.com/tessro/spin/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file    string
		content string
		name    string
	}{
		{
			file: "mix.toml",
			content: `name = "Late Night"

[[tracks]]
title = "First"
artist = "Band A"
cover = "art/a.jpg"
audio = "songs/a.mp3"

[[tracks]]
title = "Second"
artist = "Band B"
audio = "songs/b.mp3"
`,
			name: "Late Night",
		},
		{
			file: "mix.yaml",
			content: `name: Late Night
tracks:
  - title: First
    artist: Band A
    cover: art/a.jpg
    audio: songs/a.mp3
  - title: Second
    artist: Band B
    audio: songs/b.mp3
`,
			name: "Late Night",
		},
		{
			file: "mix.json",
			content: `{"name": "Late Night", "tracks": [
  {"title": "First", "artist": "Band A", "cover": "art/a.jpg", "audio": "songs/a.mp3"},
  {"title": "Second", "artist": "Band B", "audio": "songs/b.mp3"}
]}`,
			name: "Late Night",
		},
		{
			file: "latenight.csv",
			content: `title,artist,cover,audio
First,Band A,art/a.jpg,songs/a.mp3
Second,Band B,,songs/b.mp3
`,
			name: "latenight",
		},
		{
			file: "latenight.m3u",
			content: `#EXTM3U
#EXTINF:215,Band A - First
songs/a.mp3

#EXTINF:180,Band B - Second
songs/b.mp3
`,
			name: "latenight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			pl, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if pl.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", pl.Name(), tt.name)
			}
			if pl.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", pl.Len())
			}

			first := pl.At(0)
			if first.Title != "First" || first.Artist != "Band A" {
				t.Errorf("first track = %+v", first)
			}
			if want := filepath.Join(dir, "songs", "a.mp3"); first.Audio != want {
				t.Errorf("Audio = %q, want %q", first.Audio, want)
			}
			if pl.At(1).Title != "Second" || pl.At(1).Artist != "Band B" {
				t.Errorf("second track = %+v", pl.At(1))
			}
		})
	}
}

func TestLoadResolvesCover(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.json", `{"tracks": [
  {"title": "A", "cover": "a.jpg", "audio": "/abs/a.mp3"},
  {"title": "B", "cover": "https://example.com/b.jpg", "audio": "b.mp3"}
]}`)

	pl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := pl.At(0).Cover; got != filepath.Join(dir, "a.jpg") {
		t.Errorf("Cover = %q", got)
	}
	if got := pl.At(0).Audio; got != "/abs/a.mp3" {
		t.Errorf("absolute Audio rewritten to %q", got)
	}
	if got := pl.At(1).Cover; got != "https://example.com/b.jpg" {
		t.Errorf("URL Cover rewritten to %q", got)
	}
}

func TestLoadPlainM3U(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.m3u8", "# comment\nmusic/Song One.mp3\nmusic/two.flac\n")

	pl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if pl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", pl.Len())
	}
	if pl.At(0).Title != "Song One" || pl.At(1).Title != "two" {
		t.Errorf("titles = %q, %q", pl.At(0).Title, pl.At(1).Title)
	}
}

func TestLoadM3ULineTooLong(t *testing.T) {
	dir := t.TempDir()
	content := "first.mp3\n" + strings.Repeat("x", bufio.MaxScanTokenSize+1) + ".mp3\nlast.mp3\n"
	path := writeFile(t, dir, "long.m3u", content)

	_, err := Load(path)
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("Load() error = %v, want bufio.ErrTooLong", err)
	}
	if !strings.Contains(err.Error(), "long.m3u") {
		t.Errorf("error %q does not name the playlist", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, spinerrors.ErrPlaylistNotFound) {
		t.Errorf("missing file error = %v, want ErrPlaylistNotFound", err)
	}

	empty := writeFile(t, dir, "empty.toml", `name = "Nothing"`)
	if _, err := Load(empty); !errors.Is(err, spinerrors.ErrEmptyPlaylist) {
		t.Errorf("empty playlist error = %v, want ErrEmptyPlaylist", err)
	}

	odd := writeFile(t, dir, "list.xyz", "whatever")
	if _, err := Load(odd); !errors.Is(err, spinerrors.ErrUnsupportedFormat) {
		t.Errorf("unknown extension error = %v, want ErrUnsupportedFormat", err)
	}

	bad := writeFile(t, dir, "bad.yaml", "tracks: [unclosed")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "")
	writeFile(t, dir, "a.toml", "")
	writeFile(t, dir, "song.mp3", "")
	writeFile(t, dir, "notes.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "sub.toml"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.yaml")}
	if len(paths) != len(want) {
		t.Fatalf("Discover() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestDefault(t *testing.T) {
	pl := Default()
	if pl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", pl.Len())
	}
	if pl.At(2).Artist != "Kanye West" {
		t.Errorf("At(2).Artist = %q", pl.At(2).Artist)
	}
}
