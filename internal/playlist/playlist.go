// Package playlist reads playlist files into core playlists.
package playlist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gocarina/gocsv"
	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout shared by the TOML, YAML and JSON formats.
type File struct {
	Name   string       `json:"name" toml:"name" yaml:"name"`
	Tracks []core.Track `json:"tracks" toml:"tracks" yaml:"tracks"`
}

// Extensions lists the playlist file extensions Load understands.
var Extensions = []string{".toml", ".yaml", ".yml", ".json", ".csv", ".m3u", ".m3u8"}

// Load reads a playlist file. Relative audio and cover locators are
// resolved against the directory containing the file.
func Load(path string) (*core.Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, spinerrors.ErrPlaylistNotFound)
		}
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	var file File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("failed to parse playlist %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse playlist %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse playlist %s: %w", path, err)
		}
	case ".csv":
		var entries []*core.Track
		if err := gocsv.UnmarshalBytes(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse playlist %s: %w", path, err)
		}
		for _, e := range entries {
			file.Tracks = append(file.Tracks, *e)
		}
	case ".m3u", ".m3u8":
		file.Tracks, err = parseM3U(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse playlist %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: playlist %w %q", path, spinerrors.ErrUnsupportedFormat, ext)
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	dir := filepath.Dir(path)
	for i := range file.Tracks {
		file.Tracks[i].Audio = resolve(dir, file.Tracks[i].Audio)
		file.Tracks[i].Cover = resolve(dir, file.Tracks[i].Cover)
	}

	pl, err := core.NewPlaylist(file.Name, file.Tracks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pl, nil
}

// parseM3U reads an extended or plain M3U playlist. "#EXTINF:<secs>,Artist -
// Title" lines name the entry that follows.
func parseM3U(data []byte) ([]core.Track, error) {
	var (
		tracks  []core.Track
		pending core.Track
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			pending = core.Track{}
			info := strings.TrimPrefix(line, "#EXTINF:")
			if i := strings.Index(info, ","); i >= 0 {
				info = info[i+1:]
			}
			if artist, title, ok := strings.Cut(info, " - "); ok {
				pending.Artist = strings.TrimSpace(artist)
				pending.Title = strings.TrimSpace(title)
			} else {
				pending.Title = strings.TrimSpace(info)
			}
		case strings.HasPrefix(line, "#"):
			continue
		default:
			pending.Audio = line
			if pending.Title == "" {
				base := filepath.Base(line)
				pending.Title = strings.TrimSuffix(base, filepath.Ext(base))
			}
			tracks = append(tracks, pending)
			pending = core.Track{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func resolve(dir, locator string) string {
	if locator == "" || filepath.IsAbs(locator) || strings.Contains(locator, "://") {
		return locator
	}
	return filepath.Join(dir, locator)
}

// Discover lists playlist files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, known := range Extensions {
			if ext == known {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
