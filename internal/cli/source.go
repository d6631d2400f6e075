package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessro/spin/internal/core"
	spinerrors "github.com/tessro/spin/internal/errors"
	"github.com/tessro/spin/internal/playlist"
)

// resolvePlaylist picks the playlist to use: the argument, then the
// configured playlist, then the built-in sampler.
func resolvePlaylist(args []string, configured string) (*core.Playlist, error) {
	path := configured
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return playlist.Default(), nil
	}

	pl, err := playlist.Load(expandHome(path))
	if err != nil {
		switch {
		case errors.Is(err, spinerrors.ErrPlaylistNotFound):
			return nil, spinerrors.WithSuggestion(err, "Check the path, or run 'spin config pick <dir>' to choose a playlist")
		case errors.Is(err, spinerrors.ErrUnsupportedFormat):
			return nil, spinerrors.WithSuggestion(err, "Use one of: "+strings.Join(playlist.Extensions, " "))
		}
		return nil, err
	}
	return pl, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
