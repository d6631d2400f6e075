package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/engine"
	spinerrors "github.com/tessro/spin/internal/errors"
	"github.com/tessro/spin/internal/player"
	"github.com/tessro/spin/internal/tui"
	"github.com/tessro/spin/internal/tui/styles"
	"github.com/tessro/spin/internal/wizard"
)

var (
	playShuffle bool
	playVolume  int
	playRepeat  string
)

var playCmd = &cobra.Command{
	Use:   "play [playlist]",
	Short: "Play a playlist",
	Long: `Open the player on a playlist file.

Without an argument, plays the configured playlist. If none is configured
and playlist files exist in the current directory, a picker is shown;
otherwise the built-in sampler is used.

Keyboard shortcuts:
  Space        Play/Pause
  n / p        Next / previous track
  s            Toggle shuffle
  r            Cycle repeat (off, all, track)
  + / -        Volume up/down
  0-9          Seek to 0%-90%
  j/k, Enter   Move cursor, play selected track
  ?            Help
  q, Ctrl+C    Quit

Click the progress bar to seek.

Examples:
  spin play                      # Configured playlist or the sampler
  spin play ~/music/evening.toml # Play a specific playlist
  spin play list.m3u --shuffle --repeat all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "Start with shuffle enabled")
	playCmd.Flags().IntVar(&playVolume, "volume", 0, "Initial volume (0-100)")
	playCmd.Flags().StringVar(&playRepeat, "repeat", "", "Repeat mode (off, all, track)")
	rootCmd.AddCommand(playCmd)
}

// playSettings are the startup settings after applying flags over config.
type playSettings struct {
	volume  float64
	shuffle bool
	repeat  core.RepeatMode
}

func resolvePlaySettings(cmd *cobra.Command) (playSettings, error) {
	s := playSettings{
		volume:  cfg.Player.VolumeLevel(),
		shuffle: cfg.Player.Shuffle || playShuffle,
	}

	if cmd.Flags().Changed("volume") {
		if playVolume < 0 || playVolume > 100 {
			return s, fmt.Errorf("volume must be between 0 and 100, got %d", playVolume)
		}
		s.volume = float64(playVolume) / 100
	}

	repeat := cfg.Player.Repeat
	if cmd.Flags().Changed("repeat") {
		repeat = playRepeat
	}
	mode, ok := core.ParseRepeatMode(repeat)
	if !ok {
		return s, spinerrors.WithSuggestion(
			fmt.Errorf("invalid repeat mode %q", repeat),
			"Use one of: off, all, track",
		)
	}
	s.repeat = mode

	return s, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := resolvePlaySettings(cmd)
	if err != nil {
		return err
	}

	args, err = promptForPlaylist(args)
	if err != nil {
		return err
	}

	pl, err := resolvePlaylist(args, cfg.Player.Playlist)
	if err != nil {
		return err
	}

	eng, err := engine.New(engine.Options{
		SampleRate:   cfg.Engine.SampleRate,
		Buffer:       cfg.Engine.Buffer(),
		TickInterval: cfg.Engine.Tick(),
		Logger:       logger,
	})
	if err != nil {
		return spinerrors.WithSuggestion(err, "Check that an audio output device is available")
	}
	defer func() { _ = eng.Close() }()

	styles.ApplyTheme(cfg.TUI.Theme)
	display := tui.NewDisplay(time.Duration(cfg.TUI.StatusTimeout) * time.Millisecond)

	ctrl := player.New(pl, eng, display,
		player.WithLogger(logger),
		player.WithRepeat(settings.repeat),
	)
	eng.SetVolume(settings.volume)
	if settings.shuffle {
		ctrl.ToggleShuffle()
	}

	logger.Info().
		Str("playlist", pl.Name()).
		Int("tracks", pl.Len()).
		Float64("volume", settings.volume).
		Bool("shuffle", settings.shuffle).
		Str("repeat", string(settings.repeat)).
		Msg("starting player")

	return tui.Run(ctrl, display, eng)
}

// promptForPlaylist offers the playlists in the working directory when
// nothing was named on the command line or in the config.
func promptForPlaylist(args []string) ([]string, error) {
	if !wizard.NeedsPlaylist(args, cfg.Player.Playlist) || JSONOutput() {
		return args, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return args, nil
	}
	entries, err := wizard.Scan(dir)
	if err != nil || len(entries) == 0 {
		return args, nil
	}

	interactive := wizard.NewInteractive()
	interactive.SetEntries(entries, "")
	selected, err := interactive.PromptPlaylist()
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return args, nil
	}
	return []string{selected.Path}, nil
}
