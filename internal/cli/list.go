package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/spin/internal/core"
	"github.com/tessro/spin/internal/engine"
	spinerrors "github.com/tessro/spin/internal/errors"
)

var listCmd = &cobra.Command{
	Use:   "list [playlist]",
	Short: "List the tracks in a playlist",
	Long: `List the tracks in a playlist with their length and file size.

Tracks whose audio cannot be opened are marked ○ and summarised at the end.

Examples:
  spin list                      # Configured playlist or the sampler
  spin list ~/music/evening.yaml
  spin list evening.csv --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// trackInfo describes one playlist entry for output.
type trackInfo struct {
	Index     int     `json:"index"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	Audio     string  `json:"audio"`
	Duration  float64 `json:"duration"`
	Size      int64   `json:"size"`
	Available bool    `json:"available"`
}

type listOutput struct {
	Name   string      `json:"name"`
	Tracks []trackInfo `json:"tracks"`
	Errors []string    `json:"errors,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	pl, err := resolvePlaylist(args, cfg.Player.Playlist)
	if err != nil {
		return err
	}

	result := inspectTracks(pl)
	logger.Debug().Str("playlist", pl.Name()).Int("unavailable", len(result.Errors)).Msg("listed playlist")

	if GetOutputMode() == OutputJSON {
		out := listOutput{Name: pl.Name(), Tracks: result.Data}
		for _, e := range result.Errors {
			out.Errors = append(out.Errors, e.Error())
		}
		return printJSON(cmd.OutOrStdout(), out)
	}

	writeTrackTable(cmd.OutOrStdout(), pl.Name(), result.Data)
	if result.HasErrors() {
		fmt.Fprintf(os.Stderr, "\n%d of %d tracks unavailable: %s\n", len(result.Errors), pl.Len(), result.ErrorSummary())
	}
	return nil
}

// inspectTracks probes every track's audio. Unreadable tracks are kept in
// the listing and reported as errors.
func inspectTracks(pl *core.Playlist) *spinerrors.PartialResult[[]trackInfo] {
	result := &spinerrors.PartialResult[[]trackInfo]{}

	for i, t := range pl.Tracks() {
		info := trackInfo{
			Index:  i + 1,
			Title:  t.Title,
			Artist: t.Artist,
			Audio:  t.Audio,
		}

		d, err := engine.Probe(t.Audio)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %w", t.Title, err))
		} else {
			info.Duration = d.Seconds()
			info.Available = true
		}

		if fi, err := os.Stat(t.Audio); err == nil {
			info.Size = fi.Size()
		}

		result.Data = append(result.Data, info)
	}

	return result
}

func writeTrackTable(w io.Writer, name string, tracks []trackInfo) {
	fmt.Fprintf(w, "%s\n\n", name)

	table := NewTableWriter(w, "", "#", "TITLE", "ARTIST", "LENGTH", "SIZE")
	for _, t := range tracks {
		length := "-"
		if t.Available {
			length = core.FormatTime(t.Duration)
		}
		size := "-"
		if t.Size > 0 {
			size = humanize.Bytes(uint64(t.Size))
		}
		table.Row(
			StatusIcon(t.Available),
			strconv.Itoa(t.Index),
			TruncateString(t.Title, 40),
			TruncateString(t.Artist, 30),
			length,
			size,
		)
	}
	table.Flush()
}
