package playlist

import "github.com/tessro/spin/internal/core"

// DefaultName is the name of the built-in playlist.
const DefaultName = "Neo Soul Sampler"

var defaultTracks = []core.Track{
	{
		Title:  "Nothing even Matters",
		Artist: "Lauryn Hill",
		Cover:  "imgs/download.jpeg",
		Audio:  "audio/Nothing Even Matters.mp3",
	},
	{
		Title:  "Didn't Cha Know",
		Artist: "Erykah Badu",
		Cover:  "imgs/Sleeve-for-Mamas-Gun-by-E-007.avif",
		Audio:  "audio/Erykah Badu - Didn't Cha Know.mp3",
	},
	{
		Title:  "Through The Wire",
		Artist: "Kanye West",
		Cover:  "imgs/Kanyewest_collegedropout.jpg",
		Audio:  "audio/Through the Wire (Clean) - Kanye West.mp3",
	},
}

// Default returns the built-in playlist, used when none is configured.
// Its locators are relative to the working directory.
func Default() *core.Playlist {
	pl, err := core.NewPlaylist(DefaultName, defaultTracks)
	if err != nil {
		panic(err)
	}
	return pl
}
