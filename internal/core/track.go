package core

// Track represents a playable audio track.
type Track struct {
	Title  string `json:"title" toml:"title" yaml:"title" csv:"title"`
	Artist string `json:"artist" toml:"artist" yaml:"artist" csv:"artist"`
	Cover  string `json:"cover" toml:"cover" yaml:"cover" csv:"cover"`
	Audio  string `json:"audio" toml:"audio" yaml:"audio" csv:"audio"`
}

// Label returns "Title — Artist", or just the title when the artist is unknown.
func (t Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Title + " — " + t.Artist
}
