package core

// EventKind identifies a playback engine notification.
type EventKind int

const (
	// EventMetadataReady fires once per load, when the duration is known.
	EventMetadataReady EventKind = iota
	// EventTimeUpdate fires periodically while playing.
	EventTimeUpdate
	// EventEnded fires when the loaded source plays to completion.
	EventEnded
	// EventError fires when the loaded source fails mid-stream.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventMetadataReady:
		return "metadata"
	case EventTimeUpdate:
		return "timeupdate"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is a notification emitted by an Engine. Generation identifies the
// Load call the event belongs to.
type Event struct {
	Kind       EventKind
	Generation uint64
	Position   float64
	Duration   float64
	Err        error
}

// EventSink receives engine events. Implementations must not block for long.
type EventSink func(Event)

// Engine defines the interface for media decoding and playback.
type Engine interface {
	// Load replaces the current source and returns the generation stamped
	// on every event that belongs to it. The source starts paused.
	Load(src string) (uint64, error)
	Play() error
	Pause() error

	// Seek moves the playback position, in seconds.
	Seek(seconds float64) error
	Position() float64
	// Duration returns the total length in seconds, or NaN if unknown.
	Duration() float64

	// SetVolume sets the output level (0.0-1.0).
	SetVolume(level float64)
	Volume() float64

	// Subscribe replaces the event sink.
	Subscribe(sink EventSink)
}
