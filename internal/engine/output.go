package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	spinerrors "github.com/tessro/spin/internal/errors"
)

// Output is the audio sink streamers are queued on. Lock guards every
// streamer that has been handed to Play.
type Output interface {
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// speakerOutput plays through the system audio device.
type speakerOutput struct{}

func newSpeakerOutput(rate beep.SampleRate, buffer time.Duration) (Output, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(buffer))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("%w: %v", spinerrors.ErrAudioDevice, speakerErr)
	}
	return speakerOutput{}, nil
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear()               { speaker.Clear() }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
