package sequencer

import (
	"context"
	"time"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// Provider is the part of the data provider the controller depends on.
type Provider interface {
	AudioExists(ctx context.Context, index int, cue entities.CueType) (bool, error)
	FetchAudio(ctx context.Context, index int, cue entities.CueType) ([]byte, error)
	AddExcluded(ctx context.Context, index int) error
	RemoveExcluded(ctx context.Context, index int) error
}

// Output starts playback of an encoded clip. Play must not block until the
// clip ends; completion is reported through the returned handle.
type Output interface {
	Play(ctx context.Context, clip []byte, rate float64) (AudioHandle, error)
}

// AudioHandle is a clip that is playing or has finished.
type AudioHandle interface {
	// Done is closed when playback ends, fails, or is stopped.
	Done() <-chan struct{}
	// Err returns the playback error once Done is closed.
	Err() error
	// Stop halts playback and releases the clip. It is safe to call more than once.
	Stop()
}

// Clock schedules the pauses between cues.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
