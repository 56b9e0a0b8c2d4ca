package sequencer

import (
	"time"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// Phase is the controller's state machine phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSequencing
	PhaseAutoplaying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSequencing:
		return "Sequencing"
	case PhaseAutoplaying:
		return "Autoplaying"
	default:
		return "Unknown"
	}
}

// State is a snapshot of the playback state.
type State struct {
	CurrentIndex     int
	IsPlaying        bool
	IsAutoPlay       bool
	CurrentAudioType entities.CueType
	Phase            Phase
}

// Step is one cue of the per-record drill.
type Step struct {
	Cue   entities.CueType
	Rate  float64
	Pause time.Duration
}

// DefaultSlowRate is the playback rate of the German sentence.
const DefaultSlowRate = 0.75

// Steps returns the fixed drill: German word, English word, German sentence
// slowed down to slowRate, English sentence.
func Steps(slowRate float64) []Step {
	if slowRate <= 0 {
		slowRate = DefaultSlowRate
	}
	return []Step{
		{Cue: entities.CueGermanWord, Rate: 1.0, Pause: 500 * time.Millisecond},
		{Cue: entities.CueEnglishWord, Rate: 1.0, Pause: 500 * time.Millisecond},
		{Cue: entities.CueGermanSentence, Rate: slowRate, Pause: 500 * time.Millisecond},
		{Cue: entities.CueEnglishSentence, Rate: 1.0, Pause: 1000 * time.Millisecond},
	}
}
