// Package tts synthesizes cue audio for vocabulary records.
package tts

import (
	"context"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// Synthesizer turns the text of one cue into an encoded MP3 clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, cue entities.CueType) ([]byte, error)
	Close() error
}

// Voices selects the speaker per language.
type Voices struct {
	German  string
	English string
}

// DefaultVoices returns the SpeechKit voices used when none are configured.
func DefaultVoices() Voices {
	return Voices{
		German:  "lea",
		English: "john",
	}
}

func (v Voices) forCue(cue entities.CueType) string {
	if cue.Language() == "de-DE" {
		return v.German
	}
	return v.English
}
