package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/entities"
)

// RecordLister provides the current vocabulary list.
type RecordLister interface {
	List() ([]entities.VocabularyRecord, error)
}

// AudioGenerator synthesizes missing cue files.
type AudioGenerator interface {
	Generate(ctx context.Context, records []entities.VocabularyRecord, start int, synth audio.Synthesizer) (audio.GenerateResult, error)
}

// generateAudioTimeout bounds one generation run regardless of queue config.
const generateAudioTimeout = DefaultTaskTimeout

// GenerateMissingAudioTask synthesizes every missing cue file of the records
// whose index is at least StartIndex.
type GenerateMissingAudioTask struct {
	StartIndex int `json:"start_index"`
}

func (t GenerateMissingAudioTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "generate_missing_audio",
		MaxAttempts: DefaultMaxRetries,
		Backoff:     DefaultRetryDelay,
		Timeout:     generateAudioTimeout,
		Retention: &backlite.Retention{
			Duration:   DefaultRetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// GenerateMissingAudioProcessor creates the processor for GenerateMissingAudioTask.
// Individual cue failures are logged by the generator and do not fail the task.
func GenerateMissingAudioProcessor(records RecordLister, generator AudioGenerator, synth audio.Synthesizer) backlite.QueueProcessor[GenerateMissingAudioTask] {
	return func(ctx context.Context, task GenerateMissingAudioTask) error {
		list, err := records.List()
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}

		result, err := generator.Generate(ctx, list, task.StartIndex, synth)
		if err != nil {
			return fmt.Errorf("generate audio from %d: %w", task.StartIndex, err)
		}

		log.Printf("[TASK] Audio generation done: %d records checked, %d created, %d failed",
			result.Checked, result.Created, result.Failed)
		return nil
	}
}

func NewGenerateMissingAudioQueue(records RecordLister, generator AudioGenerator, synth audio.Synthesizer) backlite.Queue {
	return backlite.NewQueue(GenerateMissingAudioProcessor(records, generator, synth))
}
