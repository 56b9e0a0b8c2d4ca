package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// VocabularyReader provides read access to the vocabulary sheet.
type VocabularyReader interface {
	List() ([]entities.VocabularyRecord, error)
	Get(index int) (*entities.VocabularyRecord, error)
}

// ExcludedStore persists the learned-word marks.
type ExcludedStore interface {
	ListExcluded() ([]int, error)
	AddExcluded(index int) (bool, error)
	RemoveExcluded(index int) (bool, error)
	ClearExcluded() (int64, error)
}

// AudioLibrary locates and describes cue audio files.
type AudioLibrary interface {
	Lookup(record entities.VocabularyRecord, cue entities.CueType) (string, error)
	Describe(record entities.VocabularyRecord) []entities.CueAudio
}

// Translator looks up an English word.
type Translator interface {
	Translate(ctx context.Context, englishWord string) (*entities.Translation, error)
	Name() string
}

// TaskQueue enqueues background work and reports its status.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks a backing store.
type Pinger interface {
	Ping() error
}
