package translation

import (
	"context"
	"errors"
	"strings"

	"github.com/mrlokans/wortschatz/internal/entities"
)

var (
	// ErrEmptyWord is returned for blank input before any lookup happens.
	ErrEmptyWord = errors.New("english word is required")
	// ErrNotFound is returned when the translator has no answer for the word.
	ErrNotFound = errors.New("translation not found")
	// ErrUpstream marks failures of the translation backend itself.
	ErrUpstream = errors.New("translation service error")
)

// Client defines the interface for English to German translators.
type Client interface {
	Translate(ctx context.Context, englishWord string) (*entities.Translation, error)
	Name() string
}

// Normalize lowercases and trims a lookup word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
