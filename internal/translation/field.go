package translation

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// ErrLookupInFlight is returned when a submission arrives while the previous
// lookup of the same field has not finished.
var ErrLookupInFlight = errors.New("translation already in progress")

// Translator is the lookup a Field submits to.
type Translator interface {
	Translate(ctx context.Context, englishWord string) (*entities.Translation, error)
}

// Field is the client side of the translate input box. It rejects blank
// input without calling the translator and lets only one lookup run at a time.
type Field struct {
	translator Translator
	inFlight   atomic.Bool
}

func NewField(translator Translator) *Field {
	return &Field{translator: translator}
}

// Busy reports whether a lookup is outstanding.
func (f *Field) Busy() bool {
	return f.inFlight.Load()
}

// Submit looks up input. It is safe to call from several goroutines; calls
// made while a lookup is running fail with ErrLookupInFlight.
func (f *Field) Submit(ctx context.Context, input string) (*entities.Translation, error) {
	word := strings.TrimSpace(input)
	if word == "" {
		return nil, ErrEmptyWord
	}

	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrLookupInFlight
	}
	defer f.inFlight.Store(false)

	return f.translator.Translate(ctx, word)
}

// Category groups lookup failures for the user message.
type Category string

const (
	CategoryNone         Category = ""
	CategoryInput        Category = "input"
	CategoryConnectivity Category = "connectivity"
	CategoryNotFound     Category = "not_found"
	CategoryServer       Category = "server"
)

// Classify maps a lookup error to its category. Errors that are neither
// input, not-found nor upstream failures are treated as connectivity problems.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrEmptyWord), errors.Is(err, ErrLookupInFlight):
		return CategoryInput
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrUpstream):
		return CategoryServer
	default:
		return CategoryConnectivity
	}
}

// Message returns the status line shown for a failed lookup.
func Message(err error) string {
	switch Classify(err) {
	case CategoryNone:
		return ""
	case CategoryInput:
		if errors.Is(err, ErrLookupInFlight) {
			return "Translation already in progress"
		}
		return "Please enter an English word"
	case CategoryNotFound:
		return "Translation not found. Please try another word."
	case CategoryServer:
		return "Server error. Please try again later."
	default:
		return "Cannot connect to the server. Is it running?"
	}
}
