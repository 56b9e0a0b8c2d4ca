package translation

import (
	"context"
	"fmt"
	"unicode"

	"github.com/mrlokans/wortschatz/internal/entities"
)

var builtinDictionary = map[string]string{
	"house":   "Haus",
	"book":    "Buch",
	"table":   "Tisch",
	"chair":   "Stuhl",
	"water":   "Wasser",
	"food":    "Essen",
	"money":   "Geld",
	"time":    "Zeit",
	"day":     "Tag",
	"night":   "Nacht",
	"city":    "Stadt",
	"work":    "Arbeit",
	"person":  "Mensch",
	"man":     "Mann",
	"woman":   "Frau",
	"child":   "Kind",
	"parents": "Eltern",
	"brother": "Bruder",
	"sister":  "Schwester",
	"family":  "Familie",
}

// StaticClient translates from a small built-in dictionary. Unknown words get
// a placeholder so the learner can still save the entry and fix it later.
type StaticClient struct {
	entries map[string]string
}

func NewStaticClient() *StaticClient {
	return &StaticClient{entries: builtinDictionary}
}

func (c *StaticClient) Name() string {
	return "static"
}

func (c *StaticClient) Translate(_ context.Context, englishWord string) (*entities.Translation, error) {
	word := Normalize(englishWord)
	if word == "" {
		return nil, ErrEmptyWord
	}

	german, ok := c.entries[word]
	if !ok {
		german = fmt.Sprintf("%s (translation needed)", title(word))
	}

	return &entities.Translation{
		EnglishWord:     word,
		GermanWord:      german,
		EnglishSentence: fmt.Sprintf("I see a %s.", word),
		GermanSentence:  fmt.Sprintf("Ich sehe ein %s.", german),
	}, nil
}

// title upper-cases the first letter of every word.
func title(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if !prevLetter {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}
