package entities

import (
	"time"
)

type CueType string

const (
	CueNone            CueType = ""
	CueGermanWord      CueType = "german_word"
	CueEnglishWord     CueType = "english_word"
	CueGermanSentence  CueType = "german_sentence"
	CueEnglishSentence CueType = "english_sentence"
)

// CueTypes lists the cues in playback order.
var CueTypes = []CueType{
	CueGermanWord,
	CueEnglishWord,
	CueGermanSentence,
	CueEnglishSentence,
}

// ParseCueType validates a cue tag coming from a URL or CLI flag.
func ParseCueType(s string) (CueType, bool) {
	for _, cue := range CueTypes {
		if string(cue) == s {
			return cue, true
		}
	}
	return CueNone, false
}

// Language returns the BCP 47 language of the cue's spoken text.
func (c CueType) Language() string {
	switch c {
	case CueGermanWord, CueGermanSentence:
		return "de-DE"
	case CueEnglishWord, CueEnglishSentence:
		return "en-US"
	default:
		return ""
	}
}

// VocabularyRecord is one row of the vocabulary sheet.
// Index is the zero-based row number in the source file and never changes
// when other rows are filtered out.
type VocabularyRecord struct {
	Index           int    `json:"index"`
	GermanWord      string `json:"german_word"`
	EnglishWord     string `json:"english_word"`
	GermanSentence  string `json:"german_sentence"`
	EnglishSentence string `json:"english_sentence"`
}

// Text returns the text spoken by the given cue.
func (r VocabularyRecord) Text(cue CueType) string {
	switch cue {
	case CueGermanWord:
		return r.GermanWord
	case CueEnglishWord:
		return r.EnglishWord
	case CueGermanSentence:
		return r.GermanSentence
	case CueEnglishSentence:
		return r.EnglishSentence
	default:
		return ""
	}
}

// ExcludedWord marks a vocabulary record as learned.
type ExcludedWord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Index     int       `gorm:"column:record_index;uniqueIndex" json:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (ExcludedWord) TableName() string {
	return "excluded_words"
}

// Translation is the result of an English to German word lookup.
type Translation struct {
	EnglishWord     string `json:"english_word"`
	GermanWord      string `json:"german_word"`
	EnglishSentence string `json:"english_sentence"`
	GermanSentence  string `json:"german_sentence"`
}

// CueAudio describes the audio file backing one cue of a record.
type CueAudio struct {
	Cue        CueType `json:"cue"`
	Filename   string  `json:"filename"`
	Exists     bool    `json:"exists"`
	Size       int64   `json:"size,omitempty"`
	DurationMs int64   `json:"duration_ms,omitempty"`
}
