// Package audio locates and inspects the recorded cue files of vocabulary records.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"github.com/hajimehoshi/go-mp3"

	"github.com/mrlokans/wortschatz/internal/entities"
)

var (
	ErrInvalidCue = errors.New("invalid audio type")
	ErrNotFound   = errors.New("audio file not found")
)

// Library maps (record, cue) pairs to MP3 files in a single directory.
type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the audio directory.
func (l *Library) Dir() string {
	return l.dir
}

// Filename returns the file name for the cue of a record, e.g.
// "007_german_Haus.mp3" or "007_sentence_en_house.mp3".
func Filename(record entities.VocabularyRecord, cue entities.CueType) (string, error) {
	safeGerman := SafeName(record.GermanWord)
	safeEnglish := SafeName(record.EnglishWord)

	switch cue {
	case entities.CueGermanWord:
		return fmt.Sprintf("%03d_german_%s.mp3", record.Index, truncate(safeGerman, 20)), nil
	case entities.CueEnglishWord:
		return fmt.Sprintf("%03d_english_%s.mp3", record.Index, truncate(safeEnglish, 20)), nil
	case entities.CueGermanSentence:
		return fmt.Sprintf("%03d_sentence_de_%s.mp3", record.Index, truncate(safeGerman, 15)), nil
	case entities.CueEnglishSentence:
		return fmt.Sprintf("%03d_sentence_en_%s.mp3", record.Index, truncate(safeEnglish, 15)), nil
	default:
		return "", ErrInvalidCue
	}
}

// SafeName replaces every rune that is not a letter or digit with an underscore.
func SafeName(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			runes[i] = '_'
		}
	}
	return string(runes)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

// Path returns the absolute location of the cue file, whether or not it exists.
func (l *Library) Path(record entities.VocabularyRecord, cue entities.CueType) (string, error) {
	name, err := Filename(record, cue)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.dir, name), nil
}

// Lookup returns the path of an existing, non-empty cue file.
func (l *Library) Lookup(record entities.VocabularyRecord, cue entities.CueType) (string, error) {
	path, err := l.Path(record, cue)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", ErrNotFound
	}
	return path, nil
}

// Exists reports whether the cue has a non-empty audio file.
func (l *Library) Exists(record entities.VocabularyRecord, cue entities.CueType) bool {
	_, err := l.Lookup(record, cue)
	return err == nil
}

// Describe reports the state of all four cue files of a record.
// Durations are decoded from the MP3 stream; undecodable files report zero.
func (l *Library) Describe(record entities.VocabularyRecord) []entities.CueAudio {
	cues := make([]entities.CueAudio, 0, len(entities.CueTypes))
	for _, cue := range entities.CueTypes {
		name, _ := Filename(record, cue)
		item := entities.CueAudio{Cue: cue, Filename: name}

		if path, err := l.Lookup(record, cue); err == nil {
			item.Exists = true
			if info, err := os.Stat(path); err == nil {
				item.Size = info.Size()
			}
			if d, err := FileDuration(path); err == nil {
				item.DurationMs = d.Milliseconds()
			}
		}
		cues = append(cues, item)
	}
	return cues
}

// Missing returns the cues of a record that have text but no audio file.
func (l *Library) Missing(record entities.VocabularyRecord) []entities.CueType {
	var missing []entities.CueType
	for _, cue := range entities.CueTypes {
		if record.Text(cue) == "" {
			continue
		}
		if !l.Exists(record, cue) {
			missing = append(missing, cue)
		}
	}
	return missing
}

// FileDuration decodes the MP3 file at path and returns its playing time.
func FileDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Duration(f)
}

// Duration returns the playing time of an MP3 stream.
func Duration(r io.Reader) (time.Duration, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return 0, fmt.Errorf("decode mp3: %w", err)
	}

	length := dec.Length()
	if length < 0 {
		// Not seekable: count decoded bytes instead.
		n, err := io.Copy(io.Discard, dec)
		if err != nil {
			return 0, fmt.Errorf("decode mp3: %w", err)
		}
		length = n
	}

	// go-mp3 always produces 16-bit stereo PCM.
	const bytesPerFrame = 4
	frames := length / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(dec.SampleRate()), nil
}
