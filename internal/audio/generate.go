package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// Synthesizer produces an MP3 clip for the text of one cue.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, cue entities.CueType) ([]byte, error)
}

// MissingCue is a cue with text but without a usable audio file.
type MissingCue struct {
	Index    int              `json:"index"`
	Cue      entities.CueType `json:"cue"`
	Filename string           `json:"filename"`
	Text     string           `json:"text"`
}

// GenerateResult summarizes one generation run.
type GenerateResult struct {
	Created  int      `json:"created"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
	Checked  int      `json:"checked"`
	Complete int      `json:"complete"`
}

// Report lists the missing cues of all records whose index is at least start.
func (l *Library) Report(records []entities.VocabularyRecord, start int) []MissingCue {
	var missing []MissingCue
	for _, record := range records {
		if record.Index < start {
			continue
		}
		for _, cue := range l.Missing(record) {
			name, _ := Filename(record, cue)
			missing = append(missing, MissingCue{
				Index:    record.Index,
				Cue:      cue,
				Filename: name,
				Text:     record.Text(cue),
			})
		}
	}
	return missing
}

// Generate synthesizes every missing cue of the records whose index is at
// least start. A failed cue is counted and logged; the run continues with
// the next one. Only cancellation of ctx aborts the run.
func (l *Library) Generate(ctx context.Context, records []entities.VocabularyRecord, start int, synth Synthesizer) (GenerateResult, error) {
	var result GenerateResult

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return result, fmt.Errorf("create audio directory: %w", err)
	}

	for _, record := range records {
		if record.Index < start {
			continue
		}
		result.Checked++

		missing := l.Missing(record)
		if len(missing) == 0 {
			result.Complete++
			continue
		}

		for _, cue := range missing {
			if err := ctx.Err(); err != nil {
				log.Printf("[TASK] Audio generation cancelled: %d created, %d failed", result.Created, result.Failed)
				return result, err
			}

			name, err := l.generateCue(ctx, record, cue, synth)
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%03d %s: %v", record.Index, cue, err))
				log.Printf("[TASK] Error creating %s audio for %q: %v", cue, record.Text(cue), err)
				continue
			}
			result.Created++
			log.Printf("[TASK] Created: %s", name)
		}
	}

	return result, nil
}

func (l *Library) generateCue(ctx context.Context, record entities.VocabularyRecord, cue entities.CueType, synth Synthesizer) (string, error) {
	path, err := l.Path(record, cue)
	if err != nil {
		return "", err
	}

	clip, err := synth.Synthesize(ctx, record.Text(cue), cue)
	if err != nil {
		return "", err
	}
	if len(clip) == 0 {
		return "", fmt.Errorf("synthesizer returned no audio")
	}

	if err := writeFileAtomic(path, clip); err != nil {
		return "", err
	}
	return filepath.Base(path), nil
}

// writeFileAtomic writes data next to path and renames it into place so a
// reader never sees a partial clip.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.mp3")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
