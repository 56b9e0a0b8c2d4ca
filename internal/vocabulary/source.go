// Package vocabulary reads the vocabulary sheet.
//
// The sheet is a headerless CSV file with four columns: German word,
// English word, German example sentence, English example sentence. The row
// number (zero-based) is the record's stable identifier.
package vocabulary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/wortschatz/internal/entities"
)

// ErrNotFound is returned when a row index is outside the sheet.
var ErrNotFound = errors.New("vocabulary entry not found")

// Source loads records from a CSV file and reloads them when the file changes.
type Source struct {
	path string

	mu      sync.Mutex
	rows    []row
	modTime time.Time
	size    int64
}

type row struct {
	record entities.VocabularyRecord
	valid  bool
}

// NewSource creates a source for the CSV file at path. The file is read lazily.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the CSV file path.
func (s *Source) Path() string {
	return s.path
}

// List returns all complete records in sheet order. Rows without a German or
// English word are skipped but keep their index for the rows that follow.
func (s *Source) List() ([]entities.VocabularyRecord, error) {
	rows, err := s.load()
	if err != nil {
		return nil, err
	}

	records := make([]entities.VocabularyRecord, 0, len(rows))
	for _, r := range rows {
		if r.valid {
			records = append(records, r.record)
		}
	}
	return records, nil
}

// Get returns the row at index, including incomplete rows.
func (s *Source) Get(index int) (*entities.VocabularyRecord, error) {
	rows, err := s.load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(rows) {
		return nil, ErrNotFound
	}
	record := rows[index].record
	return &record, nil
}

// Count returns the number of rows in the sheet, including incomplete ones.
func (s *Source) Count() (int, error) {
	rows, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *Source) load() ([]row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("error loading vocabulary data: %w", err)
	}

	if s.rows != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return s.rows, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("error loading vocabulary data: %w", err)
	}
	defer f.Close()

	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("error loading vocabulary data: %w", err)
	}

	s.rows = rows
	s.modTime = info.ModTime()
	s.size = info.Size()
	return rows, nil
}

// parse reads a headerless four-column vocabulary sheet.
func parse(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []row
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := entities.VocabularyRecord{
			Index:           len(rows),
			GermanWord:      cell(fields, 0),
			EnglishWord:     cell(fields, 1),
			GermanSentence:  cell(fields, 2),
			EnglishSentence: cell(fields, 3),
		}
		rows = append(rows, row{
			record: record,
			valid:  record.GermanWord != "" && record.EnglishWord != "",
		})
	}
	return rows, nil
}

// cell returns the trimmed column value, treating "nan" as empty.
func cell(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	v := strings.TrimSpace(fields[i])
	if v == "nan" {
		return ""
	}
	return v
}
