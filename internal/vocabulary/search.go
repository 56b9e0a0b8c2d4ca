package vocabulary

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/mrlokans/wortschatz/internal/entities"
)

var initAlgo sync.Once

// Match is a search hit with its fuzzy score.
type Match struct {
	Record entities.VocabularyRecord `json:"record"`
	Score  int                       `json:"score"`
}

// Search fuzzy-matches query against the German and English words of each
// record and returns the best matches first. A limit of zero returns all hits.
func Search(records []entities.VocabularyRecord, query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	initAlgo.Do(func() { algo.Init("default") })

	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(16384, 1024)

	var matches []Match
	for _, record := range records {
		best := -1
		for _, text := range []string{record.GermanWord, record.EnglishWord} {
			if score := fuzzyScore(text, pattern, slab); score > best {
				best = score
			}
		}
		if best >= 0 {
			matches = append(matches, Match{Record: record, Score: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Record.Index < matches[j].Record.Index
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// fuzzyScore returns the fzf v2 score of pattern in text, or -1 if it does not match.
func fuzzyScore(text string, pattern []rune, slab *util.Slab) int {
	if text == "" {
		return -1
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, slab)
	if result.Start < 0 {
		return -1
	}
	return result.Score
}
