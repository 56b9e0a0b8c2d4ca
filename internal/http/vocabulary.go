package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

type VocabularyController struct {
	reader  VocabularyReader
	library AudioLibrary
}

func NewVocabularyController(reader VocabularyReader, library AudioLibrary) *VocabularyController {
	return &VocabularyController{
		reader:  reader,
		library: library,
	}
}

// ListWords handles GET /api/vocabulary
// Returns every complete record in sheet order.
func (vc *VocabularyController) ListWords(c *gin.Context) {
	records, err := vc.reader.List()
	if err != nil {
		respondLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetWord handles GET /api/vocabulary/:index
func (vc *VocabularyController) GetWord(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	record, err := vc.reader.Get(index)
	if errors.Is(err, vocabulary.ErrNotFound) {
		respondNotFound(c, "vocabulary entry")
		return
	}
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// SearchWords handles GET /api/vocabulary/search?q=
// Fuzzy-matches the query against German and English words.
func (vc *VocabularyController) SearchWords(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	records, err := vc.reader.List()
	if err != nil {
		respondLoadError(c, err)
		return
	}

	matches := vocabulary.Search(records, query, parseLimitQuery(c, 20, 100))
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": matches,
		"total":   len(matches),
	})
}

// GetAudioManifest handles GET /api/vocabulary/:index/audio
// Lists the four cue files of a record with existence and duration.
func (vc *VocabularyController) GetAudioManifest(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	record, err := vc.reader.Get(index)
	if errors.Is(err, vocabulary.ErrNotFound) {
		respondNotFound(c, "vocabulary entry")
		return
	}
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index": record.Index,
		"cues":  vc.library.Describe(*record),
	})
}

// respondLoadError reports an unreadable vocabulary sheet. The message names
// the sheet problem so the player can show it on its error screen.
func respondLoadError(c *gin.Context, err error) {
	log.Printf("Vocabulary load failed: %v", err)
	respondError(c, http.StatusInternalServerError, err.Error())
}
