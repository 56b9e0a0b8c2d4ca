package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

// ExcludedController manages the set of records marked as learned.
type ExcludedController struct {
	store  ExcludedStore
	reader VocabularyReader
}

func NewExcludedController(store ExcludedStore, reader VocabularyReader) *ExcludedController {
	return &ExcludedController{
		store:  store,
		reader: reader,
	}
}

// ListExcluded handles GET /api/excluded
func (ec *ExcludedController) ListExcluded(c *gin.Context) {
	indexes, err := ec.store.ListExcluded()
	if err != nil {
		respondInternalError(c, err, "list excluded")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"excluded": indexes,
		"count":    len(indexes),
	})
}

// AddExcluded handles POST /api/excluded/:index
// Returns 201 when the mark is new, 200 when it already existed.
func (ec *ExcludedController) AddExcluded(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	if _, err := ec.reader.Get(index); err != nil {
		if errors.Is(err, vocabulary.ErrNotFound) {
			respondNotFound(c, "Vocabulary entry")
			return
		}
		respondInternalError(c, err, "check vocabulary entry")
		return
	}

	created, err := ec.store.AddExcluded(index)
	if err != nil {
		respondInternalError(c, err, "add excluded")
		return
	}

	if created {
		respondCreated(c, "Marked as learned", gin.H{"index": index})
		return
	}
	respondSuccess(c, "Already marked as learned", gin.H{"index": index})
}

// RemoveExcluded handles DELETE /api/excluded/:index
// Removing an index that was never marked is not an error.
func (ec *ExcludedController) RemoveExcluded(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	removed, err := ec.store.RemoveExcluded(index)
	if err != nil {
		respondInternalError(c, err, "remove excluded")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index":   index,
		"removed": removed,
	})
}

// ClearExcluded handles DELETE /api/excluded
// Puts every learned word back into the list.
func (ec *ExcludedController) ClearExcluded(c *gin.Context) {
	removed, err := ec.store.ClearExcluded()
	if err != nil {
		respondInternalError(c, err, "clear excluded")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
	})
}
