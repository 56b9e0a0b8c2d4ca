package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

type AudioController struct {
	reader  VocabularyReader
	library AudioLibrary
}

func NewAudioController(reader VocabularyReader, library AudioLibrary) *AudioController {
	return &AudioController{
		reader:  reader,
		library: library,
	}
}

// GetAudio handles GET and HEAD /api/audio/:index/:type
// HEAD is the existence check used by the player; it never carries a body.
func (ac *AudioController) GetAudio(c *gin.Context) {
	head := c.Request.Method == http.MethodHead
	fail := func(status int, message string) {
		if head {
			abortStatus(c, status)
			return
		}
		respondError(c, status, message)
	}

	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	record, err := ac.reader.Get(index)
	if errors.Is(err, vocabulary.ErrNotFound) {
		fail(http.StatusNotFound, "Vocabulary entry not found")
		return
	}
	if err != nil {
		if head {
			abortStatus(c, http.StatusInternalServerError)
			return
		}
		respondInternalError(c, err, "load vocabulary for audio")
		return
	}

	cue, ok := entities.ParseCueType(c.Param("type"))
	if !ok {
		fail(http.StatusBadRequest, "Invalid audio type")
		return
	}

	path, err := ac.library.Lookup(*record, cue)
	if errors.Is(err, audio.ErrNotFound) {
		fail(http.StatusNotFound, "Audio file not found")
		return
	}
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", filepath.Base(path)))
	c.File(path)
}
