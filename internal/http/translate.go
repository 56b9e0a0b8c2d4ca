package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wortschatz/internal/translation"
)

// translateTimeout bounds a single upstream lookup.
const translateTimeout = 30 * time.Second

type TranslateController struct {
	translator Translator
}

func NewTranslateController(translator Translator) *TranslateController {
	return &TranslateController{translator: translator}
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	EnglishWord string `json:"english_word"`
}

// Translate handles POST /api/translate
func (tc *TranslateController) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	word := strings.TrimSpace(req.EnglishWord)
	if word == "" {
		respondBadRequest(c, "english_word is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), translateTimeout)
	defer cancel()

	result, err := tc.translator.Translate(ctx, word)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, translation.ErrEmptyWord):
		respondBadRequest(c, "english_word is required")
	case errors.Is(err, translation.ErrNotFound):
		respondNotFound(c, "Translation")
	default:
		respondInternalError(c, err, tc.translator.Name()+" translate")
	}
}
