package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudioController_GetAudio(t *testing.T) {
	env := setupTestEnv(t)
	env.writeAudio(t, "000_german_Haus.mp3", "ID3-audio-bytes")
	env.writeAudio(t, "001_english_book.mp3", "")

	t.Run("serves the file inline", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/audio/0/german_word", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
		assert.Equal(t, "inline; filename=000_german_Haus.mp3", w.Header().Get("Content-Disposition"))
		assert.Equal(t, "ID3-audio-bytes", w.Body.String())
	})

	t.Run("HEAD reports existence without a body", func(t *testing.T) {
		w := env.do(http.MethodHead, "/api/audio/0/german_word", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())

		w = env.do(http.MethodHead, "/api/audio/0/english_word", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	tests := []struct {
		name    string
		path    string
		code    int
		message string
	}{
		{"index out of range", "/api/audio/7/german_word", http.StatusNotFound, "Vocabulary entry not found"},
		{"negative index", "/api/audio/-1/german_word", http.StatusNotFound, "Vocabulary entry not found"},
		{"range is checked before type", "/api/audio/7/bogus", http.StatusNotFound, "Vocabulary entry not found"},
		{"unknown type", "/api/audio/0/bogus", http.StatusBadRequest, "Invalid audio type"},
		{"missing file", "/api/audio/0/german_sentence", http.StatusNotFound, "Audio file not found"},
		{"zero-byte file", "/api/audio/1/english_word", http.StatusNotFound, "Audio file not found"},
		{"non-numeric index", "/api/audio/x/german_word", http.StatusBadRequest, "invalid index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, tt.path, "")
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, w.Body.String())

			w = env.do(http.MethodHead, tt.path, "")
			assert.Equal(t, tt.code, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}
