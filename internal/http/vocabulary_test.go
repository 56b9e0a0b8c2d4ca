package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

func TestVocabularyController_ListWords(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/api/vocabulary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var records []entities.VocabularyRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, "Haus", records[0].GermanWord)
	assert.Equal(t, 3, records[2].Index, "incomplete rows keep their index")
}

func TestVocabularyController_GetWord(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("returns the row", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/vocabulary/1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var record entities.VocabularyRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, "Buch", record.GermanWord)
		assert.Equal(t, "I am reading a book.", record.EnglishSentence)
	})

	t.Run("incomplete rows are still addressable", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/vocabulary/2", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"german_word":""`)
	})

	for _, path := range []string{"/api/vocabulary/4", "/api/vocabulary/-1"} {
		t.Run("out of range "+path, func(t *testing.T) {
			w := env.do(http.MethodGet, path, "")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"vocabulary entry not found"}`, w.Body.String())
		})
	}

	t.Run("non-numeric index", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/vocabulary/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVocabularyController_SearchWords(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("matches German and English words", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/vocabulary/search?q=tisch", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Query   string             `json:"query"`
			Results []vocabulary.Match `json:"results"`
			Total   int                `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotEmpty(t, response.Results)
		assert.Equal(t, "Tisch", response.Results[0].Record.GermanWord)
		assert.Equal(t, len(response.Results), response.Total)

		w = env.do(http.MethodGet, "/api/vocabulary/search?q=book", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotEmpty(t, response.Results)
		assert.Equal(t, "Buch", response.Results[0].Record.GermanWord)
	})

	t.Run("requires a query", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/vocabulary/search?q=%20", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVocabularyController_GetAudioManifest(t *testing.T) {
	env := setupTestEnv(t)
	env.writeAudio(t, "000_german_Haus.mp3", "not really mp3")
	env.writeAudio(t, "000_english_house.mp3", "")

	w := env.do(http.MethodGet, "/api/vocabulary/0/audio", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Index int                 `json:"index"`
		Cues  []entities.CueAudio `json:"cues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Cues, 4)

	assert.Equal(t, entities.CueGermanWord, response.Cues[0].Cue)
	assert.True(t, response.Cues[0].Exists)
	assert.Equal(t, int64(len("not really mp3")), response.Cues[0].Size)
	assert.Zero(t, response.Cues[0].DurationMs, "undecodable files report no duration")

	assert.Equal(t, "000_english_house.mp3", response.Cues[1].Filename)
	assert.False(t, response.Cues[1].Exists, "empty files do not count")
	assert.Equal(t, "000_sentence_de_Haus.mp3", response.Cues[2].Filename)
	assert.Equal(t, "000_sentence_en_house.mp3", response.Cues[3].Filename)

	w = env.do(http.MethodGet, "/api/vocabulary/9/audio", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVocabularyController_LoadError(t *testing.T) {
	router := NewRouter(RouterConfig{
		Vocabulary: vocabulary.NewSource(t.TempDir() + "/missing.csv"),
	})

	w := performRequest(router, http.MethodGet, "/api/vocabulary")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error loading vocabulary data")
}
