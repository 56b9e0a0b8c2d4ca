package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(router *gin.Engine, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUIController_Index(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("API clients get the welcome message", func(t *testing.T) {
		w := env.do(http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"German Vocabulary API"}`, w.Body.String())
	})

	t.Run("browsers get the word table", func(t *testing.T) {
		_, err := env.excluded.AddExcluded(1)
		require.NoError(t, err)

		w := env.do(http.MethodGet, "/", "", "Accept", "text/html,application/xhtml+xml")

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "3 words, 1 learned")
		assert.Contains(t, body, "Tisch")
		assert.Contains(t, body, `class="learned"`)
	})
}

func TestLoadTemplates_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`{{define "index"}}custom {{.Total}}{{end}}`), 0644))

	tmpl := loadTemplates(dir)

	require.NotNil(t, tmpl.Lookup("index"))
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index", gin.H{"Total": 7})
	})

	w := performRequest(router, http.MethodGet, "/")
	assert.Equal(t, "custom 7", w.Body.String())
}
