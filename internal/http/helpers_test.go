package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseIndexParam(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		value    string
		expected int
		ok       bool
		code     int
	}{
		{"valid", http.MethodGet, "12", 12, true, http.StatusOK},
		{"zero", http.MethodGet, "0", 0, true, http.StatusOK},
		{"negative parses", http.MethodGet, "-1", -1, true, http.StatusOK},
		{"not a number", http.MethodGet, "abc", 0, false, http.StatusBadRequest},
		{"not a number on HEAD", http.MethodHead, "abc", 0, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(tt.method, "/", nil)
			c.Params = gin.Params{{Key: "index", Value: tt.value}}

			index, ok := parseIndexParam(c, "index")

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, index)
			assert.Equal(t, tt.code, w.Code)
			if tt.method == http.MethodHead {
				assert.Empty(t, w.Body.String())
			} else if !tt.ok {
				assert.Contains(t, w.Body.String(), "invalid index")
			}
		})
	}
}

func TestParseLimitQuery(t *testing.T) {
	tests := []struct {
		query    string
		expected int
	}{
		{"", 20},
		{"?limit=5", 5},
		{"?limit=0", 20},
		{"?limit=-3", 20},
		{"?limit=abc", 20},
		{"?limit=500", 100},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			assert.Equal(t, tt.expected, parseLimitQuery(c, 20, 100))
		})
	}
}

func TestRespondHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondNotFound(c, "Widget")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Widget not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondInternalError(c, errBroken, "test")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "broken")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondCreated(c, "made", gin.H{"index": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"made","data":{"index":1}}`, w.Body.String())
}
