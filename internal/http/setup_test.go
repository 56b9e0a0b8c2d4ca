package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/database"
	"github.com/mrlokans/wortschatz/internal/database/excluded"
	"github.com/mrlokans/wortschatz/internal/translation"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSheet = `Haus,house,Das Haus ist groß.,The house is big.
Buch,book,Ich lese ein Buch.,I am reading a book.
,missing,Satz,Sentence
Tisch,table,Der Tisch ist rund.,The table is round.
`

type testEnv struct {
	router   *gin.Engine
	db       *database.Database
	excluded *excluded.Repository
	library  *audio.Library
	audioDir string
	queue    *fakeQueue
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sheet.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testSheet), 0644))

	audioDir := filepath.Join(dir, "audio")
	require.NoError(t, os.MkdirAll(audioDir, 0755))

	db, err := database.NewQuietDatabase(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		db:       db,
		excluded: excluded.NewRepository(db.DB),
		library:  audio.NewLibrary(audioDir),
		audioDir: audioDir,
		queue:    &fakeQueue{statuses: map[string]backlite.TaskStatus{}},
	}

	env.router = NewRouter(RouterConfig{
		Vocabulary:        vocabulary.NewSource(csvPath),
		Excluded:          env.excluded,
		Audio:             env.library,
		Translator:        translation.NewStaticClient(),
		Database:          db,
		TaskQueue:         env.queue,
		DefaultStartIndex: 0,
		AllowedOrigins:    []string{"http://localhost:3000"},
		Version:           "test",
	})
	return env
}

func (e *testEnv) writeAudio(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.audioDir, name), []byte(content), 0644))
}

func (e *testEnv) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type fakeQueue struct {
	enqueued []backlite.Task
	statuses map[string]backlite.TaskStatus
	err      error
}

func (q *fakeQueue) Enqueue(_ context.Context, task backlite.Task) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.enqueued = append(q.enqueued, task)
	return "task-1", nil
}

func (q *fakeQueue) Status(_ context.Context, taskID string) (backlite.TaskStatus, error) {
	if q.err != nil {
		return backlite.TaskStatusNotFound, q.err
	}
	status, ok := q.statuses[taskID]
	if !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return status, nil
}

var errBroken = errors.New("broken")
