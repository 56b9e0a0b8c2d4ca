package http

import (
	"embed"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wortschatz/internal/entities"
)

//go:embed templates/*.html
var templatesFS embed.FS

// loadTemplates parses the built-in templates, then any overrides found in dir.
func loadTemplates(dir string) *template.Template {
	tmpl := template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
	if dir == "" {
		return tmpl
	}
	if matches, _ := filepath.Glob(dir + "/*.html"); len(matches) > 0 {
		tmpl = template.Must(tmpl.ParseFiles(matches...))
	}
	return tmpl
}

type indexRow struct {
	Record  entities.VocabularyRecord
	Learned bool
}

type UIController struct {
	reader   VocabularyReader
	excluded ExcludedStore
}

func NewUIController(reader VocabularyReader, excluded ExcludedStore) *UIController {
	return &UIController{
		reader:   reader,
		excluded: excluded,
	}
}

// Index handles GET /
// API clients get the welcome message; browsers get the word table.
func (controller *UIController) Index(c *gin.Context) {
	if !strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.JSON(http.StatusOK, gin.H{"message": "German Vocabulary API"})
		return
	}

	records, err := controller.reader.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading vocabulary: %s", err.Error())
		return
	}

	learned := make(map[int]bool)
	if controller.excluded != nil {
		indexes, err := controller.excluded.ListExcluded()
		if err != nil {
			c.String(http.StatusInternalServerError, "Error loading learned words: %s", err.Error())
			return
		}
		for _, index := range indexes {
			learned[index] = true
		}
	}

	rows := make([]indexRow, 0, len(records))
	learnedCount := 0
	for _, record := range records {
		if learned[record.Index] {
			learnedCount++
		}
		rows = append(rows, indexRow{Record: record, Learned: learned[record.Index]})
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"Rows":    rows,
		"Total":   len(rows),
		"Learned": learnedCount,
	})
}
