package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.SetHTMLTemplate(loadTemplates(cfg.TemplatesPath))

	health := NewHealthController(cfg.Database, cfg.Vocabulary, cfg.Version)
	uiController := NewUIController(cfg.Vocabulary, cfg.Excluded)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	router.GET("/", uiController.Index)

	// Vocabulary endpoints
	if cfg.Vocabulary != nil {
		vocabController := NewVocabularyController(cfg.Vocabulary, cfg.Audio)
		router.GET("/api/vocabulary", vocabController.ListWords)
		router.GET("/api/vocabulary/search", vocabController.SearchWords)
		router.GET("/api/vocabulary/:index", vocabController.GetWord)
		router.GET("/api/vocabulary/:index/audio", vocabController.GetAudioManifest)

		audioController := NewAudioController(cfg.Vocabulary, cfg.Audio)
		router.GET("/api/audio/:index/:type", audioController.GetAudio)
		router.HEAD("/api/audio/:index/:type", audioController.GetAudio)
	}

	// Learned-word endpoints
	if cfg.Excluded != nil && cfg.Vocabulary != nil {
		excludedController := NewExcludedController(cfg.Excluded, cfg.Vocabulary)
		router.GET("/api/excluded", excludedController.ListExcluded)
		router.POST("/api/excluded/:index", excludedController.AddExcluded)
		router.DELETE("/api/excluded", excludedController.ClearExcluded)
		router.DELETE("/api/excluded/:index", excludedController.RemoveExcluded)
	}

	// Translation endpoint
	if cfg.Translator != nil {
		translateController := NewTranslateController(cfg.Translator)
		router.POST("/api/translate", translateController.Translate)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.DefaultStartIndex)
		router.POST("/api/audio/generate", tasksController.GenerateAudio)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
