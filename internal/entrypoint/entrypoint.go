package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/config"
	"github.com/mrlokans/wortschatz/internal/database"
	"github.com/mrlokans/wortschatz/internal/database/excluded"
	http_controllers "github.com/mrlokans/wortschatz/internal/http"
	"github.com/mrlokans/wortschatz/internal/scheduler"
	"github.com/mrlokans/wortschatz/internal/tasks"
	"github.com/mrlokans/wortschatz/internal/translation"
	"github.com/mrlokans/wortschatz/internal/tts"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM. SIGKILL cannot be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Wortschatz v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	source := vocabulary.NewSource(cfg.Vocabulary.CSVPath)
	if count, err := source.Count(); err != nil {
		// Not fatal: every vocabulary route reports the problem until the sheet is fixed
		log.Printf("WARNING: %v", err)
	} else {
		log.Printf("Loaded %d vocabulary records from %s", count, source.Path())
	}

	library := audio.NewLibrary(cfg.Vocabulary.AudioDir)
	if _, err := os.Stat(library.Dir()); os.IsNotExist(err) {
		log.Printf("WARNING: Audio directory %s does not exist. Run 'audio-generate' to create it.", library.Dir())
	}

	translator := NewTranslator(cfg)
	log.Printf("Translation provider: %s", translator.Name())

	routerCfg := http_controllers.RouterConfig{
		Vocabulary:        source,
		Excluded:          excluded.NewRepository(db.DB),
		Audio:             library,
		Translator:        translator,
		Database:          db,
		DefaultStartIndex: cfg.AudioSync.StartIndex,
		TemplatesPath:     cfg.UI.TemplatesPath,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		Version:           version,
	}

	// Task queue and the audio sync schedule need a speech synthesizer
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var audioSync *scheduler.AudioSyncScheduler
	var synth tts.Synthesizer

	if cfg.Tasks.Enabled {
		synth, err = NewSynthesizer(cfg)
		if err != nil {
			log.Printf("WARNING: %v. Audio generation endpoint will be disabled.", err)
		}
	}

	if synth != nil {
		defer func() {
			if err := synth.Close(); err != nil {
				log.Printf("Error closing speech synthesizer: %v", err)
			}
		}()

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskConfig(cfg))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewGenerateMissingAudioQueue(source, library, synth))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient

		if cfg.AudioSync.Enabled {
			audioSync = scheduler.NewAudioSyncScheduler(
				scheduler.EnqueueFunc(func(ctx context.Context, task tasks.GenerateMissingAudioTask) (string, error) {
					return taskClient.Enqueue(ctx, task)
				}),
				cfg.AudioSync.Schedule,
				cfg.AudioSync.StartIndex,
			)
			if err := audioSync.Start(taskCtx); err != nil {
				log.Printf("WARNING: Audio sync scheduler not started: %v", err)
				audioSync = nil
			}
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if audioSync != nil {
			audioSync.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// NewTranslator returns the configured translation client.
func NewTranslator(cfg *config.Config) translation.Client {
	if cfg.Translation.Provider == config.TranslationOpenAI {
		if cfg.Translation.OpenAIKey != "" {
			return translation.NewOpenAIClient(cfg.Translation.OpenAIKey, cfg.Translation.OpenAIModel)
		}
		log.Printf("WARNING: OPENAI_API_KEY is not set. Falling back to the built-in dictionary.")
	}
	return translation.NewStaticClient()
}

// NewSynthesizer connects to SpeechKit. It fails when no API key is configured.
func NewSynthesizer(cfg *config.Config) (tts.Synthesizer, error) {
	if cfg.TTS.APIKey == "" {
		return nil, fmt.Errorf("speech synthesis is not configured: set SPEECHKIT_API_KEY")
	}
	client, err := tts.NewYandexClient(tts.YandexConfig{
		APIKey:   cfg.TTS.APIKey,
		FolderID: cfg.TTS.FolderID,
		Voices: tts.Voices{
			German:  cfg.TTS.VoiceGerman,
			English: cfg.TTS.VoiceEnglish,
		},
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func taskConfig(cfg *config.Config) tasks.Config {
	return tasks.Config{
		Workers:           cfg.Tasks.Workers,
		MaxRetries:        cfg.Tasks.MaxRetries,
		RetryDelay:        cfg.Tasks.RetryDelay,
		TaskTimeout:       cfg.Tasks.TaskTimeout,
		ReleaseAfter:      cfg.Tasks.ReleaseAfter,
		CleanupInterval:   cfg.Tasks.CleanupInterval,
		RetentionDuration: cfg.Tasks.RetentionDuration,
	}
}
