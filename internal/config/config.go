package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type TranslationProvider string

const (
	TranslationStatic TranslationProvider = "static" // Built-in dictionary (default without an API key)
	TranslationOpenAI TranslationProvider = "openai" // OpenAI chat completions
)

type (
	Config struct {
		HTTP
		Global
		Vocabulary
		Database
		UI
		CORS
		Translation
		TTS
		Tasks
		AudioSync
		Player
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Vocabulary struct {
		CSVPath  string // Headerless four-column sheet
		AudioDir string // Directory with the cue MP3 files
	}
	Database struct {
		Path string
	}
	UI struct {
		TemplatesPath string
	}
	CORS struct {
		AllowedOrigins []string
	}
	Translation struct {
		Provider    TranslationProvider
		OpenAIKey   string
		OpenAIModel string
	}
	TTS struct {
		APIKey       string // Yandex SpeechKit API key
		FolderID     string
		VoiceGerman  string
		VoiceEnglish string
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	AudioSync struct {
		Enabled    bool
		Schedule   string // Cron format: "0 3 * * *" = nightly at 03:00
		StartIndex int    // First CSV row to generate audio for
	}
	Player struct {
		ServerURL string
		Backend   string  // "mpv" or "portaudio"
		SlowRate  float64 // Playback rate of the German sentence
		LogPath   string  // The terminal UI owns the screen, so logs go here
	}
)

// loadDotEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("vocabulary_csv_path", DefaultCSVPath)
	v.SetDefault("audio_dir", DefaultAudioDir)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("cors_allowed_origins", strings.Join(DefaultAllowedOrigins, ","))

	// Translation defaults
	v.SetDefault("translation_provider", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")

	// Speech synthesis defaults
	v.SetDefault("speechkit_api_key", "")
	v.SetDefault("speechkit_folder_id", "")
	v.SetDefault("speechkit_voice_german", "lea")
	v.SetDefault("speechkit_voice_english", "john")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_max_retries", 1)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "60m")
	v.SetDefault("task_release_after", "90m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("audio_sync_enabled", false)
	v.SetDefault("audio_sync_schedule", "0 3 * * *")
	v.SetDefault("audio_sync_start_index", 0)

	// Player defaults
	v.SetDefault("player_server_url", "http://localhost:8000")
	v.SetDefault("player_backend", "mpv")
	v.SetDefault("player_slow_rate", 0.75)
	v.SetDefault("player_log_path", "./wortschatz-player.log")

	openAIKey := v.GetString("OPENAI_API_KEY")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Vocabulary: Vocabulary{
			CSVPath:  v.GetString("VOCABULARY_CSV_PATH"),
			AudioDir: v.GetString("AUDIO_DIR"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Translation: Translation{
			Provider:    translationProvider(v.GetString("TRANSLATION_PROVIDER"), openAIKey),
			OpenAIKey:   openAIKey,
			OpenAIModel: v.GetString("OPENAI_MODEL"),
		},
		TTS: TTS{
			APIKey:       v.GetString("SPEECHKIT_API_KEY"),
			FolderID:     v.GetString("SPEECHKIT_FOLDER_ID"),
			VoiceGerman:  v.GetString("SPEECHKIT_VOICE_GERMAN"),
			VoiceEnglish: v.GetString("SPEECHKIT_VOICE_ENGLISH"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		AudioSync: AudioSync{
			Enabled:    v.GetBool("AUDIO_SYNC_ENABLED"),
			Schedule:   v.GetString("AUDIO_SYNC_SCHEDULE"),
			StartIndex: v.GetInt("AUDIO_SYNC_START_INDEX"),
		},
		Player: Player{
			ServerURL: strings.TrimRight(v.GetString("PLAYER_SERVER_URL"), "/"),
			Backend:   v.GetString("PLAYER_BACKEND"),
			SlowRate:  v.GetFloat64("PLAYER_SLOW_RATE"),
			LogPath:   v.GetString("PLAYER_LOG_PATH"),
		},
	}
}

// translationProvider picks OpenAI when a key is configured and no provider
// was chosen explicitly.
func translationProvider(name, openAIKey string) TranslationProvider {
	switch TranslationProvider(strings.ToLower(strings.TrimSpace(name))) {
	case TranslationOpenAI:
		return TranslationOpenAI
	case TranslationStatic:
		return TranslationStatic
	}
	if openAIKey != "" {
		return TranslationOpenAI
	}
	return TranslationStatic
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
