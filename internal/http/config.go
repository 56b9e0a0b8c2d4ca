package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Vocabulary VocabularyReader
	Excluded   ExcludedStore
	Audio      AudioLibrary
	Translator Translator
	Database   Pinger

	// Task queue (optional). Audio generation routes are only
	// registered when set.
	TaskQueue         TaskQueue
	DefaultStartIndex int

	// UI template overrides; the built-in templates are used when empty
	TemplatesPath string

	// Browser origins allowed to call the API
	AllowedOrigins []string

	// Application info
	Version string
}
