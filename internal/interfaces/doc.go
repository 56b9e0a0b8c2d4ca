// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors find
// the extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - VocabularyReader: Read access to the CSV sheet (internal/http/stores.go)
//   - ExcludedStore: Learned-word marks (internal/http/stores.go)
//   - AudioLibrary: Cue audio lookup (internal/http/stores.go)
//   - TaskQueue: Background audio generation (internal/http/stores.go)
//
// ## External Service Interfaces
//
//   - Translator: English to German lookups (internal/translation/client.go)
//   - Synthesizer: Text to speech (internal/tts/tts.go)
//
// ## Player Interfaces
//
//   - Provider: Server access used by the sequencer (internal/sequencer/interfaces.go)
//   - Output: Audio playback backend (internal/sequencer/interfaces.go)
//
// # Adding a New Playback Backend
//
//  1. Implement Backend in internal/playback/
//
//     type Afplay struct{}
//
//     func (a *Afplay) Play(ctx context.Context, clip []byte, rate float64) (sequencer.AudioHandle, error)
//     func (a *Afplay) Close() error
//
//  2. Add a name for it to playback.New
//
//  3. Add a compile-time check to checks.go
//
// # Adding a New Translator
//
//  1. Implement Client in internal/translation/
//
//     type DeepLClient struct {
//         apiKey     string
//         httpClient *http.Client
//     }
//
//     func (c *DeepLClient) Translate(ctx context.Context, englishWord string) (*entities.Translation, error)
//     func (c *DeepLClient) Name() string
//
//     Return ErrNotFound for unknown words and wrap backend failures in ErrUpstream.
//
//  2. Select it in entrypoint.NewTranslator
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
