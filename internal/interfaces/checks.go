package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/wortschatz/internal/audio"
	"github.com/mrlokans/wortschatz/internal/database"
	"github.com/mrlokans/wortschatz/internal/database/excluded"
	"github.com/mrlokans/wortschatz/internal/http"
	"github.com/mrlokans/wortschatz/internal/playback"
	"github.com/mrlokans/wortschatz/internal/provider"
	"github.com/mrlokans/wortschatz/internal/sequencer"
	"github.com/mrlokans/wortschatz/internal/tasks"
	"github.com/mrlokans/wortschatz/internal/translation"
	"github.com/mrlokans/wortschatz/internal/tts"
	"github.com/mrlokans/wortschatz/internal/vocabulary"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// VocabularyReader implementations
var _ http.VocabularyReader = (*vocabulary.Source)(nil)
var _ tasks.RecordLister = (*vocabulary.Source)(nil)

// ExcludedStore implementations
var _ http.ExcludedStore = (*excluded.Repository)(nil)

// AudioLibrary implementations
var _ http.AudioLibrary = (*audio.Library)(nil)
var _ tasks.AudioGenerator = (*audio.Library)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// TaskQueue implementations
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// External Services
// =============================================================================

// Translator implementations
var _ http.Translator = (*translation.StaticClient)(nil)
var _ http.Translator = (*translation.OpenAIClient)(nil)
var _ translation.Translator = (*provider.Client)(nil)

// Synthesizer implementations
var _ tts.Synthesizer = (*tts.YandexClient)(nil)
var _ audio.Synthesizer = (*tts.YandexClient)(nil)

// =============================================================================
// Player
// =============================================================================

// Provider implementations
var _ sequencer.Provider = (*provider.Client)(nil)

// Output implementations
var _ sequencer.Output = (*playback.MPV)(nil)
var _ sequencer.Output = (*playback.PortAudio)(nil)
var _ playback.Backend = (*playback.MPV)(nil)
var _ playback.Backend = (*playback.PortAudio)(nil)
