package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/sequencer"
	"github.com/mrlokans/wortschatz/internal/translation"
)

var testRecords = []entities.VocabularyRecord{
	{Index: 0, GermanWord: "Haus", EnglishWord: "house", GermanSentence: "Das Haus ist groß.", EnglishSentence: "The house is big."},
	{Index: 1, GermanWord: "Buch", EnglishWord: "book", GermanSentence: "Ich lese ein Buch.", EnglishSentence: "I am reading a book."},
	{Index: 3, GermanWord: "Tisch", EnglishWord: "table", GermanSentence: "Der Tisch ist rund.", EnglishSentence: "The table is round."},
}

// blockingProvider holds every existence check until the sequence is cancelled.
type blockingProvider struct {
	mu        sync.Mutex
	added     []int
	mutateErr error
}

func (p *blockingProvider) AudioExists(ctx context.Context, _ int, _ entities.CueType) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func (p *blockingProvider) FetchAudio(context.Context, int, entities.CueType) ([]byte, error) {
	return nil, errors.New("unexpected fetch")
}

func (p *blockingProvider) AddExcluded(_ context.Context, index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mutateErr != nil {
		return p.mutateErr
	}
	p.added = append(p.added, index)
	return nil
}

func (p *blockingProvider) RemoveExcluded(context.Context, int) error {
	return nil
}

type nullOutput struct{}

func (nullOutput) Play(context.Context, []byte, float64) (sequencer.AudioHandle, error) {
	return nil, errors.New("unexpected play")
}

type stubTranslator struct {
	err error
}

func (s stubTranslator) Translate(_ context.Context, word string) (*entities.Translation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Translation{
		EnglishWord:     word,
		GermanWord:      "Haus",
		EnglishSentence: "This is a house.",
		GermanSentence:  "Das ist ein Haus.",
	}, nil
}

func newTestApp(t *testing.T, opts Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	if opts.Controller != nil {
		t.Cleanup(opts.Controller.Close)
	}
	return NewApp(screen, opts), screen
}

func newController(provider sequencer.Provider, excluded ...int) *sequencer.Controller {
	return sequencer.New(testRecords, excluded, provider, nullOutput{}, sequencer.Options{})
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, h := s.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// drain runs queued async callbacks the way the event loop would.
func drain(t *testing.T, a *App) {
	t.Helper()
	select {
	case fn := <-a.async:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("no async result")
	}
}

func TestApp_LoadErrorScreen(t *testing.T) {
	a, screen := newTestApp(t, Options{LoadError: errors.New("vocabulary service unavailable: connection refused")})
	ctx := context.Background()

	a.draw()

	text := screenText(screen)
	assert.Contains(t, text, "The player cannot proceed.")
	assert.Contains(t, text, "connection refused")

	assert.False(t, a.handleKey(ctx, key(' ')))
	assert.False(t, a.handleKey(ctx, key('n')))
	assert.True(t, a.handleKey(ctx, key('q')))
}

func TestApp_RendersCurrentRecord(t *testing.T) {
	ctrl := newController(&blockingProvider{}, 1)
	a, screen := newTestApp(t, Options{Controller: ctrl})

	a.draw()

	text := screenText(screen)
	assert.Contains(t, text, "Haus")
	assert.Contains(t, text, "The house is big.")
	assert.Contains(t, text, "1/3  learned 1")
	assert.Contains(t, text, "stopped")
	assert.Contains(t, text, "NORMAL")
}

func TestApp_PlaybackKeys(t *testing.T) {
	ctrl := newController(&blockingProvider{})
	a, screen := newTestApp(t, Options{Controller: ctrl})
	ctx := context.Background()

	a.handleKey(ctx, key(' '))
	assert.True(t, ctrl.State().IsPlaying)

	a.handleKey(ctx, key('n'))
	assert.Equal(t, 0, ctrl.State().CurrentIndex, "navigation is disabled while playing")
	assert.Equal(t, "Stop playback to change words", a.status)

	a.handleKey(ctx, key(' '))
	assert.False(t, ctrl.State().IsPlaying)

	a.handleKey(ctx, key('n'))
	assert.Equal(t, 1, ctrl.State().CurrentIndex)
	a.handleKey(ctx, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	a.handleKey(ctx, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, 2, ctrl.State().CurrentIndex, "previous wraps")

	a.handleKey(ctx, key('a'))
	state := ctrl.State()
	assert.True(t, state.IsAutoPlay)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, sequencer.PhaseAutoplaying, state.Phase)

	a.draw()
	assert.Contains(t, screenText(screen), "autoplay on")

	a.handleKey(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Equal(t, sequencer.PhaseIdle, ctrl.State().Phase)
	assert.False(t, ctrl.State().IsAutoPlay)

	assert.True(t, a.handleKey(ctx, key('q')))
}

func TestApp_ToggleLearned(t *testing.T) {
	t.Run("marks the current word and moves on", func(t *testing.T) {
		provider := &blockingProvider{}
		ctrl := newController(provider)
		a, _ := newTestApp(t, Options{Controller: ctrl})

		a.handleKey(context.Background(), key('x'))
		drain(t, a)

		assert.Equal(t, "Haus marked as learned", a.status)
		assert.True(t, ctrl.IsExcluded(0))
		assert.Equal(t, 1, ctrl.State().CurrentIndex)
		assert.Equal(t, []int{0}, provider.added)
	})

	t.Run("failure rolls back and reports", func(t *testing.T) {
		provider := &blockingProvider{mutateErr: errors.New("server down")}
		ctrl := newController(provider)
		a, _ := newTestApp(t, Options{Controller: ctrl})

		a.handleKey(context.Background(), key('x'))
		drain(t, a)

		assert.True(t, a.statusIsError)
		assert.Contains(t, a.status, "Could not save")
		assert.False(t, ctrl.IsExcluded(0))
	})
}

func TestApp_Translate(t *testing.T) {
	t.Run("renders all four fields", func(t *testing.T) {
		ctrl := newController(&blockingProvider{})
		a, screen := newTestApp(t, Options{Controller: ctrl, Translator: stubTranslator{}})
		ctx := context.Background()

		a.handleKey(ctx, key('t'))
		assert.Equal(t, ModeTranslate, a.mode)
		for _, r := range "housx" {
			a.handleKey(ctx, key(r))
		}
		a.handleKey(ctx, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
		a.handleKey(ctx, key('e'))
		assert.Equal(t, "house", a.input)

		a.handleKey(ctx, key('q'))
		assert.Equal(t, "houseq", a.input, "q is text while translating")
		a.handleKey(ctx, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

		a.handleKey(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
		drain(t, a)
		a.draw()

		text := screenText(screen)
		assert.Contains(t, text, "English:  house")
		assert.Contains(t, text, "German:   Haus")
		assert.Contains(t, text, "Example:  This is a house.")
		assert.Contains(t, text, "Beispiel: Das ist ein Haus.")

		a.handleKey(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
		assert.Equal(t, ModeNormal, a.mode)
	})

	t.Run("blank input", func(t *testing.T) {
		ctrl := newController(&blockingProvider{})
		a, _ := newTestApp(t, Options{Controller: ctrl, Translator: stubTranslator{}})
		ctx := context.Background()

		a.handleKey(ctx, key('t'))
		a.handleKey(ctx, key(' '))
		a.handleKey(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
		drain(t, a)

		assert.Equal(t, "Please enter an English word", a.status)
		assert.Nil(t, a.translation)
	})

	t.Run("failures keep the UI usable", func(t *testing.T) {
		ctrl := newController(&blockingProvider{})
		a, _ := newTestApp(t, Options{
			Controller: ctrl,
			Translator: stubTranslator{err: translation.ErrNotFound},
		})
		ctx := context.Background()

		a.handleKey(ctx, key('t'))
		a.handleKey(ctx, key('z'))
		a.handleKey(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
		drain(t, a)

		assert.Equal(t, "Translation not found. Please try another word.", a.status)
		assert.Equal(t, ModeTranslate, a.mode)
	})
}

func TestApp_RunQuits(t *testing.T) {
	ctrl := newController(&blockingProvider{})
	t.Cleanup(ctrl.Close)
	screen := tcell.NewSimulationScreen("UTF-8")
	a := NewApp(screen, Options{Controller: ctrl})

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			assert.NoError(t, err)
			return
		case <-time.After(50 * time.Millisecond):
			screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		case <-deadline:
			t.Fatal("Run did not return")
		}
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := NewApp(tcell.NewSimulationScreen("UTF-8"), Options{LoadError: errors.New("boom")})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
