// Package tui is the terminal frontend of the vocabulary player.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/sequencer"
	"github.com/mrlokans/wortschatz/internal/translation"
)

// requestTimeout bounds learned-mark updates and translation lookups.
const requestTimeout = 15 * time.Second

type Mode int

const (
	ModeNormal Mode = iota
	ModeTranslate
)

// Options wires the app to its collaborators.
type Options struct {
	// Controller drives playback. Nil when the vocabulary could not be loaded.
	Controller *sequencer.Controller
	// Translator answers translation lookups.
	Translator translation.Translator
	// LoadError puts the app in its terminal "cannot proceed" state.
	LoadError error
}

type App struct {
	screen  tcell.Screen
	ctrl    *sequencer.Controller
	field   *translation.Field
	loadErr error

	mode          Mode
	input         string
	translation   *entities.Translation
	status        string
	statusIsError bool
	showHelp      bool

	// async carries results of background work back to the event loop,
	// which is the only goroutine touching UI state.
	async chan func()
}

// NewApp creates the app. A nil screen is replaced by the terminal in Run.
func NewApp(screen tcell.Screen, opts Options) *App {
	a := &App{
		screen:  screen,
		ctrl:    opts.Controller,
		loadErr: opts.LoadError,
		async:   make(chan func(), 8),
	}
	if opts.Translator != nil {
		a.field = translation.NewField(opts.Translator)
	}
	return a
}

// Run owns the terminal until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		a.screen = s
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer a.screen.Fini()

	a.screen.SetStyle(styleDefault)
	a.screen.Clear()

	go func() {
		<-ctx.Done()
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	a.loop(ctx)

	if a.ctrl != nil {
		a.ctrl.Stop()
	}
	log.Println("[PLAYER] Shutdown complete")
	return nil
}

func (a *App) loop(ctx context.Context) {
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var states <-chan sequencer.State
	if a.ctrl != nil {
		states = a.ctrl.Subscribe()
	}

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-states:
			if !ok {
				states = nil
				continue
			}
			a.draw()
		case fn := <-a.async:
			fn()
			a.draw()
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				a.draw()
			case *tcell.EventKey:
				if a.handleKey(ctx, ev) {
					return
				}
				a.draw()
			case *tcell.EventInterrupt:
				return
			}
		}
	}
}

// handleKey applies a key press and reports whether the app should quit.
func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	if a.loadErr != nil || a.ctrl == nil || a.ctrl.Len() == 0 {
		return ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
	}

	if a.showHelp {
		a.showHelp = false
		return false
	}

	if a.mode == ModeTranslate {
		a.handleTranslateKey(ctx, ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyRight:
		a.navigate(a.ctrl.Next)
	case tcell.KeyLeft:
		a.navigate(a.ctrl.Previous)
	case tcell.KeyEnter:
		a.togglePlay()
	case tcell.KeyEscape:
		a.ctrl.Stop()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			a.togglePlay()
		case 'a':
			a.ctrl.ToggleAutoplay()
		case 'n', 'l':
			a.navigate(a.ctrl.Next)
		case 'p', 'h':
			a.navigate(a.ctrl.Previous)
		case 'x':
			a.toggleLearned(ctx)
		case 't', '/':
			a.mode = ModeTranslate
			a.input = ""
			a.setStatus("", false)
		case '?':
			a.showHelp = true
		}
	}
	return false
}

func (a *App) togglePlay() {
	if a.ctrl.State().IsPlaying {
		a.ctrl.Stop()
		return
	}
	a.setStatus("", false)
	a.ctrl.Play()
}

// navigate is disabled while a sequence is sounding.
func (a *App) navigate(move func()) {
	if a.ctrl.State().IsPlaying {
		a.setStatus("Stop playback to change words", false)
		return
	}
	a.setStatus("", false)
	move()
}

func (a *App) toggleLearned(ctx context.Context) {
	record, _, ok := a.ctrl.Current()
	if !ok {
		return
	}

	go func() {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		learned, err := a.ctrl.ToggleExcluded(reqCtx, record.Index)
		a.post(func() {
			switch {
			case err != nil:
				log.Printf("[PLAYER] %v", err)
				a.setStatus("Could not save learned mark for "+record.GermanWord, true)
			case learned:
				a.setStatus(record.GermanWord+" marked as learned", false)
			default:
				a.setStatus(record.GermanWord+" back in the list", false)
			}
		})
	}()
}

func (a *App) handleTranslateKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
	case tcell.KeyEnter:
		a.submitTranslation(ctx)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(a.input); len(r) > 0 {
			a.input = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		if unicode.IsPrint(ev.Rune()) {
			a.input += string(ev.Rune())
		}
	}
}

func (a *App) submitTranslation(ctx context.Context) {
	if a.field == nil {
		a.setStatus("Translation is not available", true)
		return
	}

	word := a.input
	if a.field.Busy() {
		a.setStatus(translation.Message(translation.ErrLookupInFlight), false)
		return
	}

	go func() {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		result, err := a.field.Submit(reqCtx, word)
		a.post(func() {
			if err != nil {
				if !errors.Is(err, translation.ErrEmptyWord) {
					log.Printf("[PLAYER] Translate %q: %v", word, err)
				}
				a.setStatus(translation.Message(err), true)
				return
			}
			a.translation = result
			a.setStatus("", false)
		})
	}()
}

// post queues fn for the event loop. It drops fn if the loop has stopped
// draining the queue.
func (a *App) post(fn func()) {
	select {
	case a.async <- fn:
	case <-time.After(requestTimeout):
	}
}

func (a *App) setStatus(msg string, isError bool) {
	a.status = msg
	a.statusIsError = isError
}
