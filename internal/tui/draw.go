package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/sequencer"
)

var cueLabels = map[entities.CueType]string{
	entities.CueGermanWord:      "German word",
	entities.CueEnglishWord:     "English word",
	entities.CueGermanSentence:  "German sentence",
	entities.CueEnglishSentence: "English sentence",
}

func (a *App) draw() {
	s := a.screen
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.SetContent(x, y, ' ', nil, styleDefault)
		}
	}

	switch {
	case a.loadErr != nil:
		a.drawFatal(w, h)
	case a.ctrl == nil || a.ctrl.Len() == 0:
		a.drawEmpty(w, h)
	default:
		a.drawRecord(w)
		a.drawTranslation(w, h)
	}

	if a.showHelp {
		a.drawHelp(w, h)
	}
	a.drawStatusBar(w, h)
	s.Show()
}

func (a *App) drawFatal(w, h int) {
	y := h/2 - 2
	if y < 0 {
		y = 0
	}
	errStyle := styleDefault.Foreground(ColorError).Bold(true)
	drawText(a.screen, 2, y, w-4, errStyle, "Cannot load the vocabulary. The player cannot proceed.")
	drawText(a.screen, 2, y+2, w-4, styleDefault, a.loadErr.Error())
	drawText(a.screen, 2, y+4, w-4, styleDefault.Foreground(ColorDimmed), "Start the server, then restart the player. Press q to quit.")
}

func (a *App) drawEmpty(w, h int) {
	drawText(a.screen, 2, h/2, w-4, styleDefault.Foreground(ColorDimmed), "The vocabulary list is empty. Press q to quit.")
}

func (a *App) drawRecord(w int) {
	state := a.ctrl.State()
	record, learned, ok := a.ctrl.Current()
	if !ok {
		return
	}

	header := styleDefault.Foreground(ColorHeader).Bold(true)
	drawText(a.screen, 1, 0, w-2, header, "Wortschatz")
	counter := fmt.Sprintf("%d/%d  learned %d", state.CurrentIndex+1, a.ctrl.Len(), a.ctrl.ExcludedCount())
	drawText(a.screen, w-len(counter)-1, 0, len(counter), styleDefault.Foreground(ColorDimmed), counter)

	label := fmt.Sprintf("#%d", record.Index)
	drawText(a.screen, 2, 2, w-4, styleDefault.Foreground(ColorDimmed), label)
	if learned {
		drawText(a.screen, 3+len(label), 2, w-4, styleDefault.Foreground(ColorLearned).Bold(true), "[learned]")
	}

	a.drawCue(w, 3, state, entities.CueGermanWord, record.GermanWord, true)
	a.drawCue(w, 4, state, entities.CueEnglishWord, record.EnglishWord, false)
	a.drawCue(w, 6, state, entities.CueGermanSentence, record.GermanSentence, false)
	a.drawCue(w, 7, state, entities.CueEnglishSentence, record.EnglishSentence, false)

	drawText(a.screen, 2, 9, w-4, styleDefault.Foreground(ColorPlaying), playbackLine(state))
}

// drawCue renders one field, marking it while its cue is sounding.
func (a *App) drawCue(w, y int, state sequencer.State, cue entities.CueType, text string, bold bool) {
	style := styleDefault.Bold(bold)
	marker := "  "
	if state.IsPlaying && state.CurrentAudioType == cue {
		style = style.Foreground(ColorCue).Bold(true)
		marker = "♪ "
	}
	drawText(a.screen, 2, y, 2, style, marker)
	drawText(a.screen, 4, y, w-6, style, text)
}

func playbackLine(state sequencer.State) string {
	parts := []string{}
	if state.IsPlaying {
		cue := cueLabels[state.CurrentAudioType]
		if cue == "" {
			cue = "..."
		}
		parts = append(parts, "▶ "+cue)
	} else {
		parts = append(parts, "■ stopped")
	}
	if state.IsAutoPlay {
		parts = append(parts, "autoplay on")
	}
	return strings.Join(parts, "   ")
}

func (a *App) drawTranslation(w, h int) {
	top := 11
	if top >= h-2 {
		return
	}

	prompt := "t: translate"
	style := styleDefault.Foreground(ColorDimmed)
	if a.mode == ModeTranslate {
		prompt = "Translate: " + a.input + "_"
		style = styleDefault.Foreground(ColorCyan)
	}
	if a.field != nil && a.field.Busy() {
		prompt += "  (looking up...)"
	}
	drawText(a.screen, 2, top, w-4, style, prompt)

	if a.translation == nil {
		return
	}
	t := a.translation
	rows := []string{
		"English:  " + t.EnglishWord,
		"German:   " + t.GermanWord,
		"Example:  " + t.EnglishSentence,
		"Beispiel: " + t.GermanSentence,
	}
	for i, row := range rows {
		if top+2+i >= h-1 {
			break
		}
		drawText(a.screen, 4, top+2+i, w-6, styleDefault, row)
	}
}

func (a *App) drawHelp(w, h int) {
	lines := []string{
		"space  play / stop",
		"a      toggle autoplay",
		"n, →   next word",
		"p, ←   previous word",
		"x      mark / unmark as learned",
		"t      translate an English word",
		"?      close help",
		"q      quit",
	}
	boxW := 36
	x := (w - boxW) / 2
	y := (h - len(lines) - 2) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for row := 0; row < len(lines)+2; row++ {
		for col := 0; col < boxW && x+col < w; col++ {
			a.screen.SetContent(x+col, y+row, ' ', nil, styleBar)
		}
	}
	for i, line := range lines {
		drawText(a.screen, x+2, y+1+i, boxW-4, styleBar, line)
	}
}

func (a *App) drawStatusBar(w, h int) {
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, styleBar)
	}

	modeStr := "NORMAL"
	if a.mode == ModeTranslate {
		modeStr = "TRANSLATE"
	}
	drawText(a.screen, 0, h-1, w, styleBar.Bold(true), modeStr)

	hint := "? help  q quit"
	drawText(a.screen, w-len(hint)-1, h-1, len(hint), styleBar.Foreground(ColorDimmed), hint)

	if a.status != "" {
		msgStyle := styleBar.Foreground(ColorYellow)
		if a.statusIsError {
			msgStyle = styleBar.Foreground(ColorError)
		}
		drawText(a.screen, len(modeStr)+2, h-1, w-len(modeStr)-len(hint)-4, msgStyle, a.status)
	}
}

// drawText writes text at (x, y), cutting it to maxWidth cells with an ellipsis.
func drawText(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	if maxWidth <= 0 {
		return
	}
	runes := []rune(text)
	if len(runes) > maxWidth {
		if maxWidth > 3 {
			runes = append(runes[:maxWidth-3], []rune("...")...)
		} else {
			runes = runes[:maxWidth]
		}
	}
	for i, r := range runes {
		s.SetContent(x+i, y, r, nil, style)
	}
}
