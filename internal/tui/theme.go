package tui

import "github.com/gdamore/tcell/v2"

// TokyoNight palette
var (
	ColorBg          = tcell.NewRGBColor(0x1a, 0x1b, 0x26)
	ColorBgHighlight = tcell.NewRGBColor(0x29, 0x2e, 0x42)
	ColorFg          = tcell.NewRGBColor(0xc0, 0xca, 0xf5)
	ColorFgDark      = tcell.NewRGBColor(0x56, 0x5f, 0x89)
	ColorBlue        = tcell.NewRGBColor(0x7a, 0xa2, 0xf7)
	ColorCyan        = tcell.NewRGBColor(0x7d, 0xcf, 0xff)
	ColorGreen       = tcell.NewRGBColor(0x9e, 0xce, 0x6a)
	ColorMagenta     = tcell.NewRGBColor(0xbb, 0x9a, 0xf7)
	ColorRed         = tcell.NewRGBColor(0xf7, 0x76, 0x8e)
	ColorYellow      = tcell.NewRGBColor(0xe0, 0xaf, 0x68)

	ColorHeader  = ColorBlue
	ColorPlaying = ColorGreen
	ColorCue     = ColorYellow
	ColorLearned = ColorMagenta
	ColorError   = ColorRed
	ColorDimmed  = ColorFgDark
)

var (
	styleDefault = tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	styleBar     = tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
)
