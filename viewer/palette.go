package viewer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lander/lander"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGround     = tcell.NewRGBColor(101, 67, 33)   // Dark brown
	RgbZone       = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbFlying     = tcell.NewRGBColor(180, 180, 180) // Gray
	RgbLanded     = tcell.NewRGBColor(50, 255, 50)   // Bright green
	RgbCrashed    = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbOutOfRange = tcell.NewRGBColor(100, 150, 255) // Normal blue
	RgbOutOfFuel  = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbBest       = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbStatusBg   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbError      = tcell.NewRGBColor(255, 0, 0)
)

const (
	runeGround = '#'
	runeZone   = '='
	runeTrail  = '.'
	runeBest   = '*'
)

var (
	styleBase   = tcell.StyleDefault.Background(RgbBackground)
	styleGround = styleBase.Foreground(RgbGround)
	styleZone   = styleBase.Foreground(RgbZone).Bold(true)
	styleBest   = styleBase.Foreground(RgbBest).Bold(true)
	styleStatus = tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText)
	styleError  = tcell.StyleDefault.Background(RgbError).Foreground(RgbStatusText)
)

// outcomeStyle colors a trajectory by how it ended
func outcomeStyle(o lander.Outcome) tcell.Style {
	switch o {
	case lander.LandedCorrectly:
		return styleBase.Foreground(RgbLanded)
	case lander.Crashed:
		return styleBase.Foreground(RgbCrashed)
	case lander.OutOfBounds:
		return styleBase.Foreground(RgbOutOfRange)
	case lander.OutOfFuel:
		return styleBase.Foreground(RgbOutOfFuel)
	default:
		return styleBase.Foreground(RgbFlying)
	}
}

// endRune marks where a trajectory stopped
func endRune(o lander.Outcome) rune {
	switch o {
	case lander.LandedCorrectly:
		return 'V'
	case lander.Crashed:
		return 'x'
	default:
		return 'o'
	}
}
