package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Gold, on a streak of a week or more
	MascotSleepy                           // Dim, no streak yet
)

// Streak length that earns the celebrating mascot.
const celebrateStreak = 7

const mascotIdle = `╭──────────╮
│  ¡Hola!  │
╰──┬───────╯
  (◕‿◕)`

const mascotCelebrating = `╭──────────╮
│ ¡Olé! 🔥 │
╰──┬───────╯
  \(★‿★)/`

const mascotSleepy = `╭──────────╮
│  zzz...  │
╰──┬───────╯
  (-‿-)`

// variantFor picks the mascot for a streak length.
func variantFor(streak int) MascotVariant {
	switch {
	case streak >= celebrateStreak:
		return MascotCelebrating
	case streak == 0:
		return MascotSleepy
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Secondary
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
