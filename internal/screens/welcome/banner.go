package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗ ██████╗ ██╗      █████╗ ██╗
 ██║  ██║██╔══██╗██╔══██╗██║     ██╔══██╗██║
 ███████║███████║██████╔╝██║     ███████║██║
 ██╔══██║██╔══██║██╔══██╗██║     ██╔══██║╚═╝
 ██║  ██║██║  ██║██████╔╝███████╗██║  ██║██╗
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝`

const bannerCompact = "¡ H A B L A !"

// RenderBanner returns the HABLA banner in the primary color, or a compact
// line for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

// greeting returns the Spanish greeting for an hour of the day.
func greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "¡Buenos días!"
	case hour >= 12 && hour < 20:
		return "¡Buenas tardes!"
	default:
		return "¡Buenas noches!"
	}
}
