// Package layout draws the chrome around every screen: the status header,
// the key-hint footer and the frame that sizes content between them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/ui/theme"
)

// Smallest usable terminal.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Content areas below these sizes get the compact rendering.
const (
	compactWidth  = 100
	compactHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether a content area of the given size should use the
// condensed layout.
func IsCompact(width, height int) bool {
	return width < compactWidth || height < compactHeight
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("¡Uy! The terminal is too small")
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("Habla needs at least %d×%d.\nRight now it has %d×%d.", MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", body))
}

// Days formats a day count for display.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// bar wraps a single line of chrome in the shared card border.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(content)
}

// statusBadges renders XP and streak. The flame dims until the first day
// of practice is counted.
func statusBadges(xp, streak int) string {
	flame := theme.TextDim
	if streak > 0 {
		flame = theme.Accent
	}
	xpBadge := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("✦ %d XP", xp))
	streakBadge := lipgloss.NewStyle().Foreground(flame).Render("🔥 " + Days(streak))
	return xpBadge + "   " + streakBadge
}

// RenderHeader draws the brand on the left, the screen title in the middle
// and the learner's XP and streak on the right. The title is dropped when
// the three do not fit.
func RenderHeader(title string, xp, streak int, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("¡Habla!")
	status := statusBadges(xp, streak)

	inner := max(0, width-4)
	free := inner - lipgloss.Width(brand) - lipgloss.Width(status)

	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	if title == "" || lipgloss.Width(center)+2 > free {
		return bar(brand+strings.Repeat(" ", max(1, free))+status, width)
	}

	middle := lipgloss.PlaceHorizontal(free, lipgloss.Center, center)
	return bar(brand+middle+status, width)
}

// RenderFooter draws the key hints, dropping trailing hints that would
// overflow the width.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := max(0, width-4)
	var b strings.Builder
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		sep := ""
		if b.Len() > 0 {
			sep = "   "
		}
		if lipgloss.Width(b.String()+sep+part) > inner-2 {
			b.WriteString(descStyle.Render(" …"))
			break
		}
		b.WriteString(sep + part)
	}
	return bar(b.String(), width)
}

// ContentHeight is what remains of height once header and footer are drawn.
func ContentHeight(header, footer string, height int) int {
	return max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
}

// RenderFrame stacks header, content and footer, giving content exactly
// the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		MaxHeight(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
