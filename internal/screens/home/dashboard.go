package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/lessongate"
	"github.com/abhisek/habla/internal/ui/layout"
	"github.com/abhisek/habla/internal/ui/theme"
)

const titleCompact = "¡ H A B L A !"

const titleFull = `╻ ╻┏━┓┏┓ ╻  ┏━┓╻
┣━┫┣━┫┣┻┓┃  ┣━┫╹
╹ ╹╹ ╹┗━┛┗━╸╹ ╹╹`

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders XP, streak and the lesson and word counts.
func renderStatsBar(xp, streak int, sum lessongate.Summary, cw int, compact bool) string {
	xpStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			xpStyle.Render(fmt.Sprintf("✦%d", xp)),
			streakStyle.Render(fmt.Sprintf("🔥%d", streak)),
			countStyle.Render(fmt.Sprintf("📘%d/%d", sum.LessonsCompleted, sum.LessonsTotal)),
			countStyle.Render(fmt.Sprintf("🗣%d/%d", sum.WordsMastered, sum.WordsTotal)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			xpStyle.Render(fmt.Sprintf("✦ %d XP", xp)),
			streakStyle.Render("🔥 "+layout.Days(streak)),
			countStyle.Render(fmt.Sprintf("📘 %d/%d lessons", sum.LessonsCompleted, sum.LessonsTotal)),
			countStyle.Render(fmt.Sprintf("🗣 %d/%d words", sum.WordsMastered, sum.WordsTotal)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderFactCard renders a cultural fact in a card matching content width.
func renderFactCard(fact catalog.CulturalFact, cw int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%s %s · %s", fact.Emoji, fact.Title, fact.Country))
	body := theme.Body.Render(fact.Content)
	return theme.Card.
		Width(cw).
		Render(heading + "\n" + body)
}

// renderFrame wraps content in a double-border frame centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
