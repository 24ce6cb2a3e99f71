package grammar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/lessongate"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/ui/components"
	"github.com/abhisek/habla/internal/ui/layout"
	"github.com/abhisek/habla/internal/ui/theme"
)

var (
	keyComplete = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Mark studied"))
	keySpeak    = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Listen"))
)

// feedbackDoneMsg clears the banner it was scheduled for.
type feedbackDoneMsg struct{ seq int }

// GrammarScreen shows a lesson's grammar unit, one rule at a time.
type GrammarScreen struct {
	deps     screen.Deps
	overview *lessongate.Overview
	rule     int
	feedback string
	// feedbackSeq numbers banners so an earlier timer cannot clear a later one.
	feedbackSeq int
}

var _ screen.Screen = (*GrammarScreen)(nil)
var _ screen.KeyHintProvider = (*GrammarScreen)(nil)

// New creates the grammar screen for lesson.
func New(deps screen.Deps, lesson catalog.Lesson) *GrammarScreen {
	deps = deps.WithDefaults()
	return &GrammarScreen{
		deps:     deps,
		overview: lessongate.NewOverview(lesson, deps.Progress),
	}
}

func (g *GrammarScreen) Init() tea.Cmd {
	return nil
}

func (g *GrammarScreen) Title() string {
	return "Grammar · " + g.overview.Lesson.Grammar.Title
}

func (g *GrammarScreen) KeyHints() []layout.KeyHint {
	speak := keySpeak
	speak.SetEnabled(g.deps.Speaker.Available())
	return components.Hints(components.KeyUp, components.KeyDown, keyComplete, speak, components.KeyBack)
}

func (g *GrammarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if msg.seq == g.feedbackSeq {
			g.feedback = ""
		}
	case tea.KeyPressMsg:
		rules := g.overview.Lesson.Grammar.Rules
		switch {
		case key.Matches(msg, components.KeyUp):
			if g.rule > 0 {
				g.rule--
			}
		case key.Matches(msg, components.KeyDown):
			if g.rule < len(rules)-1 {
				g.rule++
			}
		case key.Matches(msg, keySpeak):
			if g.rule < len(rules) {
				return g, g.deps.Speak(rules[g.rule].Example)
			}
		case key.Matches(msg, keyComplete):
			out := g.overview.CompleteGrammarNow(context.Background())
			if out.XPAwarded > 0 {
				g.feedback = fmt.Sprintf("¡Muy bien! +%d XP", out.XPAwarded)
			} else {
				g.feedback = "Already studied"
			}
			g.feedbackSeq++
			seq := g.feedbackSeq
			return g, tea.Tick(1200*time.Millisecond, func(time.Time) tea.Msg { return feedbackDoneMsg{seq: seq} })
		}
	}
	return g, nil
}

func (g *GrammarScreen) View(width, height int) string {
	unit := g.overview.Lesson.Grammar
	cw := min(72, width-4)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(unit.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw).Render(unit.Explanation))
	b.WriteString("\n\n")

	for i, r := range unit.Rules {
		marker := "  "
		style := theme.Unselected
		if i == g.rule {
			marker = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(marker + r.Concept))
		b.WriteString("\n")
		if i == g.rule {
			card := theme.Body.Render(r.Usage) + "\n\n" + theme.Spanish.Render(r.Example)
			b.WriteString(theme.Card.Width(cw).Render(card))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if g.deps.Progress.Record().GrammarCompleted.Has(g.overview.Lesson.ID) {
		b.WriteString(theme.Correct.Render("✓ studied"))
	} else {
		b.WriteString(theme.Hint.Render("press c when you have studied these rules"))
	}
	if g.feedback != "" {
		b.WriteString("\n\n" + theme.Correct.Render(g.feedback))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
