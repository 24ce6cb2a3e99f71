package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/catalog"
	dlg "github.com/abhisek/habla/internal/dialogue"
	"github.com/abhisek/habla/internal/progress"
	"github.com/abhisek/habla/internal/router"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/ui/components"
	"github.com/abhisek/habla/internal/ui/layout"
	"github.com/abhisek/habla/internal/ui/theme"
)

var (
	keyTranslations = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Translations"))
	keySpeak        = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Listen"))
	keyChoose       = key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Choose"))
)

// advanceMsg is delivered once the answer feedback delay has elapsed.
type advanceMsg struct {
	ticket dlg.Ticket
}

// DialogueScreen practices a lesson's dialogue by filling one blank per line.
type DialogueScreen struct {
	deps    screen.Deps
	session *dlg.Session
	choice  components.MultiChoice
	panel   components.Menu
}

var _ screen.Screen = (*DialogueScreen)(nil)
var _ screen.Closer = (*DialogueScreen)(nil)

// New starts a dialogue session for lesson.
func New(deps screen.Deps, lesson catalog.Lesson) *DialogueScreen {
	deps = deps.WithDefaults()
	var rec dlg.Recorder
	if deps.Progress != nil {
		rec = deps.Progress
	}
	s := &DialogueScreen{
		deps:    deps,
		session: dlg.New(lesson.Dialogue, rec, deps.Log),
	}
	s.panel = components.NewMenu([]components.MenuItem{
		{Label: "Practice again", Action: s.practiceAgain},
		{Label: "Continue", Action: s.finish},
	})
	s.resetChoice()
	return s
}

func (s *DialogueScreen) Init() tea.Cmd {
	return nil
}

func (s *DialogueScreen) Title() string {
	return "Dialogue · " + s.session.Dialogue().Title
}

// Close cancels any pending auto-advance.
func (s *DialogueScreen) Close() {
	s.session.Close()
}

func (s *DialogueScreen) KeyHints() []layout.KeyHint {
	speak := keySpeak
	speak.SetEnabled(s.deps.Speaker.Available())
	if s.session.Complete() {
		return components.Hints(components.KeyUp, components.KeyDown, components.KeySelect, keyTranslations, components.KeyBack)
	}
	return components.Hints(components.KeyUp, components.KeyDown, keyChoose, keyTranslations, speak, components.KeyBack)
}

func (s *DialogueScreen) resetChoice() {
	lines := s.session.Dialogue().Lines
	idx := s.session.State().CurrentLineIndex
	if idx < len(lines) {
		s.choice = components.NewMultiChoice(lines[idx].Options, lines[idx].Blank)
	}
}

func (s *DialogueScreen) practiceAgain() tea.Cmd {
	s.session.Reset()
	s.resetChoice()
	s.panel.Selected = 0
	return nil
}

func (s *DialogueScreen) finish() tea.Cmd {
	s.session.Finish(context.Background())
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *DialogueScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if s.session.Advance(msg.ticket) {
			s.resetChoice()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keyTranslations):
			s.session.ToggleTranslations()
			return s, nil
		case key.Matches(msg, keySpeak):
			return s, s.deps.Speak(s.lineToSpeak())
		}

		if s.session.Complete() {
			var cmd tea.Cmd
			s.panel, cmd = s.panel.Update(msg)
			return s, cmd
		}
		return s, s.answer(msg)
	}
	return s, nil
}

// answer forwards keys to the option list and submits a chosen option.
func (s *DialogueScreen) answer(msg tea.KeyPressMsg) tea.Cmd {
	st := s.session.State()
	if _, answered := st.CompletedBlanks[st.CurrentLineIndex]; answered {
		return nil
	}
	s.choice, _ = s.choice.Update(msg)
	token, ok := s.choice.Chosen()
	if !ok {
		return nil
	}
	ticket, ok := s.session.SelectAnswer(context.Background(), st.CurrentLineIndex, token)
	if !ok {
		return nil
	}
	return tea.Tick(s.deps.AutoAdvance, func(time.Time) tea.Msg {
		return advanceMsg{ticket: ticket}
	})
}

// lineToSpeak is the most recently answered line with its blank filled.
func (s *DialogueScreen) lineToSpeak() string {
	lines := s.session.Dialogue().Lines
	st := s.session.State()
	idx := st.CurrentLineIndex
	if _, answered := st.CompletedBlanks[idx]; !answered {
		idx--
	}
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return lines[idx].Filled()
}

func (s *DialogueScreen) View(width, height int) string {
	d := s.session.Dialogue()
	st := s.session.State()
	cw := min(76, width-4)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(d.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(d.Scenario))
	b.WriteString("\n\n")

	for i, line := range d.Lines {
		if i > st.CurrentLineIndex {
			break
		}
		b.WriteString(renderLine(line, st.CompletedBlanks, i, st.ShowTranslations))
		b.WriteString("\n")
	}

	switch {
	case st.Complete:
		b.WriteString("\n")
		b.WriteString(s.renderPanel(cw))
	case st.CurrentLineIndex < len(d.Lines):
		b.WriteString("\n")
		if a, answered := st.CompletedBlanks[st.CurrentLineIndex]; answered {
			b.WriteString(renderFeedback(a, d.Lines[st.CurrentLineIndex].Blank))
			b.WriteString("\n\n")
		}
		b.WriteString(s.choice.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func renderLine(line catalog.DialogueLine, answers map[int]dlg.Answer, i int, translations bool) string {
	before, after := line.Parts()
	blank := theme.Hint.Render(catalog.BlankMarker)
	if a, ok := answers[i]; ok {
		if a.IsCorrect {
			blank = theme.Correct.Render(a.Token)
		} else {
			blank = theme.Incorrect.Render(a.Token)
		}
	}
	out := theme.Speaker.Render(line.Speaker+":") + " " + theme.Body.Render(before) + blank + theme.Body.Render(after)
	if translations {
		out += "\n    " + theme.Hint.Render(line.English)
	}
	return out
}

func renderFeedback(a dlg.Answer, correct string) string {
	if a.IsCorrect {
		return theme.Correct.Render(fmt.Sprintf("¡Correcto! +%d XP", progress.XPCorrectBlank))
	}
	return theme.Incorrect.Render("Not quite. The answer is " + correct)
}

func (s *DialogueScreen) renderPanel(cw int) string {
	correct, total := s.session.Score()
	summary := theme.Title.Render("¡Diálogo completado!") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("You got %d of %d blanks right.", correct, total)) + "\n\n" +
		s.panel.View()
	return theme.Card.Width(cw).Render(summary)
}
