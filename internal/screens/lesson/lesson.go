package lesson

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/lessongate"
	"github.com/abhisek/habla/internal/router"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/screens/dialogue"
	"github.com/abhisek/habla/internal/screens/flashcards"
	"github.com/abhisek/habla/internal/screens/grammar"
	"github.com/abhisek/habla/internal/ui/components"
	"github.com/abhisek/habla/internal/ui/layout"
	"github.com/abhisek/habla/internal/ui/theme"
)

type feedbackDoneMsg struct{}

// LessonScreen is the hub for one lesson's activities.
type LessonScreen struct {
	deps     screen.Deps
	level    catalog.Level
	overview *lessongate.Overview
	menu     components.Menu
	feedback string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates the overview screen for lesson within level.
func New(deps screen.Deps, level catalog.Level, lesson catalog.Lesson) *LessonScreen {
	deps = deps.WithDefaults()
	l := &LessonScreen{
		deps:     deps,
		level:    level,
		overview: lessongate.NewOverview(lesson, deps.Progress),
	}
	l.menu = components.NewMenu(l.items())
	return l
}

func (l *LessonScreen) items() []components.MenuItem {
	lesson := l.overview.Lesson
	p := lessongate.Derive(lesson, l.deps.Progress.Record())
	completed := l.deps.Progress.Record().CompletedLessons.Has(lesson.ID)

	// Activities are built when opened so each visit starts fresh.
	open := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	completeDetail := ""
	if completed {
		completeDetail = "✓ completed"
	}

	return []components.MenuItem{
		{
			Label:  "Flashcards",
			Detail: fmt.Sprintf("%d/%d mastered", p.VocabMastered, p.VocabTotal),
			Action: open(func() screen.Screen { return flashcards.New(l.deps, lesson) }),
		},
		{
			Label:  "Grammar",
			Detail: doneDetail(p.GrammarDone),
			Action: open(func() screen.Screen { return grammar.New(l.deps, lesson) }),
		},
		{
			Label:  "Dialogue",
			Detail: doneDetail(p.DialogueDone),
			Action: open(func() screen.Screen { return dialogue.New(l.deps, lesson) }),
		},
		{
			Label:    "Mark lesson complete",
			Detail:   completeDetail,
			Disabled: completed,
			Action:   l.completeLesson,
		},
	}
}

func doneDetail(done bool) string {
	if done {
		return "✓"
	}
	return ""
}

func (l *LessonScreen) completeLesson() tea.Cmd {
	out := l.overview.CompleteLessonNow(context.Background())
	if out.XPAwarded == 0 {
		return nil
	}
	l.feedback = fmt.Sprintf("¡Felicidades! Lesson complete +%d XP", out.XPAwarded)
	l.menu.SetItems(l.items())
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return feedbackDoneMsg{} })
}

func (l *LessonScreen) Init() tea.Cmd {
	return nil
}

func (l *LessonScreen) Title() string {
	return l.overview.Lesson.Title
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	return components.Hints(components.KeyUp, components.KeyDown, components.KeySelect, components.KeyBack)
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(feedbackDoneMsg); ok {
		l.feedback = ""
		return l, nil
	}
	// Activities may have changed progress while this screen was covered.
	l.menu.SetItems(l.items())
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LessonScreen) View(width, height int) string {
	lesson := l.overview.Lesson
	p := lessongate.Derive(lesson, l.deps.Progress.Record())
	l.menu.SetItems(l.items())
	cw := min(60, width-4)

	var sections []string
	sections = append(sections, theme.Subtitle.Width(cw).Render(l.level.Title))
	sections = append(sections, theme.Title.Width(cw).Render(lesson.Title))
	sections = append(sections, components.NewProgressBar("Progress", p.Percent, true, cw).View())
	sections = append(sections, l.menu.View())

	if l.feedback != "" {
		sections = append(sections, theme.Correct.Render(l.feedback))
	} else if p.Percent == 100 && !l.deps.Progress.Record().CompletedLessons.Has(lesson.ID) {
		sections = append(sections, theme.Hint.Render("Everything practiced. Mark the lesson complete to unlock the next one."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
