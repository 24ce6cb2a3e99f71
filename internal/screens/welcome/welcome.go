package welcome

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/router"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	flagEnd      = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// Stripes of the flag drawn while the splash opens.
var flagStripes = []color.Color{theme.Primary, theme.Secondary, theme.Primary}

var sparkleFrames = []string{"✦", "★"}

type tickMsg time.Time

// WelcomeScreen plays a short splash and then replaces itself with the
// dashboard. Any key skips ahead.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	now          func() time.Time
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen built by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		now:         time.Now,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.tickCount++
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) renderFlag() string {
	rows := make([]string, len(flagStripes))
	for i, c := range flagStripes {
		rows[i] = lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", 18))
	}
	if w.elapsed >= flagEnd {
		s := sparkleFrames[w.tickCount%len(sparkleFrames)]
		accent := lipgloss.NewStyle().Foreground(theme.Accent)
		rows[1] = accent.Render(s) + "  " + rows[1] + "  " + accent.Render(s)
	}
	return strings.Join(rows, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderFlag()}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render(greeting(w.now().Hour())+" Let's learn some Spanish."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
