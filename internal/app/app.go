package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/habla/internal/router"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/screens/home"
	"github.com/abhisek/habla/internal/screens/welcome"
	"github.com/abhisek/habla/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps screen.Deps

	// Now is used for the streak check on start. Defaults to time.Now.
	Now func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome splash and then
// moves to the dashboard.
func newAppModel(deps screen.Deps) AppModel {
	deps = deps.WithDefaults()
	splash := welcome.New(func() screen.Screen {
		return home.New(deps)
	})
	return AppModel{
		router: router.New(splash),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	var xp, streak int
	if m.deps.Progress != nil {
		rec := m.deps.Progress.Record()
		xp, streak = rec.XPPoints, rec.CurrentStreak
	}

	header := layout.RenderHeader(title, xp, streak, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// recordPractice counts today toward the streak.
func recordPractice(deps screen.Deps, now time.Time) {
	if deps.Progress == nil {
		return
	}
	out := deps.Progress.RecordPractice(context.Background(), now)
	if deps.Log != nil {
		deps.Log.Info("practice recorded", "streak", string(out.Streak), "days", deps.Progress.Record().CurrentStreak)
	}
}

// Run records today's practice, then starts the Bubble Tea program.
func Run(opts Options) error {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	recordPractice(opts.Deps, now())

	m := newAppModel(opts.Deps)
	defer m.router.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
