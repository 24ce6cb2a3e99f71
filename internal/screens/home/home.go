package home

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/lessongate"
	"github.com/abhisek/habla/internal/router"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/screens/lesson"
	"github.com/abhisek/habla/internal/ui/components"
	"github.com/abhisek/habla/internal/ui/layout"
)

var keyFact = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Another fact"))

// HomeScreen is the dashboard: stats, the lesson list and a cultural fact.
type HomeScreen struct {
	deps    screen.Deps
	menu    components.Menu
	fact    catalog.CulturalFact
	hasFact bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	deps = deps.WithDefaults()
	h := &HomeScreen{deps: deps}
	h.fact, h.hasFact = deps.Catalog.RandomFact()
	h.menu = components.NewMenu(h.items())
	return h
}

// items lists every level's lessons. Level headings and locked lessons are
// disabled entries so the cursor skips them.
func (h *HomeScreen) items() []components.MenuItem {
	rec := h.deps.Progress.Record()
	var items []components.MenuItem
	for _, level := range h.deps.Catalog.Levels() {
		items = append(items, components.MenuItem{Label: "── " + level.Title + " ──", Disabled: true})
		for _, g := range lessongate.Gates(level, rec) {
			item := components.MenuItem{
				Label:    fmt.Sprintf("%d. %s", g.Lesson.ID, g.Lesson.Title),
				Disabled: g.Locked,
			}
			switch {
			case g.Locked:
				item.Detail = "🔒"
			case g.Completed:
				item.Detail = "✓"
			default:
				item.Detail = fmt.Sprintf("%d%%", lessongate.Derive(g.Lesson, rec).Percent)
			}
			lv, ls := level, g.Lesson
			item.Action = func() tea.Cmd {
				s := lesson.New(h.deps, lv, ls)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			}
			items = append(items, item)
		}
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	fact := keyFact
	fact.SetEnabled(h.hasFact)
	return components.Hints(components.KeyUp, components.KeyDown, components.KeySelect, fact, components.KeyQuit)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Lock state may have changed while a lesson was open.
	h.menu.SetItems(h.items())

	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keyFact) {
		h.fact, h.hasFact = h.deps.Catalog.RandomFact()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.menu.SetItems(h.items())

	compact := layout.IsCompact(width, height)
	cw := contentWidth(width)
	rec := h.deps.Progress.Record()
	sum := lessongate.Overall(h.deps.Catalog, rec)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, RenderMascot(variantFor(rec.CurrentStreak)))
	}
	sections = append(sections, renderStatsBar(rec.XPPoints, rec.CurrentStreak, sum, cw, compact))
	sections = append(sections, components.NewProgressBar("Overall", sum.Percent, true, cw).View())
	sections = append(sections, h.menu.View())
	if h.hasFact && !compact {
		sections = append(sections, renderFactCard(h.fact, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
