package components

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/habla/internal/ui/layout"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_SkipsDisabledItems(t *testing.T) {
	var picked string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "locked", Disabled: true},
		{Label: "one", Action: pick("one")},
		{Label: "locked too", Disabled: true},
		{Label: "two", Action: pick("two")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected, "no enabled item below")

	m, _ = m.Update(keyPress('k'))
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected, "disabled first item is skipped")

	m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "one", picked)
}

func TestMenu_SetItemsKeepsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2

	m.SetItems([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c", Detail: "✓"}})
	assert.Equal(t, 2, m.Selected)

	m.SetItems([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c", Disabled: true}})
	assert.Equal(t, 0, m.Selected)
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Lesson 1", Detail: "40%"}, {Label: "Lesson 2", Disabled: true}})
	view := m.View()
	assert.Contains(t, view, "▸ Lesson 1")
	assert.Contains(t, view, "40%")
	assert.Contains(t, view, "Lesson 2")
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"Soy", "Estoy", "Tengo"}, "Soy")
	assert.Equal(t, 0, mc.CorrectIndex)

	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyEnter))

	chosen, ok := mc.Chosen()
	require.True(t, ok)
	assert.Equal(t, "Estoy", chosen)

	// Submitted lists ignore further input.
	mc, _ = mc.Update(specialKey(tea.KeyUp))
	chosen, _ = mc.Chosen()
	assert.Equal(t, "Estoy", chosen)
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	mc := NewMultiChoice([]string{"hora", "día"}, "hora")

	mc, _ = mc.Update(keyPress('9'))
	_, ok := mc.Chosen()
	assert.False(t, ok, "out of range number is ignored")

	mc, _ = mc.Update(keyPress('2'))
	chosen, ok := mc.Chosen()
	require.True(t, ok)
	assert.Equal(t, "día", chosen)
	assert.True(t, strings.Contains(mc.View(), "2)  día"))
}

func TestMultiChoice_UnknownCorrect(t *testing.T) {
	mc := NewMultiChoice([]string{"a"}, "z")
	assert.Equal(t, -1, mc.CorrectIndex)
}

func TestProgressBar_Clamps(t *testing.T) {
	assert.Equal(t, 100, NewProgressBar("", 140, true, 20).Percent)
	assert.Equal(t, 0, NewProgressBar("", -3, true, 20).Percent)
	assert.Contains(t, NewProgressBar("Lesson", 42, true, 30).View(), "42%")
}

func TestHints(t *testing.T) {
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Hidden"), key.WithDisabled())
	got := Hints(KeySelect, disabled, KeyBack)
	assert.Equal(t, []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}, got)
}
