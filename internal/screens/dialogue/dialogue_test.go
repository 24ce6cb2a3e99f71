package dialogue

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/progress"
	"github.com/abhisek/habla/internal/router"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestScreen(t *testing.T) (*DialogueScreen, *progress.Store) {
	t.Helper()
	backend, err := store.NewJSONStore(t.TempDir())
	require.NoError(t, err)
	prog := progress.Open(context.Background(), backend, "test", nil)

	cat, err := catalog.Default()
	require.NoError(t, err)
	lesson, _, ok := cat.Lesson(1)
	require.True(t, ok)

	deps := screen.Deps{Progress: prog, Catalog: cat, AutoAdvance: time.Millisecond}
	return New(deps, lesson), prog
}

// answer picks option n and delivers the scheduled advance.
func answer(t *testing.T, s *DialogueScreen, n rune) {
	t.Helper()
	_, cmd := s.Update(keyPress(n))
	require.NotNil(t, cmd, "answer should schedule an advance")
	s.Update(cmd())
}

func TestCorrectAnswerAwardsXPAndAdvances(t *testing.T) {
	s, prog := newTestScreen(t)

	_, cmd := s.Update(keyPress('1'))
	require.NotNil(t, cmd)

	st := s.session.State()
	assert.True(t, st.CompletedBlanks[0].IsCorrect)
	assert.Equal(t, 0, st.CurrentLineIndex, "advance waits for the timer")
	assert.Equal(t, 5, prog.Record().XPPoints)
	assert.Contains(t, s.View(100, 40), "¡Correcto!")

	s.Update(cmd())
	assert.Equal(t, 1, s.session.State().CurrentLineIndex)
}

func TestWrongAnswerShowsCorrection(t *testing.T) {
	s, prog := newTestScreen(t)

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)

	assert.False(t, s.session.State().CompletedBlanks[0].IsCorrect)
	assert.Zero(t, prog.Record().XPPoints)
	assert.Contains(t, s.View(100, 40), "The answer is Soy")
}

func TestKeysIgnoredWhileAwaitingAdvance(t *testing.T) {
	s, _ := newTestScreen(t)

	_, cmd := s.Update(keyPress('2'))
	require.NotNil(t, cmd)
	_, again := s.Update(keyPress('1'))
	assert.Nil(t, again)
	assert.Equal(t, "Estoy", s.session.State().CompletedBlanks[0].Token)
}

func TestCloseCancelsPendingAdvance(t *testing.T) {
	s, _ := newTestScreen(t)
	r := router.New(&stubScreen{})
	r.Push(s)

	_, cmd := s.Update(keyPress('1'))
	require.NotNil(t, cmd)
	r.Update(router.PopScreenMsg{})

	s.Update(cmd())
	assert.Equal(t, 0, s.session.State().CurrentLineIndex)
	assert.True(t, s.session.State().Closed)
}

func TestCompletionPanel(t *testing.T) {
	s, prog := newTestScreen(t)

	answer(t, s, '1')
	answer(t, s, '2') // wrong
	answer(t, s, '1')
	answer(t, s, '1')

	require.True(t, s.session.Complete())
	view := s.View(100, 40)
	assert.Contains(t, view, "You got 3 of 4 blanks right.")
	assert.Contains(t, view, "Practice again")
	assert.Equal(t, 15, prog.Record().XPPoints)

	// Practice again starts over and keeps translations.
	s.Update(keyPress('t'))
	s.Update(specialKey(tea.KeyEnter))
	st := s.session.State()
	assert.Equal(t, 0, st.CurrentLineIndex)
	assert.Empty(t, st.CompletedBlanks)
	assert.True(t, st.ShowTranslations)
	assert.False(t, prog.Record().DialoguesCompleted.Has("Meeting Someone New"))
}

func TestContinueFinishesDialogue(t *testing.T) {
	s, prog := newTestScreen(t)
	for i := 0; i < 4; i++ {
		answer(t, s, '1')
	}

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	assert.True(t, prog.Record().DialoguesCompleted.Has("Meeting Someone New"))
}

func TestTranslationsToggle(t *testing.T) {
	s, _ := newTestScreen(t)
	assert.NotContains(t, s.View(100, 40), "What's your name?")
	s.Update(keyPress('t'))
	assert.Contains(t, s.View(100, 40), "What's your name?")
}

func TestLineToSpeak(t *testing.T) {
	s, _ := newTestScreen(t)
	assert.Empty(t, s.lineToSpeak(), "nothing answered yet")

	answer(t, s, '1')
	assert.Equal(t, "¡Hola! Soy Ana. ¿Cómo te llamas?", s.lineToSpeak())
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "" }
