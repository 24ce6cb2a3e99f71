package dialogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/progress"
)

type fakeRecorder struct {
	xp        int
	dialogues []string
}

func (f *fakeRecorder) AddXP(_ context.Context, amount int) progress.Outcome {
	f.xp += amount
	return progress.Outcome{Changed: true, XPAwarded: amount}
}

func (f *fakeRecorder) CompleteDialogue(_ context.Context, title string) progress.Outcome {
	f.dialogues = append(f.dialogues, title)
	return progress.Outcome{Changed: true}
}

func testDialogue() catalog.Dialogue {
	return catalog.Dialogue{
		Title:    "Making Plans",
		Scenario: "Two friends plan a meeting",
		Lines: []catalog.DialogueLine{
			{Speaker: "Ana", Spanish: "¿Qué _____ es?", English: "What time is it?", Blank: "hora", Options: []string{"hora", "día", "año"}},
			{Speaker: "Luis", Spanish: "Son las _____ .", English: "It's three.", Blank: "tres", Options: []string{"dos", "tres", "diez"}},
			{Speaker: "Ana", Spanish: "¿Nos vemos el _____?", English: "See you on Monday?", Blank: "lunes", Options: []string{"lunes", "martes"}},
		},
	}
}

func newTestSession() (*Session, *fakeRecorder) {
	rec := &fakeRecorder{}
	return New(testDialogue(), rec, nil), rec
}

func TestSelectAnswer_CorrectThenAdvance(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestSession()

	ticket, ok := s.SelectAnswer(ctx, 0, "hora")
	require.True(t, ok)

	st := s.State()
	assert.Equal(t, Answer{Token: "hora", IsCorrect: true}, st.CompletedBlanks[0])
	assert.Equal(t, progress.XPCorrectBlank, rec.xp)
	assert.Equal(t, 0, st.CurrentLineIndex, "advance waits for the ticket")

	assert.True(t, s.Advance(ticket))
	assert.Equal(t, 1, s.State().CurrentLineIndex)
	assert.False(t, s.Advance(ticket), "a ticket advances once")
}

func TestSelectAnswer_Wrong(t *testing.T) {
	s, rec := newTestSession()

	_, ok := s.SelectAnswer(context.Background(), 0, "día")
	require.True(t, ok)
	assert.False(t, s.State().CompletedBlanks[0].IsCorrect)
	assert.Zero(t, rec.xp)
}

func TestSelectAnswer_Rejections(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestSession()

	_, ok := s.SelectAnswer(ctx, 1, "tres")
	assert.False(t, ok, "not the current line")
	_, ok = s.SelectAnswer(ctx, -1, "hora")
	assert.False(t, ok)

	_, ok = s.SelectAnswer(ctx, 0, "día")
	require.True(t, ok)
	_, ok = s.SelectAnswer(ctx, 0, "hora")
	assert.False(t, ok, "answers are immutable")
	assert.Equal(t, Answer{Token: "día"}, s.State().CompletedBlanks[0])
	assert.Zero(t, rec.xp)
}

func TestSelectAnswer_NormalizesUnicode(t *testing.T) {
	d := catalog.Dialogue{Title: "Accents", Lines: []catalog.DialogueLine{
		{Spanish: "_____", Blank: "día", Options: []string{"día"}},
	}}
	s := New(d, &fakeRecorder{}, nil)

	// Decomposed form: "i" + combining acute accent.
	_, ok := s.SelectAnswer(context.Background(), 0, "di\u0301a")
	require.True(t, ok)
	assert.True(t, s.State().CompletedBlanks[0].IsCorrect)
}

func TestFullRun_CompleteRegardlessOfCorrectness(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestSession()

	for i, token := range []string{"hora", "dos", "lunes"} {
		assert.False(t, s.Complete())
		ticket, ok := s.SelectAnswer(ctx, i, token)
		require.True(t, ok)
		require.True(t, s.Advance(ticket))
	}

	assert.True(t, s.Complete())
	assert.Equal(t, 3, s.State().CurrentLineIndex, "index rests past the end")
	correct, total := s.Score()
	assert.Equal(t, 2, correct)
	assert.Equal(t, 3, total)
	assert.Equal(t, 10, rec.xp)

	_, ok := s.SelectAnswer(ctx, 3, "x")
	assert.False(t, ok)
}

func TestFinish_OnlyWhenComplete(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestSession()

	assert.False(t, s.Finish(ctx))
	assert.Empty(t, rec.dialogues)

	for i, token := range []string{"hora", "tres", "lunes"} {
		ticket, _ := s.SelectAnswer(ctx, i, token)
		s.Advance(ticket)
	}
	assert.True(t, s.Finish(ctx))
	assert.Equal(t, []string{"Making Plans"}, rec.dialogues)
}

func TestReset_KeepsTranslationsAndCancelsTickets(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestSession()
	s.ToggleTranslations()

	ticket, ok := s.SelectAnswer(ctx, 0, "hora")
	require.True(t, ok)
	s.Reset()

	assert.False(t, s.Advance(ticket), "ticket from before reset is stale")
	st := s.State()
	assert.Equal(t, 0, st.CurrentLineIndex)
	assert.Empty(t, st.CompletedBlanks)
	assert.True(t, st.ShowTranslations)

	// A replay earns blank XP again.
	ticket, ok = s.SelectAnswer(ctx, 0, "hora")
	require.True(t, ok)
	assert.True(t, s.Advance(ticket))
	assert.Equal(t, 10, rec.xp)
}

func TestClose_CancelsPendingAdvance(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestSession()

	ticket, ok := s.SelectAnswer(ctx, 0, "hora")
	require.True(t, ok)
	s.Close()

	assert.False(t, s.Advance(ticket))
	assert.Equal(t, 0, s.State().CurrentLineIndex)
	assert.True(t, s.State().Closed)

	_, ok = s.SelectAnswer(ctx, 0, "hora")
	assert.False(t, ok)
	s.ToggleTranslations()
	assert.False(t, s.State().ShowTranslations)
	s.Reset()
	assert.Len(t, s.State().CompletedBlanks, 1)
	assert.Equal(t, progress.XPCorrectBlank, rec.xp)
}

func TestAdvance_ForeignTicket(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSession()
	b, _ := newTestSession()

	ticket, ok := a.SelectAnswer(ctx, 0, "hora")
	require.True(t, ok)
	_, ok = b.SelectAnswer(ctx, 0, "hora")
	require.True(t, ok)

	assert.False(t, b.Advance(ticket))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestToggleTranslations_IndependentOfProgress(t *testing.T) {
	s, rec := newTestSession()
	s.ToggleTranslations()
	assert.True(t, s.State().ShowTranslations)
	s.ToggleTranslations()
	assert.False(t, s.State().ShowTranslations)
	assert.Zero(t, rec.xp)
	assert.Equal(t, 0, s.State().CurrentLineIndex)
}

func TestState_IsACopy(t *testing.T) {
	s, _ := newTestSession()
	s.SelectAnswer(context.Background(), 0, "hora")

	st := s.State()
	st.CompletedBlanks[1] = Answer{Token: "x"}
	assert.Len(t, s.State().CompletedBlanks, 1)
}
