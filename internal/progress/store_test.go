package progress

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/habla/internal/store"
)

const testKey = "spanishLearningProgress"

// memBackend is an in-memory store.Backend that counts writes.
type memBackend struct {
	data   map[string][]byte
	puts   int
	getErr error
	putErr error
	delErr error
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string][]byte)}
}

func (m *memBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memBackend) Put(_ context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBackend) Delete(_ context.Context, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func (m *memBackend) Close() error { return nil }

func date(y int, mo time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: mo, Day: d}
}

func TestLoad_MissingKeyYieldsZeroRecord(t *testing.T) {
	s := Open(context.Background(), newMemBackend(), testKey, nil)

	rec := s.Record()
	assert.Empty(t, rec.CompletedLessons)
	assert.Empty(t, rec.VocabularyMastered)
	assert.Zero(t, rec.XPPoints)
	assert.Nil(t, rec.LastPracticeDate)
}

func TestLoad_MalformedDataYieldsZeroRecord(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", `{{{`},
		{"wrong type", `{"xpPoints":"lots"}`},
		{"bad date", `{"lastPracticeDate":"Mon Oct 14 2024"}`},
		{"array instead of object", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newMemBackend()
			b.data[testKey] = []byte(tt.blob)

			rec := Open(context.Background(), b, testKey, nil).Record()
			assert.Zero(t, rec.XPPoints)
			assert.Empty(t, rec.VocabularyMastered)
			assert.NotNil(t, rec.DialoguesCompleted)
		})
	}
}

func TestLoad_BackendErrorYieldsZeroRecord(t *testing.T) {
	b := newMemBackend()
	b.getErr = errors.New("disk on fire")

	rec := Open(context.Background(), b, testKey, nil).Record()
	assert.Zero(t, rec.XPPoints)
}

func TestLoad_MissingFieldsDefault(t *testing.T) {
	b := newMemBackend()
	b.data[testKey] = []byte(`{"xpPoints":120,"someFutureField":true}`)

	rec := Open(context.Background(), b, testKey, nil).Record()
	assert.Equal(t, 120, rec.XPPoints)
	assert.NotNil(t, rec.CompletedLessons)
	assert.Empty(t, rec.CompletedLessons)
}

func TestLoad_NegativeCountersClamped(t *testing.T) {
	b := newMemBackend()
	b.data[testKey] = []byte(`{"xpPoints":-5,"currentStreak":-1}`)

	rec := Open(context.Background(), b, testKey, nil).Record()
	assert.Zero(t, rec.XPPoints)
	assert.Zero(t, rec.CurrentStreak)
}

func TestEncode_WireFormat(t *testing.T) {
	rec := NewRecord()
	rec.CompletedLessons.Add(2)
	rec.CompletedLessons.Add(1)
	rec.VocabularyMastered.Add(5)
	rec.DialoguesCompleted.Add("Meeting Someone New")
	rec.XPPoints = 60
	rec.CurrentStreak = 3
	d := date(2026, time.October, 15)
	rec.LastPracticeDate = &d

	data, err := rec.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"completedLessons": [1, 2],
		"vocabularyMastered": [5],
		"grammarCompleted": [],
		"dialoguesCompleted": ["Meeting Someone New"],
		"xpPoints": 60,
		"currentStreak": 3,
		"lastPracticeDate": "2026-10-15"
	}`, string(data))
}

func TestRoundTrip_SaveLoadIsIdentity(t *testing.T) {
	rec := NewRecord()
	rec.CompletedLessons.Add(1)
	rec.VocabularyMastered.Add(1)
	rec.VocabularyMastered.Add(2)
	rec.GrammarCompleted.Add(1)
	rec.DialoguesCompleted.Add("At the Restaurant")
	rec.XPPoints = 95
	rec.CurrentStreak = 4
	d := date(2026, time.February, 28)
	rec.LastPracticeDate = &d

	data, err := rec.Encode()
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Never-practiced records keep a null date.
	empty, err := NewRecord().Encode()
	require.NoError(t, err)
	got, err = Decode(empty)
	require.NoError(t, err)
	assert.Equal(t, NewRecord(), got)
}

func TestMasterVocabulary_FirstAchievementOnly(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s := Open(ctx, b, testKey, nil)

	out := s.MasterVocabulary(ctx, 1)
	assert.True(t, out.Changed)
	assert.Equal(t, XPVocabularyMastered, out.XPAwarded)

	out = s.MasterVocabulary(ctx, 1)
	assert.False(t, out.Changed)
	assert.Zero(t, out.XPAwarded)

	rec := s.Record()
	assert.Equal(t, []int{1}, rec.VocabularyMastered.Sorted())
	assert.Equal(t, 10, rec.XPPoints)
	assert.Equal(t, 1, b.puts, "no-op mutation must not write")
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s := Open(ctx, b, testKey, nil)

	s.MasterVocabulary(ctx, 1)
	s.MasterVocabulary(ctx, 1)
	rec := s.Record()
	require.Equal(t, []int{1}, rec.VocabularyMastered.Sorted())
	require.Equal(t, 10, rec.XPPoints)

	s.CompleteLesson(ctx, 42)
	rec = s.Record()
	assert.Equal(t, []int{42}, rec.CompletedLessons.Sorted())
	assert.Equal(t, 60, rec.XPPoints)

	// The persisted blob matches memory.
	stored, err := Decode(b.data[testKey])
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestMutations(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemBackend(), testKey, nil)

	assert.Equal(t, XPGrammarCompleted, s.CompleteGrammar(ctx, 3).XPAwarded)
	assert.Zero(t, s.CompleteGrammar(ctx, 3).XPAwarded)

	out := s.CompleteDialogue(ctx, "Making Plans")
	assert.True(t, out.Changed)
	assert.Zero(t, out.XPAwarded)
	assert.False(t, s.CompleteDialogue(ctx, "Making Plans").Changed)

	// Blank XP is not an achievement and always counts.
	s.AddXP(ctx, XPCorrectBlank)
	s.AddXP(ctx, XPCorrectBlank)
	assert.False(t, s.AddXP(ctx, 0).Changed)
	assert.False(t, s.AddXP(ctx, -20).Changed)

	rec := s.Record()
	assert.Equal(t, 35, rec.XPPoints)
	assert.True(t, rec.GrammarCompleted.Has(3))
	assert.True(t, rec.DialoguesCompleted.Has("Making Plans"))
}

func TestEveryChangeIsWrittenThrough(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s := Open(ctx, b, testKey, nil)

	steps := []func(){
		func() { s.MasterVocabulary(ctx, 7) },
		func() { s.CompleteGrammar(ctx, 1) },
		func() { s.AddXP(ctx, 5) },
		func() { s.CompleteDialogue(ctx, "At the Restaurant") },
		func() { s.CompleteLesson(ctx, 1) },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, i+1, b.puts)
		stored, err := Decode(b.data[testKey])
		require.NoError(t, err)
		assert.Equal(t, s.Record(), stored)
	}
}

func TestApply_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	b.putErr = errors.New("read-only filesystem")
	s := Open(ctx, b, testKey, nil)

	out := s.MasterVocabulary(ctx, 3)
	assert.True(t, out.Changed)
	assert.True(t, s.Record().VocabularyMastered.Has(3))
	assert.Error(t, s.Save(ctx))
}

func TestRecordPractice(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("CEST", 2*60*60)
	b := newMemBackend()
	s := Open(ctx, b, testKey, nil)

	out := s.RecordPractice(ctx, time.Date(2026, time.October, 14, 23, 59, 0, 0, loc))
	assert.Equal(t, 1, s.Record().CurrentStreak)
	assert.True(t, out.Changed)

	// Two minutes later is a new calendar day.
	s.RecordPractice(ctx, time.Date(2026, time.October, 15, 0, 1, 0, 0, loc))
	rec := s.Record()
	assert.Equal(t, 2, rec.CurrentStreak)
	assert.Equal(t, date(2026, time.October, 15), *rec.LastPracticeDate)

	puts := b.puts
	out = s.RecordPractice(ctx, time.Date(2026, time.October, 15, 18, 0, 0, 0, loc))
	assert.False(t, out.Changed)
	assert.Equal(t, puts, b.puts)

	s.RecordPractice(ctx, time.Date(2026, time.October, 18, 9, 0, 0, 0, loc))
	assert.Equal(t, 1, s.Record().CurrentStreak)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s := Open(ctx, b, testKey, nil)
	s.MasterVocabulary(ctx, 1)
	s.RecordPractice(ctx, time.Now())
	puts := b.puts

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, NewRecord(), s.Record())
	assert.NotContains(t, b.data, testKey)
	assert.Equal(t, puts, b.puts, "reset deletes instead of writing")

	reopened := Open(ctx, b, testKey, nil)
	assert.Equal(t, NewRecord(), reopened.Record())
}

func TestReset_DeleteFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s := Open(ctx, b, testKey, nil)
	s.MasterVocabulary(ctx, 1)

	b.delErr = errors.New("disk gone")
	assert.Error(t, s.Reset(ctx))
	assert.True(t, s.Record().VocabularyMastered.Has(1))
}

func TestRecord_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemBackend(), testKey, nil)
	s.MasterVocabulary(ctx, 1)

	snap := s.Record()
	snap.VocabularyMastered.Add(99)
	snap.XPPoints = 1000

	assert.False(t, s.Record().VocabularyMastered.Has(99))
	assert.Equal(t, 10, s.Record().XPPoints)
}

func TestStore_PersistsAcrossReopenWithSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "habla.db")

	db, err := store.OpenSQLite(path)
	require.NoError(t, err)
	s := Open(ctx, db, testKey, nil)
	s.MasterVocabulary(ctx, 4)
	s.CompleteGrammar(ctx, 1)
	require.NoError(t, db.Close())

	db, err = store.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	rec := Open(ctx, db, testKey, nil).Record()
	assert.True(t, rec.VocabularyMastered.Has(4))
	assert.Equal(t, 35, rec.XPPoints)
}
