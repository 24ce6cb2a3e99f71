package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/progress"
)

func testRecord() progress.Record {
	rec := progress.NewRecord()
	rec.CompletedLessons.Add(1)
	rec.VocabularyMastered.Add(1)
	rec.VocabularyMastered.Add(2)
	rec.GrammarCompleted.Add(1)
	rec.XPPoints = 95
	rec.CurrentStreak = 3
	d := civil.Date{Year: 2026, Month: time.October, Day: 14}
	rec.LastPracticeDate = &d
	return rec
}

func testReport(t *testing.T) Report {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return Build(cat, testRecord(), time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC))
}

func TestBuild(t *testing.T) {
	r := testReport(t)

	assert.Equal(t, 95, r.XP)
	assert.Equal(t, 3, r.Streak)
	assert.Equal(t, "2026-10-14", r.LastPractice)
	assert.Equal(t, 1, r.Overall.LessonsCompleted)
	assert.Equal(t, 3, r.Overall.LessonsTotal)
	assert.Equal(t, 2, r.Overall.WordsMastered)

	require.Len(t, r.Lessons, 3)
	assert.Equal(t, StatusCompleted, r.Lessons[0].Status)
	assert.Equal(t, StatusOpen, r.Lessons[1].Status)
	assert.Equal(t, StatusOpen, r.Lessons[2].Status, "first lesson of a level is open")
	assert.Equal(t, 2, r.Lessons[0].VocabMastered)
	assert.True(t, r.Lessons[0].Grammar)
	assert.Equal(t, 43, r.Lessons[0].Percent)

	assert.Len(t, r.Words, 15)
	assert.True(t, r.Words[0].Mastered)
	assert.False(t, r.Words[2].Mastered)
}

func TestBuild_NeverPracticed(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	r := Build(cat, progress.NewRecord(), time.Now())
	assert.Equal(t, "never", r.LastPractice)
	assert.Equal(t, StatusLocked, r.Lessons[1].Status)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Beginner", levelName(catalog.Level{Key: "x", Title: "Beginner"}))
	assert.Equal(t, "Upper Intermediate", levelName(catalog.Level{Key: "upper_intermediate"}))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testReport(t)))

	out := buf.String()
	assert.Contains(t, out, "XP:             95")
	assert.Contains(t, out, "Lessons:        1/3")
	assert.Contains(t, out, "Greetings & Introductions")
	assert.Contains(t, out, "completed")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, WriteWorkbook(path, testReport(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetLessons, sheetVocabulary}, f.GetSheetList())

	xp, err := f.GetCellValue(sheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "95", xp)

	rows, err := f.GetRows(sheetLessons)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Greetings & Introductions", rows[1][2])
	assert.Equal(t, StatusCompleted, rows[1][3])

	words, err := f.GetRows(sheetVocabulary)
	require.NoError(t, err)
	assert.Len(t, words, 16)
}
