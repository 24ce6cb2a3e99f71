package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary    = "Summary"
	sheetLessons    = "Lessons"
	sheetVocabulary = "Vocabulary"
)

// WriteWorkbook exports the report as an xlsx workbook with one sheet each
// for the summary, lessons and vocabulary.
func WriteWorkbook(path string, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetLessons, sheetVocabulary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"XP", r.XP},
		{"Streak", r.Streak},
		{"Last practice", r.LastPractice},
		{"Lessons completed", r.Overall.LessonsCompleted},
		{"Lessons total", r.Overall.LessonsTotal},
		{"Words mastered", r.Overall.WordsMastered},
		{"Words total", r.Overall.WordsTotal},
	}
	if err := writeRows(f, sheetSummary, summary, header); err != nil {
		return err
	}

	lessons := [][]interface{}{
		{"ID", "Level", "Lesson", "Status", "Words mastered", "Words", "Grammar", "Dialogue", "Progress %"},
	}
	for _, l := range r.Lessons {
		lessons = append(lessons, []interface{}{
			l.ID, l.Level, l.Title, l.Status, l.VocabMastered, l.VocabTotal, l.Grammar, l.Dialogue, l.Percent,
		})
	}
	if err := writeRows(f, sheetLessons, lessons, header); err != nil {
		return err
	}

	words := [][]interface{}{
		{"ID", "Spanish", "English", "Lesson", "Mastered"},
	}
	for _, w := range r.Words {
		words = append(words, []interface{}{w.ID, w.Spanish, w.English, w.LessonID, w.Mastered})
	}
	if err := writeRows(f, sheetVocabulary, words, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeRows fills sheet from A1 and bolds the first row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, header int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "I", 16)
}
