// Package report summarizes learner progress for the stats command.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/lessongate"
	"github.com/abhisek/habla/internal/progress"
)

// Lesson status values.
const (
	StatusLocked    = "locked"
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// LessonRow is one lesson's progress line.
type LessonRow struct {
	Level         string
	ID            int
	Title         string
	Status        string
	VocabMastered int
	VocabTotal    int
	Grammar       bool
	Dialogue      bool
	Percent       int
}

// WordRow is one vocabulary item and whether it is mastered.
type WordRow struct {
	ID       int
	Spanish  string
	English  string
	LessonID int
	Mastered bool
}

// Report is a point-in-time view of progress against the catalog.
type Report struct {
	GeneratedAt  time.Time
	XP           int
	Streak       int
	LastPractice string
	Overall      lessongate.Summary
	Lessons      []LessonRow
	Words        []WordRow
}

// Build derives a report from the catalog and a progress snapshot.
func Build(cat *catalog.Catalog, rec progress.Record, now time.Time) Report {
	r := Report{
		GeneratedAt:  now,
		XP:           rec.XPPoints,
		Streak:       rec.CurrentStreak,
		LastPractice: "never",
		Overall:      lessongate.Overall(cat, rec),
	}
	if rec.LastPracticeDate != nil {
		r.LastPractice = rec.LastPracticeDate.String()
	}

	for _, level := range cat.Levels() {
		name := levelName(level)
		for _, g := range lessongate.Gates(level, rec) {
			p := lessongate.Derive(g.Lesson, rec)
			status := StatusOpen
			switch {
			case g.Completed:
				status = StatusCompleted
			case g.Locked:
				status = StatusLocked
			}
			r.Lessons = append(r.Lessons, LessonRow{
				Level:         name,
				ID:            g.Lesson.ID,
				Title:         g.Lesson.Title,
				Status:        status,
				VocabMastered: p.VocabMastered,
				VocabTotal:    p.VocabTotal,
				Grammar:       p.GrammarDone,
				Dialogue:      p.DialogueDone,
				Percent:       p.Percent,
			})
			for _, w := range g.Lesson.Vocabulary {
				r.Words = append(r.Words, WordRow{
					ID:       w.ID,
					Spanish:  w.Spanish,
					English:  w.English,
					LessonID: g.Lesson.ID,
					Mastered: rec.VocabularyMastered.Has(w.ID),
				})
			}
		}
	}
	return r
}

// levelName prefers the level's title and falls back to its key.
func levelName(l catalog.Level) string {
	if l.Title != "" {
		return l.Title
	}
	return cases.Title(language.English).String(strings.ReplaceAll(l.Key, "_", " "))
}

// WriteText prints the report as plain text tables.
func WriteText(w io.Writer, r Report) error {
	sep := strings.Repeat("─", 72)
	var b strings.Builder

	fmt.Fprintf(&b, "XP:             %d\n", r.XP)
	fmt.Fprintf(&b, "Streak:         %d day(s)\n", r.Streak)
	fmt.Fprintf(&b, "Last practice:  %s\n", r.LastPractice)
	fmt.Fprintf(&b, "Lessons:        %d/%d\n", r.Overall.LessonsCompleted, r.Overall.LessonsTotal)
	fmt.Fprintf(&b, "Words mastered: %d/%d\n", r.Overall.WordsMastered, r.Overall.WordsTotal)
	fmt.Fprintf(&b, "Overall:        %d%%\n", r.Overall.Percent)
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-4s  %-14s  %-28s  %-9s  %-6s  %-7s  %-8s  %s\n",
		"ID", "Level", "Lesson", "Status", "Words", "Grammar", "Dialogue", "Done")
	b.WriteString(sep + "\n")
	for _, l := range r.Lessons {
		title := l.Title
		if len(title) > 28 {
			title = title[:28]
		}
		fmt.Fprintf(&b, "%-4d  %-14s  %-28s  %-9s  %-6s  %-7s  %-8s  %d%%\n",
			l.ID,
			l.Level,
			title,
			l.Status,
			fmt.Sprintf("%d/%d", l.VocabMastered, l.VocabTotal),
			mark(l.Grammar),
			mark(l.Dialogue),
			l.Percent,
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mark(done bool) string {
	if done {
		return "✓"
	}
	return "-"
}
