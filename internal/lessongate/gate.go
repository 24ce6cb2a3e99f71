// Package lessongate derives lesson progress and lock state from the
// progress record. Nothing here is stored.
package lessongate

import (
	"context"
	"math"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/progress"
)

// LessonProgress is the per-lesson completion breakdown.
type LessonProgress struct {
	VocabMastered int
	VocabTotal    int
	GrammarDone   bool
	DialogueDone  bool
	Percent       int
}

// Derive computes a lesson's progress. Vocabulary counts one step per word;
// grammar and dialogue count one step each.
func Derive(lesson catalog.Lesson, rec progress.Record) LessonProgress {
	p := LessonProgress{
		VocabTotal:   len(lesson.Vocabulary),
		GrammarDone:  rec.GrammarCompleted.Has(lesson.ID),
		DialogueDone: rec.DialoguesCompleted.Has(lesson.Dialogue.Title),
	}
	for _, id := range lesson.VocabularyIDs() {
		if rec.VocabularyMastered.Has(id) {
			p.VocabMastered++
		}
	}
	done := p.VocabMastered + boolInt(p.GrammarDone) + boolInt(p.DialogueDone)
	p.Percent = percent(done, p.VocabTotal+2)
	return p
}

// Gate is a lesson's position within its level.
type Gate struct {
	Lesson    catalog.Lesson
	Locked    bool
	Completed bool
}

// Gates returns the lock state of every lesson in level, in order. The first
// lesson is always open; each later one opens when its predecessor is
// completed.
func Gates(level catalog.Level, rec progress.Record) []Gate {
	gates := make([]Gate, len(level.Lessons))
	for i, l := range level.Lessons {
		gates[i] = Gate{
			Lesson:    l,
			Locked:    i > 0 && !rec.CompletedLessons.Has(level.Lessons[i-1].ID),
			Completed: rec.CompletedLessons.Has(l.ID),
		}
	}
	return gates
}

// Locked reports whether lesson id is locked within its level.
func Locked(cat *catalog.Catalog, id int, rec progress.Record) bool {
	_, level, ok := cat.Lesson(id)
	if !ok {
		return true
	}
	for _, g := range Gates(level, rec) {
		if g.Lesson.ID == id {
			return g.Locked
		}
	}
	return true
}

// Summary is the dashboard roll-up across the whole catalog.
type Summary struct {
	LessonsCompleted int
	LessonsTotal     int
	WordsMastered    int
	WordsTotal       int
	Percent          int
}

// Overall counts completed lessons and mastered words that the catalog
// knows about. Ids in the record with no catalog entry are ignored.
func Overall(cat *catalog.Catalog, rec progress.Record) Summary {
	var s Summary
	for _, level := range cat.Levels() {
		for _, l := range level.Lessons {
			s.LessonsTotal++
			if rec.CompletedLessons.Has(l.ID) {
				s.LessonsCompleted++
			}
			for _, w := range l.Vocabulary {
				s.WordsTotal++
				if rec.VocabularyMastered.Has(w.ID) {
					s.WordsMastered++
				}
			}
		}
	}
	s.Percent = percent(s.LessonsCompleted, s.LessonsTotal)
	return s
}

// Completer is the slice of the progress store a lesson overview writes to.
type Completer interface {
	CompleteGrammar(ctx context.Context, lessonID int) progress.Outcome
	CompleteLesson(ctx context.Context, lessonID int) progress.Outcome
}

// Overview exposes the explicit completion intents of one lesson.
type Overview struct {
	Lesson catalog.Lesson
	store  Completer
}

// NewOverview binds lesson to store.
func NewOverview(lesson catalog.Lesson, store Completer) *Overview {
	return &Overview{Lesson: lesson, store: store}
}

// CompleteGrammarNow marks the lesson's grammar unit as studied.
func (o *Overview) CompleteGrammarNow(ctx context.Context) progress.Outcome {
	return o.store.CompleteGrammar(ctx, o.Lesson.ID)
}

// CompleteLessonNow marks the lesson completed, whatever its progress. It is
// the only way a lesson becomes completed.
func (o *Overview) CompleteLessonNow(ctx context.Context) progress.Outcome {
	return o.store.CompleteLesson(ctx, o.Lesson.ID)
}

// percent returns done/total as a whole percentage rounded half away from zero.
func percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
