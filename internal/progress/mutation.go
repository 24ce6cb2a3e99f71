package progress

import (
	"cloud.google.com/go/civil"

	"github.com/abhisek/habla/internal/streak"
)

// XP awards.
const (
	XPVocabularyMastered = 10
	XPLessonCompleted    = 50
	XPGrammarCompleted   = 25
	XPCorrectBlank       = 5
)

// Outcome reports what a mutation changed.
type Outcome struct {
	Changed   bool
	XPAwarded int
	Streak    streak.Outcome // set by RecordPractice only
}

// Mutation is a single command against the progress record.
type Mutation interface {
	// Name identifies the mutation in logs.
	Name() string

	apply(r *Record) Outcome
}

// AddXP adds Amount experience points. Non-positive amounts are ignored.
type AddXP struct{ Amount int }

func (AddXP) Name() string { return "add_xp" }

func (m AddXP) apply(r *Record) Outcome {
	if m.Amount <= 0 {
		return Outcome{}
	}
	r.XPPoints += m.Amount
	return Outcome{Changed: true, XPAwarded: m.Amount}
}

// award inserts via add and grants xp only on first insertion.
func award(r *Record, inserted bool, xp int) Outcome {
	if !inserted {
		return Outcome{}
	}
	r.XPPoints += xp
	return Outcome{Changed: true, XPAwarded: xp}
}

// MasterVocabulary marks a word as mastered.
type MasterVocabulary struct{ WordID int }

func (MasterVocabulary) Name() string { return "master_vocabulary" }

func (m MasterVocabulary) apply(r *Record) Outcome {
	return award(r, r.VocabularyMastered.Add(m.WordID), XPVocabularyMastered)
}

// CompleteLesson marks a lesson as completed.
type CompleteLesson struct{ LessonID int }

func (CompleteLesson) Name() string { return "complete_lesson" }

func (m CompleteLesson) apply(r *Record) Outcome {
	return award(r, r.CompletedLessons.Add(m.LessonID), XPLessonCompleted)
}

// CompleteGrammar marks the grammar unit of a lesson as completed.
type CompleteGrammar struct{ LessonID int }

func (CompleteGrammar) Name() string { return "complete_grammar" }

func (m CompleteGrammar) apply(r *Record) Outcome {
	return award(r, r.GrammarCompleted.Add(m.LessonID), XPGrammarCompleted)
}

// CompleteDialogue marks a dialogue as completed. Dialogue XP is earned per
// correct blank, so this awards none.
type CompleteDialogue struct{ Title string }

func (CompleteDialogue) Name() string { return "complete_dialogue" }

func (m CompleteDialogue) apply(r *Record) Outcome {
	return Outcome{Changed: r.DialoguesCompleted.Add(m.Title)}
}

// RecordPractice runs the streak rules for Today.
type RecordPractice struct{ Today civil.Date }

func (RecordPractice) Name() string { return "record_practice" }

func (m RecordPractice) apply(r *Record) Outcome {
	res := streak.Evaluate(m.Today, r.LastPracticeDate, r.CurrentStreak)
	if res.Outcome == streak.OutcomeUnchanged {
		return Outcome{Streak: res.Outcome}
	}
	last := res.LastPractice
	r.CurrentStreak = res.Streak
	r.LastPracticeDate = &last
	return Outcome{Changed: true, Streak: res.Outcome}
}
