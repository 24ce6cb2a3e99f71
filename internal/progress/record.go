package progress

import (
	"encoding/json"

	"cloud.google.com/go/civil"
)

// Record is everything the learner has achieved. Field names on the wire
// match the blob written by earlier versions of the app.
type Record struct {
	CompletedLessons   IntSet      `json:"completedLessons"`
	VocabularyMastered IntSet      `json:"vocabularyMastered"`
	GrammarCompleted   IntSet      `json:"grammarCompleted"`
	DialoguesCompleted StringSet   `json:"dialoguesCompleted"`
	XPPoints           int         `json:"xpPoints"`
	CurrentStreak      int         `json:"currentStreak"`
	LastPracticeDate   *civil.Date `json:"lastPracticeDate"`
}

// NewRecord returns the zero record: empty sets, no XP, never practiced.
func NewRecord() Record {
	return Record{
		CompletedLessons:   NewIntSet(),
		VocabularyMastered: NewIntSet(),
		GrammarCompleted:   NewIntSet(),
		DialoguesCompleted: NewStringSet(),
	}
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := r
	out.CompletedLessons = r.CompletedLessons.clone()
	out.VocabularyMastered = r.VocabularyMastered.clone()
	out.GrammarCompleted = r.GrammarCompleted.clone()
	out.DialoguesCompleted = r.DialoguesCompleted.clone()
	if r.LastPracticeDate != nil {
		d := *r.LastPracticeDate
		out.LastPracticeDate = &d
	}
	return out
}

// Decode parses a stored blob. Fields missing from the blob keep their zero
// values; negative counters are clamped to zero.
func Decode(data []byte) (Record, error) {
	rec := NewRecord()
	if err := json.Unmarshal(data, &rec); err != nil {
		return NewRecord(), err
	}
	rec.normalize()
	return rec, nil
}

// Encode serializes the full record.
func (r Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Record) normalize() {
	if r.CompletedLessons == nil {
		r.CompletedLessons = NewIntSet()
	}
	if r.VocabularyMastered == nil {
		r.VocabularyMastered = NewIntSet()
	}
	if r.GrammarCompleted == nil {
		r.GrammarCompleted = NewIntSet()
	}
	if r.DialoguesCompleted == nil {
		r.DialoguesCompleted = NewStringSet()
	}
	if r.XPPoints < 0 {
		r.XPPoints = 0
	}
	if r.CurrentStreak < 0 {
		r.CurrentStreak = 0
	}
}
