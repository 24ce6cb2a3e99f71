// Package flashcard implements the vocabulary card browser for a lesson.
package flashcard

import (
	"context"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/progress"
)

// MasteryRecorder records that a word was mastered. *progress.Store
// satisfies it.
type MasteryRecorder interface {
	MasterVocabulary(ctx context.Context, wordID int) progress.Outcome
}

// State is a snapshot of the browser for rendering.
type State struct {
	CurrentIndex      int
	Total             int
	IsFlipped         bool
	ShowPronunciation bool
}

// Browser walks a lesson's vocabulary as a circular deck of cards.
type Browser struct {
	words    []catalog.VocabularyItem
	recorder MasteryRecorder

	index         int
	flipped       bool
	pronunciation bool
}

// New creates a browser at the first card, front side up.
func New(words []catalog.VocabularyItem, recorder MasteryRecorder) *Browser {
	return &Browser{words: words, recorder: recorder}
}

// State returns the current snapshot.
func (b *Browser) State() State {
	return State{
		CurrentIndex:      b.index,
		Total:             len(b.words),
		IsFlipped:         b.flipped,
		ShowPronunciation: b.pronunciation,
	}
}

// Current returns the word on the current card. ok is false for an empty deck.
func (b *Browser) Current() (catalog.VocabularyItem, bool) {
	if len(b.words) == 0 {
		return catalog.VocabularyItem{}, false
	}
	return b.words[b.index], true
}

// Flip turns the card to its back. It reports whether anything changed.
func (b *Browser) Flip() bool {
	if len(b.words) == 0 || b.flipped {
		return false
	}
	b.flipped = true
	return true
}

// Next moves to the following card, wrapping after the last.
func (b *Browser) Next() {
	b.move(1)
}

// Prev moves to the preceding card, wrapping before the first.
func (b *Browser) Prev() {
	b.move(-1)
}

func (b *Browser) move(delta int) {
	n := len(b.words)
	if n == 0 {
		return
	}
	b.index = ((b.index+delta)%n + n) % n
	b.flipped = false
	b.pronunciation = false
}

// TogglePronunciation shows or hides the pronunciation guide. Only the back
// of a card carries it, so the call is ignored on the front.
func (b *Browser) TogglePronunciation() bool {
	if len(b.words) == 0 || !b.flipped {
		return false
	}
	b.pronunciation = !b.pronunciation
	return true
}

// MarkOutcome records the learner's verdict on the current card and moves on.
// Only a mastered verdict touches progress.
func (b *Browser) MarkOutcome(ctx context.Context, mastered bool) progress.Outcome {
	word, ok := b.Current()
	if !ok {
		return progress.Outcome{}
	}
	var out progress.Outcome
	if mastered && b.recorder != nil {
		out = b.recorder.MasterVocabulary(ctx, word.ID)
	}
	b.Next()
	return out
}
