package streak

import (
	"time"

	"cloud.google.com/go/civil"
)

// Outcome describes what a streak evaluation did.
type Outcome string

const (
	OutcomeUnchanged Outcome = "unchanged" // already counted today
	OutcomeExtended  Outcome = "extended"  // practiced yesterday
	OutcomeReset     Outcome = "reset"     // first practice, or a gap of 2+ days
)

// Result is the streak state after an evaluation.
type Result struct {
	Streak       int
	LastPractice civil.Date
	Outcome      Outcome
}

// Today returns the calendar date of now in now's own location, so callers
// control the time zone by choosing what clock they pass.
func Today(now time.Time) civil.Date {
	return civil.DateOf(now)
}

// Evaluate decides the new streak from the last practice date and today.
// A nil last means the learner never practiced. It is idempotent per day:
// evaluating twice on the same date leaves the second result unchanged.
func Evaluate(today civil.Date, last *civil.Date, current int) Result {
	if last != nil && *last == today {
		return Result{Streak: current, LastPractice: today, Outcome: OutcomeUnchanged}
	}
	if last != nil && last.AddDays(1) == today {
		return Result{Streak: current + 1, LastPractice: today, Outcome: OutcomeExtended}
	}
	// A last date after today (clock moved backwards) counts as a gap too.
	return Result{Streak: 1, LastPractice: today, Outcome: OutcomeReset}
}
