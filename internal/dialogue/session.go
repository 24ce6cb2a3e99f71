// Package dialogue runs a fill-in-the-blank conversation practice.
package dialogue

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/logger"
	"github.com/abhisek/habla/internal/progress"
)

// Recorder is the slice of the progress store a session writes to.
type Recorder interface {
	AddXP(ctx context.Context, amount int) progress.Outcome
	CompleteDialogue(ctx context.Context, title string) progress.Outcome
}

// Answer is the learner's recorded choice for one line.
type Answer struct {
	Token     string
	IsCorrect bool
}

// State is a snapshot of the session for rendering.
type State struct {
	CurrentLineIndex int
	CompletedBlanks  map[int]Answer
	ShowTranslations bool
	Complete         bool
	Closed           bool
}

// Ticket authorizes one pending auto-advance. It goes stale when the session
// is reset or closed before the advance is delivered.
type Ticket struct {
	SessionID  string
	generation uint64
	line       int
}

// Session is one run through a dialogue. A Session is driven from a single
// goroutine.
type Session struct {
	ID       string
	dialogue catalog.Dialogue
	recorder Recorder
	log      *logger.Logger

	current      int
	answers      map[int]Answer
	translations bool
	generation   uint64
	closed       bool
}

// New starts a session at the first line.
func New(d catalog.Dialogue, recorder Recorder, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	id := uuid.New().String()
	return &Session{
		ID:       id,
		dialogue: d,
		recorder: recorder,
		log:      log.With("dialogue_session", id, "dialogue", d.Title),
		answers:  make(map[int]Answer),
	}
}

// Dialogue returns the dialogue being practiced.
func (s *Session) Dialogue() catalog.Dialogue {
	return s.dialogue
}

// State returns the current snapshot.
func (s *Session) State() State {
	blanks := make(map[int]Answer, len(s.answers))
	for k, v := range s.answers {
		blanks[k] = v
	}
	return State{
		CurrentLineIndex: s.current,
		CompletedBlanks:  blanks,
		ShowTranslations: s.translations,
		Complete:         s.Complete(),
		Closed:           s.closed,
	}
}

// SelectAnswer records token as the answer for line. It is accepted only for
// the current, unanswered line; a correct answer earns XP. The returned
// ticket must be passed to Advance once the feedback delay has elapsed.
func (s *Session) SelectAnswer(ctx context.Context, line int, token string) (Ticket, bool) {
	if s.closed || line != s.current || line < 0 || line >= len(s.dialogue.Lines) {
		return Ticket{}, false
	}
	if _, answered := s.answers[line]; answered {
		return Ticket{}, false
	}

	correct := sameToken(token, s.dialogue.Lines[line].Blank)
	s.answers[line] = Answer{Token: token, IsCorrect: correct}
	if correct && s.recorder != nil {
		s.recorder.AddXP(ctx, progress.XPCorrectBlank)
	}
	s.log.Debug("answer recorded", "line", line, "correct", correct)

	return Ticket{SessionID: s.ID, generation: s.generation, line: line}, true
}

// Advance moves past the line the ticket was issued for. Stale tickets are
// ignored. After the last line the current index points past the end.
func (s *Session) Advance(t Ticket) bool {
	if s.closed || t.SessionID != s.ID || t.generation != s.generation {
		return false
	}
	if _, answered := s.answers[t.line]; !answered || s.current != t.line {
		return false
	}
	s.current = t.line + 1
	return true
}

// Complete reports whether every line has an answer, right or wrong.
func (s *Session) Complete() bool {
	return len(s.answers) == len(s.dialogue.Lines)
}

// Score returns the number of correct answers and the number of lines.
func (s *Session) Score() (correct, total int) {
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}
	return correct, len(s.dialogue.Lines)
}

// Reset starts the dialogue over. The translation toggle is kept and any
// pending advance is canceled.
func (s *Session) Reset() {
	if s.closed {
		return
	}
	s.generation++
	s.current = 0
	s.answers = make(map[int]Answer)
}

// Finish marks the dialogue completed in progress. It does nothing until
// every line is answered.
func (s *Session) Finish(ctx context.Context) bool {
	if s.closed || !s.Complete() {
		return false
	}
	if s.recorder != nil {
		s.recorder.CompleteDialogue(ctx, s.dialogue.Title)
	}
	correct, total := s.Score()
	s.log.Info("dialogue finished", "correct", correct, "total", total)
	return true
}

// ToggleTranslations shows or hides the English lines.
func (s *Session) ToggleTranslations() {
	if s.closed {
		return
	}
	s.translations = !s.translations
}

// Close tears the session down. Pending tickets go stale and every later
// intent is ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.generation++
}

func sameToken(a, b string) bool {
	return norm.NFC.String(a) == norm.NFC.String(b)
}
