package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/habla/internal/logger"
	"github.com/abhisek/habla/internal/store"
	"github.com/abhisek/habla/internal/streak"
)

// Store owns the learner's progress record. Every mutation goes through
// Apply and is written to the backend before Apply returns.
type Store struct {
	backend store.Backend
	key     string
	log     *logger.Logger
	rec     Record
}

// Open creates a Store over backend and loads the record stored under key.
func Open(ctx context.Context, backend store.Backend, key string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		backend: backend,
		key:     key,
		log:     log.With("component", "progress"),
	}
	s.rec = s.Load(ctx)
	return s
}

// Load reads the stored record. Missing or malformed data yields the zero
// record; the problem is logged, never returned.
func (s *Store) Load(ctx context.Context) Record {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("progress unreadable, starting fresh", "key", s.key, "error", err)
		return NewRecord()
	}
	if !ok {
		s.log.Info("no stored progress, starting fresh", "key", s.key)
		return NewRecord()
	}
	rec, err := Decode(data)
	if err != nil {
		s.log.Warn("progress malformed, starting fresh", "key", s.key, "error", err)
		return NewRecord()
	}
	return rec
}

// Save writes the full record to the backend.
func (s *Store) Save(ctx context.Context) error {
	data, err := s.rec.Encode()
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Record returns a copy of the current record.
func (s *Store) Record() Record {
	return s.rec.Clone()
}

// Apply runs m against the record and persists the result if anything
// changed. A failed write is logged; the in-memory record keeps the change.
func (s *Store) Apply(ctx context.Context, m Mutation) Outcome {
	out := m.apply(&s.rec)
	if !out.Changed {
		s.log.Debug("mutation was a no-op", "mutation", m.Name())
		return out
	}
	if err := s.Save(ctx); err != nil {
		s.log.Error("persist progress failed", "mutation", m.Name(), "error", err)
	}
	s.log.Info("progress updated",
		"mutation", m.Name(),
		"xp_awarded", out.XPAwarded,
		"xp_total", s.rec.XPPoints,
	)
	return out
}

func (s *Store) AddXP(ctx context.Context, amount int) Outcome {
	return s.Apply(ctx, AddXP{Amount: amount})
}

func (s *Store) MasterVocabulary(ctx context.Context, wordID int) Outcome {
	return s.Apply(ctx, MasterVocabulary{WordID: wordID})
}

func (s *Store) CompleteLesson(ctx context.Context, lessonID int) Outcome {
	return s.Apply(ctx, CompleteLesson{LessonID: lessonID})
}

func (s *Store) CompleteGrammar(ctx context.Context, lessonID int) Outcome {
	return s.Apply(ctx, CompleteGrammar{LessonID: lessonID})
}

func (s *Store) CompleteDialogue(ctx context.Context, title string) Outcome {
	return s.Apply(ctx, CompleteDialogue{Title: title})
}

// RecordPractice runs the streak rules for the calendar day of now.
func (s *Store) RecordPractice(ctx context.Context, now time.Time) Outcome {
	out := s.Apply(ctx, RecordPractice{Today: streak.Today(now)})
	s.log.Info("streak evaluated", "outcome", out.Streak, "streak", s.rec.CurrentStreak)
	return out
}

// Reset wipes all progress by deleting the stored record. The in-memory
// record is cleared only once the delete succeeds.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	s.rec = NewRecord()
	s.log.Info("progress reset", "key", s.key)
	return nil
}
