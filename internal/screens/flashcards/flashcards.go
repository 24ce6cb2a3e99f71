package flashcards

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/flashcard"
	"github.com/abhisek/habla/internal/screen"
	"github.com/abhisek/habla/internal/speech"
	"github.com/abhisek/habla/internal/ui/components"
	"github.com/abhisek/habla/internal/ui/layout"
	"github.com/abhisek/habla/internal/ui/theme"
)

const feedbackDuration = 1200 * time.Millisecond

var (
	keyFlip          = key.NewBinding(key.WithKeys("space", "f"), key.WithHelp("Space", "Flip"))
	keyNext          = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Next"))
	keyPrev          = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Prev"))
	keyPronunciation = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "Pronunciation"))
	keyKnow          = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "I know it"))
	keyLearning      = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "Still learning"))
	keySpeak         = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Listen"))
	keyRecord        = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Record"))
	keyPlayback      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Play back"))
)

// feedbackDoneMsg clears the XP banner.
type feedbackDoneMsg struct{ seq int }

// recordingDoneMsg carries a stopped recording.
type recordingDoneMsg struct {
	rec speech.Recording
	err error
}

// FlashcardScreen drills a lesson's vocabulary.
type FlashcardScreen struct {
	deps    screen.Deps
	lesson  catalog.Lesson
	browser *flashcard.Browser

	feedback    string
	feedbackSeq int
	recording   *speech.Recording
}

var _ screen.Screen = (*FlashcardScreen)(nil)

// New creates the flashcard screen for lesson.
func New(deps screen.Deps, lesson catalog.Lesson) *FlashcardScreen {
	deps = deps.WithDefaults()
	return &FlashcardScreen{
		deps:    deps,
		lesson:  lesson,
		browser: flashcard.New(lesson.Vocabulary, deps.Progress),
	}
}

func (s *FlashcardScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardScreen) Title() string {
	return "Flashcards · " + s.lesson.Title
}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if msg.seq == s.feedbackSeq {
			s.feedback = ""
		}
		return s, nil

	case recordingDoneMsg:
		if msg.err != nil {
			s.deps.Log.Warn("recording failed", "error", msg.err)
			return s, nil
		}
		rec := msg.rec
		s.recording = &rec
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *FlashcardScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if _, ok := s.browser.Current(); !ok {
		return nil
	}
	ctx := context.Background()
	switch {
	case key.Matches(msg, keyFlip):
		s.browser.Flip()
	case key.Matches(msg, keyNext):
		s.browser.Next()
	case key.Matches(msg, keyPrev):
		s.browser.Prev()
	case key.Matches(msg, keyPronunciation):
		s.browser.TogglePronunciation()
	case key.Matches(msg, keyKnow):
		out := s.browser.MarkOutcome(ctx, true)
		if out.XPAwarded > 0 {
			return s.showFeedback(fmt.Sprintf("¡Excelente! +%d XP", out.XPAwarded))
		}
		return s.showFeedback("Already mastered")
	case key.Matches(msg, keyLearning):
		s.browser.MarkOutcome(ctx, false)
		return s.showFeedback("Keep practicing")
	case key.Matches(msg, keySpeak):
		if w, ok := s.browser.Current(); ok {
			return s.deps.Speak(w.Spanish)
		}
	case key.Matches(msg, keyRecord):
		return s.toggleRecording()
	case key.Matches(msg, keyPlayback):
		if s.recording != nil {
			rec := s.recording
			return func() tea.Msg {
				return screen.SpeechDoneMsg{Err: rec.Play(context.Background())}
			}
		}
	}
	return nil
}

func (s *FlashcardScreen) toggleRecording() tea.Cmd {
	r := s.deps.Recorder
	if !r.Available() {
		return nil
	}
	if !r.Active() {
		if err := r.Start(context.Background()); err != nil {
			s.deps.Log.Warn("start recording failed", "error", err)
		}
		return nil
	}
	return func() tea.Msg {
		rec, err := r.Stop()
		return recordingDoneMsg{rec: rec, err: err}
	}
}

func (s *FlashcardScreen) showFeedback(text string) tea.Cmd {
	s.feedback = text
	s.feedbackSeq++
	seq := s.feedbackSeq
	return tea.Tick(feedbackDuration, func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

// Close stops a recording left running.
func (s *FlashcardScreen) Close() {
	if s.deps.Recorder.Active() {
		_, _ = s.deps.Recorder.Stop()
	}
}

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	pron, speak, record, playback := keyPronunciation, keySpeak, keyRecord, keyPlayback
	pron.SetEnabled(s.browser.State().IsFlipped)
	speak.SetEnabled(s.deps.Speaker.Available())
	record.SetEnabled(s.deps.Recorder.Available())
	playback.SetEnabled(s.recording != nil)
	return components.Hints(keyFlip, keyPrev, keyNext, pron, keyKnow, keyLearning,
		speak, record, playback, components.KeyBack)
}

func (s *FlashcardScreen) View(width, height int) string {
	word, ok := s.browser.Current()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("This lesson has no vocabulary."))
	}
	st := s.browser.State()
	rec := s.deps.Progress.Record()

	var sections []string
	sections = append(sections, theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", st.CurrentIndex+1, st.Total)))

	cardWidth := min(56, width-8)
	var face string
	if st.IsFlipped {
		lines := []string{
			theme.Spanish.Render(word.Spanish),
			"",
			theme.Body.Render(word.English),
		}
		if st.ShowPronunciation {
			lines = append(lines, theme.Hint.Render("/"+word.Pronunciation+"/"))
		}
		if word.Example != "" {
			lines = append(lines, "", theme.Body.Render("“"+word.Example+"”"), theme.Hint.Render(word.Translation))
		}
		face = strings.Join(lines, "\n")
	} else {
		face = theme.Spanish.Render(word.Spanish) + "\n\n" + theme.Hint.Render("press space to reveal")
	}
	if rec.VocabularyMastered.Has(word.ID) {
		face += "\n\n" + theme.Correct.Render("✓ mastered")
	}
	sections = append(sections, theme.Flashcard.Width(cardWidth).Render(face))

	if s.deps.Recorder.Active() {
		sections = append(sections, theme.Incorrect.Render("● recording… press r to stop"))
	} else if s.recording != nil {
		sections = append(sections, theme.Hint.Render(fmt.Sprintf("recording ready (%.1fs), press a to play", s.recording.Duration.Seconds())))
	}

	if s.feedback != "" {
		sections = append(sections, theme.Correct.Render(s.feedback))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
