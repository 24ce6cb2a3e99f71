package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/habla/internal/catalog"
	"github.com/abhisek/habla/internal/logger"
	"github.com/abhisek/habla/internal/progress"
	"github.com/abhisek/habla/internal/speech"
)

// Deps are the services shared by every screen.
type Deps struct {
	Progress    *progress.Store
	Catalog     *catalog.Catalog
	Speaker     speech.Speaker
	Recorder    speech.Recorder
	Log         *logger.Logger
	SpeechLang  string
	AutoAdvance time.Duration
}

// WithDefaults fills unset optional services.
func (d Deps) WithDefaults() Deps {
	if d.Speaker == nil {
		d.Speaker = speech.Unavailable{}
	}
	if d.Recorder == nil {
		d.Recorder = speech.Unavailable{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.SpeechLang == "" {
		d.SpeechLang = "es-ES"
	}
	if d.AutoAdvance <= 0 {
		d.AutoAdvance = 1500 * time.Millisecond
	}
	return d
}

// SpeechDoneMsg reports the end of a speak or playback request.
type SpeechDoneMsg struct {
	Err error
}

// Speak returns a command that reads text aloud off the event loop. A
// missing speech tool is not an error.
func (d Deps) Speak(text string) tea.Cmd {
	if d.Speaker == nil || !d.Speaker.Available() || text == "" {
		return nil
	}
	sp, lang, log := d.Speaker, d.SpeechLang, d.Log
	if log == nil {
		log = logger.Nop()
	}
	return func() tea.Msg {
		err := sp.Speak(context.Background(), text, lang)
		if err != nil {
			log.Warn("speak failed", "error", err)
		}
		return SpeechDoneMsg{Err: err}
	}
}
