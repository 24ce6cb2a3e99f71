package speech

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	"golang.org/x/text/language"
)

// Words per minute at rate 1.0.
const (
	espeakBaseWPM = 175
	sayBaseWPM    = 175
)

// CommandSpeaker speaks through espeak-ng, espeak or macOS say.
type CommandSpeaker struct {
	tool string
	path string
	rate float64
}

func (s *CommandSpeaker) Available() bool { return true }

// Speak reads text in lang (a BCP 47 tag such as "es-ES") and blocks until
// the tool exits or ctx is done.
func (s *CommandSpeaker) Speak(ctx context.Context, text, lang string) error {
	if text == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, s.path, s.args(text, lang)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.tool, err, out)
	}
	return nil
}

func (s *CommandSpeaker) args(text, lang string) []string {
	rate := s.rate
	if rate <= 0 {
		rate = 1
	}
	switch s.tool {
	case "say":
		// say picks a voice from the system language; only the rate is set.
		return []string{"-r", wpm(sayBaseWPM, rate), text}
	default:
		return []string{"-v", voice(lang), "-s", wpm(espeakBaseWPM, rate), text}
	}
}

func wpm(base int, rate float64) string {
	return strconv.Itoa(int(math.Round(float64(base) * rate)))
}

// voice maps a BCP 47 tag to the espeak voice for its base language.
func voice(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "es"
	}
	base, _ := tag.Base()
	return base.String()
}
