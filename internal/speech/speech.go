// Package speech speaks Spanish text and records practice audio by driving
// the platform's command-line audio tools. Missing tools degrade to
// implementations that return ErrUnavailable.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/abhisek/habla/internal/logger"
)

// ErrUnavailable is returned when the platform has no tool for the request.
var ErrUnavailable = errors.New("speech: capability unavailable")

// Speaker reads text aloud.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
	Available() bool
}

// Recorder captures microphone audio between Start and Stop.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (Recording, error)
	Active() bool
	Available() bool
}

// Recording is a finished practice recording.
type Recording struct {
	Path     string
	Duration time.Duration
	player   string
}

// Play replays the recording.
func (r Recording) Play(ctx context.Context) error {
	if r.player == "" || r.Path == "" {
		return ErrUnavailable
	}
	if err := exec.CommandContext(ctx, r.player, r.Path).Run(); err != nil {
		return fmt.Errorf("play recording: %w", err)
	}
	return nil
}

var (
	speakerTools  = []string{"espeak-ng", "espeak", "say"}
	recorderTools = []string{"arecord", "rec"}
	playerTools   = []string{"aplay", "play", "afplay"}
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// firstTool returns the first candidate found on PATH.
func firstTool(candidates []string) (name, path string, ok bool) {
	for _, c := range candidates {
		if p, err := lookPath(c); err == nil {
			return c, p, true
		}
	}
	return "", "", false
}

// Unavailable is the Speaker and Recorder used when no tool is installed.
type Unavailable struct{}

func (Unavailable) Speak(context.Context, string, string) error { return ErrUnavailable }
func (Unavailable) Start(context.Context) error                 { return ErrUnavailable }
func (Unavailable) Stop() (Recording, error)                    { return Recording{}, ErrUnavailable }
func (Unavailable) Active() bool                                { return false }
func (Unavailable) Available() bool                             { return false }

// Detect picks a speaker and recorder from the tools installed on PATH.
// rate is relative to the tool's normal speed; recordings go to dir.
func Detect(rate float64, dir string, log *logger.Logger) (Speaker, Recorder) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "speech")

	var sp Speaker = Unavailable{}
	if name, path, ok := firstTool(speakerTools); ok {
		sp = &CommandSpeaker{tool: name, path: path, rate: rate}
		log.Info("speech enabled", "tool", name)
	} else {
		log.Warn("no speech tool found, speech disabled", "candidates", speakerTools)
	}

	var rec Recorder = Unavailable{}
	recName, recPath, recOK := firstTool(recorderTools)
	_, playPath, playOK := firstTool(playerTools)
	if recOK && playOK {
		rec = &CommandRecorder{tool: recName, path: recPath, player: playPath, dir: dir, log: log}
		log.Info("recording enabled", "tool", recName)
	} else {
		log.Warn("no recording tool found, recording disabled")
	}
	return sp, rec
}
