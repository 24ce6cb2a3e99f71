package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/abhisek/habla/internal/logger"
)

// CommandRecorder records through arecord or sox rec and plays back
// through aplay, play or afplay. Only the latest recording is kept.
type CommandRecorder struct {
	tool   string
	path   string
	player string
	dir    string
	log    *logger.Logger

	// mu guards the in-flight recording. Active is called from the UI loop
	// while Stop runs in a command goroutine.
	mu      sync.Mutex
	cmd     *exec.Cmd
	out     string
	started time.Time
}

func (r *CommandRecorder) Available() bool { return true }

// Active reports whether a recording is in progress.
func (r *CommandRecorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}

// Start begins recording to a wav file in the recorder's directory.
func (r *CommandRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return errors.New("recording already in progress")
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create recordings dir: %w", err)
	}
	out := filepath.Join(r.dir, "practice.wav")

	var args []string
	switch r.tool {
	case "rec":
		args = []string{"-q", "-c", "1", out}
	default:
		args = []string{"-q", "-f", "cd", "-t", "wav", out}
	}
	cmd := exec.CommandContext(ctx, r.path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", r.tool, err)
	}
	r.cmd = cmd
	r.out = out
	r.started = time.Now()
	r.log.Debug("recording started", "file", out)
	return nil
}

// Stop ends the recording and returns it ready for playback.
func (r *CommandRecorder) Stop() (Recording, error) {
	r.mu.Lock()
	cmd, out, started := r.cmd, r.out, r.started
	r.cmd = nil
	r.mu.Unlock()
	if cmd == nil {
		return Recording{}, errors.New("no recording in progress")
	}

	// Both tools finalize the wav header on SIGINT.
	if err := cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if _, err := os.Stat(out); err != nil {
		return Recording{}, fmt.Errorf("%s produced no audio: %w", r.tool, errors.Join(err, waitErr))
	}
	rec := Recording{Path: out, Duration: time.Since(started), player: r.player}
	r.log.Debug("recording stopped", "file", rec.Path, "duration", rec.Duration)
	return rec, nil
}
