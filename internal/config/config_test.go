package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	t.Setenv("HABLA_DATA_DIR", "")
	t.Setenv("HABLA_BACKEND", "")
	t.Setenv("HABLA_LOG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(xdg, "habla"), cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.AutoAdvanceDelay)
	assert.Equal(t, "es-ES", cfg.SpeechLang)
	assert.InDelta(t, 0.8, cfg.SpeechRate, 1e-9)
	assert.Equal(t, filepath.Join(xdg, "habla", "habla.log"), cfg.LogFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv("HABLA_DATA_DIR", dir)
	t.Setenv("HABLA_BACKEND", "json")
	t.Setenv("HABLA_AUTO_ADVANCE", "250ms")
	t.Setenv("HABLA_STORAGE_KEY", "alt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "json", cfg.Backend)
	assert.Equal(t, "alt", cfg.StorageKey)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoAdvanceDelay)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HABLA_DATA_DIR", t.TempDir())
	t.Setenv("HABLA_AUTO_ADVANCE", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestWithDataDir(t *testing.T) {
	base := Config{DataDir: "/data/old", LogFile: filepath.Join("/data/old", "habla.log")}

	moved := base.WithDataDir("/data/new")
	assert.Equal(t, "/data/new", moved.DataDir)
	assert.Equal(t, filepath.Join("/data/new", "habla.log"), moved.LogFile)

	explicit := base
	explicit.LogFile = "/var/log/habla/custom.log"
	kept := explicit.WithDataDir("/data/new")
	assert.Equal(t, "/data/new", kept.DataDir)
	assert.Equal(t, "/var/log/habla/custom.log", kept.LogFile)
}
