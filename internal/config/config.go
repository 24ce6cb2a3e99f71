package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultStorageKey is the key the progress record is stored under.
const DefaultStorageKey = "spanishLearningProgress"

// logName is the log file created in the data directory by default.
const logName = "habla.log"

// Config holds runtime settings for habla.
type Config struct {
	DataDir          string        `env:"HABLA_DATA_DIR"`
	Backend          string        `env:"HABLA_BACKEND"       envDefault:"sqlite"`
	StorageKey       string        `env:"HABLA_STORAGE_KEY"   envDefault:"spanishLearningProgress"`
	RedisAddr        string        `env:"HABLA_REDIS_ADDR"    envDefault:"localhost:6379"`
	RedisPrefix      string        `env:"HABLA_REDIS_PREFIX"  envDefault:"habla:"`
	CatalogPath      string        `env:"HABLA_CATALOG"`
	AutoAdvanceDelay time.Duration `env:"HABLA_AUTO_ADVANCE"  envDefault:"1500ms"`
	SpeechLang       string        `env:"HABLA_SPEECH_LANG"   envDefault:"es-ES"`
	SpeechRate       float64       `env:"HABLA_SPEECH_RATE"   envDefault:"0.8"`
	LogMode          string        `env:"HABLA_LOG_MODE"      envDefault:"dev"`
	LogFile          string        `env:"HABLA_LOG_FILE"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Unset paths are resolved against the XDG data directory.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() (Config, error) {
	if c.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		c.DataDir = dir
	}
	if c.StorageKey == "" {
		c.StorageKey = DefaultStorageKey
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, logName)
	}
	if c.AutoAdvanceDelay < 0 {
		c.AutoAdvanceDelay = 0
	}
	return c, nil
}

// WithDataDir moves the data directory. A log file at its default location
// moves with it; an explicitly configured one stays put.
func (c Config) WithDataDir(dir string) Config {
	if c.LogFile == "" || c.LogFile == filepath.Join(c.DataDir, logName) {
		c.LogFile = filepath.Join(dir, logName)
	}
	c.DataDir = dir
	return c
}

// DefaultDataDir resolves the data directory in priority order:
// 1. $XDG_DATA_HOME/habla
// 2. ~/.local/share/habla
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "habla"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}
