package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Engine names accepted by Open.
const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
	EngineRedis  = "redis"
)

// ErrUnsupportedEngine is returned by Open for an unknown engine name.
var ErrUnsupportedEngine = errors.New("unsupported store engine")

// Backend is durable key/value storage for whole-record blobs. A value is
// always written wholesale; there are no partial updates.
type Backend interface {
	// Get returns the blob stored under key, or ok=false if none exists.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Put overwrites the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Engine      string
	DataDir     string
	RedisAddr   string
	RedisPrefix string
}

// Open creates the backend named by opts.Engine.
func Open(opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineSQLite:
		if err := ensureDir(opts.DataDir); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(opts.DataDir, "habla.db"))
	case EngineJSON:
		return NewJSONStore(opts.DataDir)
	case EngineRedis:
		return NewRedisStore(opts.RedisAddr, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, opts.Engine)
	}
}
