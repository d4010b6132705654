// Package storage provides namespaced string key-value storage, the
// server-side stand-in for a browser's local storage. Each visitor session
// gets its own namespace.
package storage

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrUnavailable marks failures of the underlying facility (closed database,
// disabled backend, quota). Callers treat it as non-fatal.
var ErrUnavailable = errors.New("storage unavailable")

type Storage interface {
	// GetItem returns the value under key, and false when it is absent.
	GetItem(ctx context.Context, namespace, key string) (string, bool, error)
	SetItem(ctx context.Context, namespace, key, value string) error
	RemoveItem(ctx context.Context, namespace, key string) error
	Close() error
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Driver     string
	SQLitePath string
	// SessionTTL bounds how long an idle namespace survives in the memory
	// driver. Zero keeps entries until the process exits.
	SessionTTL time.Duration
}

// Open returns the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(cfg.SessionTTL), nil
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, errors.Newf("unknown storage driver %q", cfg.Driver)
	}
}
