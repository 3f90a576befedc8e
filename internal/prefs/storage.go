// Package prefs provides durable key/value storage for user preferences.
package prefs

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Storage is a small durable key/value store.
type Storage interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound when the key has never been set.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Close releases file handles and resources.
	Close() error
}

// Errors
var (
	// ErrNotFound is returned by Get for keys that have no value.
	ErrNotFound = errors.New("preference not found")

	// ErrUnavailable wraps failures of the underlying medium
	// (unreadable file, locked database, closed storage).
	ErrUnavailable = errors.New("preference storage unavailable")
)

// Backend names a Storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// DefaultFileName returns the default file name for a backend's data file.
func DefaultFileName(b Backend) string {
	switch b {
	case BackendSQLite:
		return "prefs.db"
	default:
		return "prefs.json"
	}
}

// Open creates a Storage for the given backend.
// If path is empty, a file named DefaultFileName(backend) inside dataDir is used.
func Open(backend Backend, path, dataDir string) (Storage, error) {
	if path == "" && backend != BackendMemory {
		if dataDir == "" {
			return nil, fmt.Errorf("%w: no data directory", ErrUnavailable)
		}
		path = filepath.Join(dataDir, DefaultFileName(backend))
	}

	switch backend {
	case BackendMemory:
		return NewMemoryStorage(), nil
	case BackendSQLite:
		return NewSQLiteStorage(path)
	case BackendFile, "":
		return NewFileStorage(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
