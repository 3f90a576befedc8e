package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

var errClosed = errors.New("storage is closed")

// FileStorage persists preferences as a flat JSON object.
// Every Set rewrites the file atomically via a temp file and rename.
type FileStorage struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewFileStorage creates a FileStorage at path.
// The parent directory is created if needed; the file itself is created on first Set.
func NewFileStorage(path string) (*FileStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, unavailable("create directory "+dir, err)
	}
	return &FileStorage{path: path}, nil
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Get returns the value stored under key.
func (f *FileStorage) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", unavailable("get", errClosed)
	}

	values, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return unavailable("set", errClosed)
	}

	values, err := f.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking writes.
		values = make(map[string]string)
	}
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return unavailable("write", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return unavailable("rename", err)
	}
	return nil
}

// Close marks the storage closed.
func (f *FileStorage) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// load reads the whole file. A missing file is an empty set of values.
func (f *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, unavailable("read", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, unavailable("decode", err)
	}
	return values, nil
}
