// Package content loads and validates portfolio content files.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/folio/internal/model"
)

//go:embed sample.yaml
var sample []byte

// Content errors.
var (
	ErrParse   = errors.New("failed to parse content")
	ErrInvalid = errors.New("invalid content")
	ErrExists  = errors.New("content file already exists")
)

// Sample returns the bundled sample portfolio source.
func Sample() []byte {
	return bytes.Clone(sample)
}

// Parse decodes YAML content and validates it. Unknown keys are rejected so
// that typos surface instead of silently hiding a section.
func Parse(data []byte) (*model.Portfolio, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p model.Portfolio
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrParse)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &p, nil
}

// Load reads content from path, or the bundled sample when path is empty.
func Load(path string) (*model.Portfolio, error) {
	if path == "" {
		return Parse(sample)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// WriteSample writes the bundled sample to path. An existing file is only
// replaced when force is set.
func WriteSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, sample, 0644); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return nil
}
