package output

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// layoutExt is the file extension of named layouts.
const layoutExt = ".tmpl"

//go:embed layouts/*.tmpl
var EmbeddedLayouts embed.FS

// GetEmbeddedLayout returns the source of a bundled layout by name.
// The name should not include the .tmpl extension.
func GetEmbeddedLayout(name string) (string, bool) {
	data, err := EmbeddedLayouts.ReadFile("layouts/" + name + layoutExt)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedLayouts returns the names of all bundled layouts.
func ListEmbeddedLayouts() []string {
	entries, err := EmbeddedLayouts.ReadDir("layouts")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), layoutExt) {
			names = append(names, strings.TrimSuffix(entry.Name(), layoutExt))
		}
	}
	return names
}

// LayoutLoader resolves named plain-text layouts.
type LayoutLoader struct {
	dir string
}

// NewLayoutLoader creates a loader. Layouts in dir override bundled ones.
func NewLayoutLoader(dir string) *LayoutLoader {
	return &LayoutLoader{dir: dir}
}

// Load returns the template source for a layout name. Checks the user
// directory first, then falls back to the bundled layouts.
func (l *LayoutLoader) Load(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid layout name %q", name)
	}

	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, name+layoutExt))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read layout %s: %w", name, err)
		}
	}

	if src, ok := GetEmbeddedLayout(name); ok {
		return src, nil
	}
	return "", fmt.Errorf("layout not found: %s (available: %s)", name, strings.Join(ListEmbeddedLayouts(), ", "))
}
