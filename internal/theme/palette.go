package theme

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EmbeddedPalettes contains the bundled palette files.
//
//go:embed palettes/*.toml
var EmbeddedPalettes embed.FS

// Palette is the set of colors used to draw the UI for one effective theme.
// Colors are hex strings or ANSI color numbers.
type Palette struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	Surface    string `toml:"surface"`
	Foreground string `toml:"foreground"`
	Muted      string `toml:"muted"`
	Accent     string `toml:"accent"`
	Secondary  string `toml:"secondary"`
	Highlight  string `toml:"highlight"`
	Border     string `toml:"border"`
	Star       string `toml:"star"`
}

// GetEmbeddedPalette retrieves a bundled palette by name.
func GetEmbeddedPalette(name string) (Palette, bool) {
	data, err := EmbeddedPalettes.ReadFile("palettes/" + name + ".toml")
	if err != nil {
		return Palette{}, false
	}

	var p Palette
	if err := toml.Unmarshal(data, &p); err != nil {
		return Palette{}, false
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, true
}

// ListEmbeddedPalettes returns the names of all bundled palettes.
func ListEmbeddedPalettes() []string {
	var names []string

	entries, err := fs.ReadDir(EmbeddedPalettes, "palettes")
	if err != nil {
		return []string{string(EffectiveDark), string(EffectiveLight)}
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	return names
}

// LoadPalette returns the palette for an effective theme.
// Resolution order:
//  1. <dir>/<effective>.toml when dir is set
//  2. the bundled palette
//
// A user palette only needs to set the colors it overrides.
func LoadPalette(e Effective, dir string, logger *slog.Logger) Palette {
	if logger == nil {
		logger = slog.Default()
	}

	p, found := GetEmbeddedPalette(string(e))
	if !found {
		logger.Warn("bundled palette missing", "name", e)
		p = Palette{Name: string(e)}
	}

	if dir == "" {
		return p
	}

	path := filepath.Join(dir, string(e)+".toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read user palette", "path", path, "error", err)
		}
		return p
	}

	// Unmarshal over the bundled palette so missing keys keep their defaults.
	override := p
	if err := toml.Unmarshal(data, &override); err != nil {
		logger.Warn("failed to parse user palette, using bundled", "path", path, "error", err)
		return p
	}
	logger.Debug("loaded user palette", "path", path)
	return override
}
