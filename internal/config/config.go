// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/folio/internal/prefs"
	"github.com/jmylchreest/folio/internal/theme"
)

// Default configuration values.
const (
	DefaultTheme          = "dark"
	DefaultStorageBackend = "file"
	DefaultSchemeFallback = "light"
)

// DefaultDetectors is the default host color-scheme detector chain.
var DefaultDetectors = []string{"portal", "env", "terminal"}

// Environment variable overrides, applied after the config file.
const (
	EnvTheme        = "FOLIO_THEME"
	EnvEnableSystem = "FOLIO_ENABLE_SYSTEM"
	EnvStorage      = "FOLIO_STORAGE"
	EnvStoragePath  = "FOLIO_STORAGE_PATH"
	EnvContent      = "FOLIO_CONTENT"
)

// Config represents the folio configuration.
type Config struct {
	Theme   ThemeConfig   `toml:"theme"`
	Storage StorageConfig `toml:"storage"`
	Scheme  SchemeConfig  `toml:"scheme"`
	Content ContentConfig `toml:"content"`
	TUI     TUIConfig     `toml:"tui"`
}

// ThemeConfig holds theme preference options.
type ThemeConfig struct {
	Default      string `toml:"default"`       // light, dark, system
	EnableSystem bool   `toml:"enable_system"` // follow the host color scheme in system mode
	PaletteDir   string `toml:"palette_dir"`   // user palettes override bundled ones
}

// StorageConfig selects where the theme preference is persisted.
type StorageConfig struct {
	Backend string `toml:"backend"` // file, sqlite, memory
	Path    string `toml:"path"`    // Empty = default file in the data directory
}

// SchemeConfig configures host color-scheme detection.
type SchemeConfig struct {
	Detectors []string `toml:"detectors"` // consulted in priority order
	Fallback  string   `toml:"fallback"`  // used when no detector answers
}

// ContentConfig locates portfolio content.
type ContentConfig struct {
	Path  string `toml:"path"`  // Empty = bundled sample
	Watch bool   `toml:"watch"` // reload on change
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp         bool   `toml:"show_help"`
	Mouse            bool   `toml:"mouse"`
	ClipboardCommand string `toml:"clipboard_command"` // Empty = auto-detect
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Default:      DefaultTheme,
			EnableSystem: false,
		},
		Storage: StorageConfig{
			Backend: DefaultStorageBackend,
		},
		Scheme: SchemeConfig{
			Detectors: append([]string(nil), DefaultDetectors...),
			Fallback:  DefaultSchemeFallback,
		},
		Content: ContentConfig{
			Watch: true,
		},
		TUI: TUIConfig{
			ShowHelp: true,
			Mouse:    true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "folio", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "folio")
}

// PaletteDir returns the palette override directory: the configured one, or
// a "palettes" directory next to the config file.
func (c *Config) PaletteDir() string {
	if c.Theme.PaletteDir != "" {
		return expandPath(c.Theme.PaletteDir)
	}
	path := ConfigPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "palettes")
}

// LayoutDir returns the directory holding user render layouts, a "layouts"
// directory next to the config file.
func LayoutDir() string {
	path := ConfigPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "layouts")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment. Variables already set are left alone. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment.
// lookup is typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.Theme.Default = v
	}
	if v, ok := lookup(EnvEnableSystem); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvEnableSystem, v, err)
		}
		c.Theme.EnableSystem = b
	}
	if v, ok := lookup(EnvStorage); ok && v != "" {
		c.Storage.Backend = v
	}
	if v, ok := lookup(EnvStoragePath); ok && v != "" {
		c.Storage.Path = v
	}
	if v, ok := lookup(EnvContent); ok && v != "" {
		c.Content.Path = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := theme.ParseMode(c.Theme.Default); err != nil {
		return fmt.Errorf("invalid theme default %q, must be one of: %v", c.Theme.Default, theme.Modes)
	}

	switch prefs.Backend(c.Storage.Backend) {
	case prefs.BackendFile, prefs.BackendSQLite, prefs.BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q, must be one of: file, sqlite, memory", c.Storage.Backend)
	}

	switch strings.ToLower(c.Scheme.Fallback) {
	case "light", "dark":
	default:
		return fmt.Errorf("invalid scheme fallback %q, must be light or dark", c.Scheme.Fallback)
	}

	validDetectors := map[string]bool{"portal": true, "env": true, "terminal": true}
	for _, d := range c.Scheme.Detectors {
		if !validDetectors[strings.ToLower(strings.TrimSpace(d))] {
			return fmt.Errorf("invalid scheme detector %q", d)
		}
	}

	return nil
}

// StoragePath returns the configured storage path with ~ expanded.
func (c *Config) StoragePath() string {
	return expandPath(c.Storage.Path)
}

// ContentPath returns the configured content path with ~ expanded.
func (c *Config) ContentPath() string {
	return expandPath(c.Content.Path)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
