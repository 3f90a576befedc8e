package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "dark", cfg.Theme.Default)
	assert.False(t, cfg.Theme.EnableSystem)
	assert.Empty(t, cfg.Theme.PaletteDir)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, []string{"portal", "env", "terminal"}, cfg.Scheme.Detectors)
	assert.Equal(t, "light", cfg.Scheme.Fallback)
	assert.Empty(t, cfg.Content.Path)
	assert.True(t, cfg.Content.Watch)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.True(t, cfg.TUI.Mouse)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_DetectorsNotShared(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheme.Detectors[0] = "changed"
	assert.Equal(t, "portal", DefaultDetectors[0])
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[theme]
default = "system"
enable_system = true
palette_dir = "/tmp/palettes"

[storage]
backend = "sqlite"
path = "/tmp/prefs.db"

[scheme]
detectors = ["env"]
fallback = "dark"

[content]
path = "/tmp/portfolio.yaml"
watch = false

[tui]
show_help = false
mouse = false
clipboard_command = "wl-copy --primary"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "system", cfg.Theme.Default)
	assert.True(t, cfg.Theme.EnableSystem)
	assert.Equal(t, "/tmp/palettes", cfg.PaletteDir())
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/prefs.db", cfg.StoragePath())
	assert.Equal(t, []string{"env"}, cfg.Scheme.Detectors)
	assert.Equal(t, "dark", cfg.Scheme.Fallback)
	assert.Equal(t, "/tmp/portfolio.yaml", cfg.ContentPath())
	assert.False(t, cfg.Content.Watch)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.TUI.Mouse)
	assert.Equal(t, "wl-copy --primary", cfg.TUI.ClipboardCommand)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[theme]
default = "light"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Changed field
	assert.Equal(t, "light", cfg.Theme.Default)

	// Unchanged fields should have defaults
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.True(t, cfg.Content.Watch)
	assert.True(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Theme.Default = "system"
	cfg.Storage.Backend = "memory"

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "system", loaded.Theme.Default)
	assert.Equal(t, "memory", loaded.Storage.Backend)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"system default", func(c *Config) { c.Theme.Default = "system" }, false},
		{"mixed case default", func(c *Config) { c.Theme.Default = "Light" }, false},
		{"invalid default", func(c *Config) { c.Theme.Default = "auto" }, true},
		{"empty default", func(c *Config) { c.Theme.Default = "" }, true},
		{"sqlite backend", func(c *Config) { c.Storage.Backend = "sqlite" }, false},
		{"invalid backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"invalid fallback", func(c *Config) { c.Scheme.Fallback = "system" }, true},
		{"no detectors", func(c *Config) { c.Scheme.Detectors = nil }, false},
		{"unknown detector", func(c *Config) { c.Scheme.Detectors = []string{"gsettings"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvTheme:        "light",
		EnvEnableSystem: "true",
		EnvStorage:      "sqlite",
		EnvStoragePath:  "/tmp/x.db",
		EnvContent:      "/tmp/me.yaml",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "light", cfg.Theme.Default)
	assert.True(t, cfg.Theme.EnableSystem)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	assert.Equal(t, "/tmp/me.yaml", cfg.Content.Path)
}

func TestConfig_ApplyEnvEmptyIgnored(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) { return "", true }))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_ApplyEnvInvalidBool(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == EnvEnableSystem {
			return "maybe", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_TEST_DOTENV=from-file\n"), 0644))

	t.Setenv("FOLIO_TEST_DOTENV", "")
	os.Unsetenv("FOLIO_TEST_DOTENV")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("FOLIO_TEST_DOTENV"))
}

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_TEST_DOTENV=from-file\n"), 0644))

	t.Setenv("FOLIO_TEST_DOTENV", "from-env")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv("FOLIO_TEST_DOTENV"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/folio/config.toml", ConfigPath())
}

func TestConfigPathDefault(t *testing.T) {
	path := ConfigPath()
	assert.Contains(t, path, "folio/config.toml")
}

func TestDataPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, "/custom/data/folio", DataPath())
}

func TestPaletteDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/folio/palettes", DefaultConfig().PaletteDir())
}

func TestLayoutDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/folio/layouts", LayoutDir())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "folio.yaml"), expandPath("~/folio.yaml"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, "", expandPath(""))
}

func TestEnsureDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	require.NoError(t, EnsureDataDir())

	info, err := os.Stat(filepath.Join(dir, "folio"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
