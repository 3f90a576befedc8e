// Package main provides the CLI entrypoint for folio.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/colorscheme"
	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/content"
	"github.com/jmylchreest/folio/internal/model"
	"github.com/jmylchreest/folio/internal/prefs"
	"github.com/jmylchreest/folio/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose     bool
		configPath  string
		contentPath string
	}
	logger *slog.Logger

	// themeStore and schemeResolver are opened lazily by commands that need them
	themeStore     *theme.Store
	schemeResolver *colorscheme.Resolver
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Terminal portfolio with light, dark and system themes",
	Long: `folio is a personal portfolio for the terminal.

It renders profile, skills, projects, testimonials, blog posts and contact
details from a YAML content file, with a persisted light/dark/system theme
that can follow the desktop color scheme.

Running folio without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		if err := config.LoadEnvFile(""); err != nil {
			logger.Warn("failed to load .env file", "error", err)
		}

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return err
		}
		if globalOpts.contentPath != "" {
			cfg.Content.Path = globalOpts.contentPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeThemeStore()
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		_ = closeThemeStore()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/folio/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.contentPath, "content", "",
		"Path to portfolio content YAML (default: bundled sample)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// openStorage opens the configured preference backend. Failures fall back to
// in-memory storage so the theme still works for this session.
func openStorage() prefs.Storage {
	backend := prefs.Backend(cfg.Storage.Backend)
	path := cfg.StoragePath()

	if backend != prefs.BackendMemory && path == "" {
		if err := config.EnsureDataDir(); err != nil {
			logger.Warn("failed to create data directory, theme will not persist", "error", err)
			return prefs.NewMemoryStorage()
		}
	}

	storage, err := prefs.Open(backend, path, config.DataPath())
	if err != nil {
		logger.Warn("failed to open preference storage, theme will not persist",
			"backend", backend, "error", err)
		return prefs.NewMemoryStorage()
	}
	logger.Debug("opened preference storage", "backend", backend)
	return storage
}

// getThemeStore returns the theme store, creating it on first use.
func getThemeStore() *theme.Store {
	if themeStore != nil {
		return themeStore
	}

	schemeResolver = colorscheme.NewResolverFromNames(cfg.Scheme.Detectors, cfg.Scheme.Fallback, logger)
	mode, _ := theme.ParseMode(cfg.Theme.Default) // validated in PersistentPreRunE

	themeStore = theme.NewStore(theme.Options{
		Default:      mode,
		EnableSystem: cfg.Theme.EnableSystem,
		Storage:      openStorage(),
		Scheme:       schemeResolver,
		Logger:       logger,
	})
	return themeStore
}

func closeThemeStore() error {
	var errs []error
	if themeStore != nil {
		errs = append(errs, themeStore.Close())
		themeStore = nil
	}
	if schemeResolver != nil {
		errs = append(errs, schemeResolver.Close())
		schemeResolver = nil
	}
	return errors.Join(errs...)
}

// loadContent loads the configured portfolio content.
func loadContent() (*model.Portfolio, error) {
	path := cfg.ContentPath()
	p, err := content.Load(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Debug("using bundled sample content")
	}
	return p, nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
