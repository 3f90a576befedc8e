package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/folio/internal/content"
	"github.com/jmylchreest/folio/internal/model"
	"github.com/jmylchreest/folio/internal/theme"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Store     *theme.Store
	Portfolio *model.Portfolio

	// ContentPath is watched for changes when Watch is set. Empty means the
	// bundled sample, which is never watched.
	ContentPath string
	Watch       bool

	PaletteDir       string
	ShowHelp         bool
	Mouse            bool
	ClipboardCommand string
	Logger           *slog.Logger
}

// Run starts the TUI and blocks until it exits.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Follow the host color scheme while the program runs
	if opts.Store != nil {
		if err := opts.Store.Watch(ctx); err != nil {
			logger.Warn("failed to watch color scheme", "error", err)
		}
	}

	// Start file watcher if a content file was given
	var updates chan *model.Portfolio
	var watcher *content.Watcher
	if opts.Watch && opts.ContentPath != "" {
		updates = make(chan *model.Portfolio, 1)
		var err error
		watcher, err = content.NewWatcher(opts.ContentPath, func(p *model.Portfolio) {
			select {
			case updates <- p:
			case <-ctx.Done():
			}
		}, logger)
		if err != nil {
			logger.Warn("failed to create content watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start content watcher", "error", err)
		}
	}

	m := New(Options{
		Store:            opts.Store,
		Portfolio:        opts.Portfolio,
		ContentUpdates:   updates,
		PaletteDir:       opts.PaletteDir,
		ShowHelp:         opts.ShowHelp,
		ClipboardCommand: opts.ClipboardCommand,
		Logger:           logger,
	})
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	_, err := p.Run()

	// Stop watcher on exit
	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			logger.Debug("failed to stop content watcher", "error", err)
		}
	}

	return err
}
