package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/tui"
)

var tuiOpts struct {
	noMouse bool
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive portfolio",
	Long: `Launch the interactive terminal user interface.

The TUI provides:
  - Section tabs (click or use tab/shift+tab and 1-0)
  - Testimonial carousel with clickable dots
  - Light, dark and system themes, persisted across runs
  - Live reload when the content file changes
  - Copy to clipboard support

Key bindings:
  tab/shift+tab  Next/previous section
  1-9, 0         Jump to section
  ←/→, h/l       Previous/next testimonial
  j/k, ↑/↓       Scroll
  t              Cycle theme (light → dark → system)
  c              Copy email, quote, resume or project links
  ?              Show help
  q              Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noMouse, "no-mouse", false,
		"Disable mouse support")
	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload the content file when it changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()

	portfolio, err := loadContent()
	if err != nil {
		return err
	}

	store := getThemeStore()

	// The terminal detector queries stdin; answer it before BubbleTea owns the terminal
	schemeResolver.Prime()

	return tui.Run(cmd.Context(), tui.RunOptions{
		Store:            store,
		Portfolio:        portfolio,
		ContentPath:      c.ContentPath(),
		Watch:            c.Content.Watch && !tuiOpts.noWatch,
		PaletteDir:       c.PaletteDir(),
		ShowHelp:         c.TUI.ShowHelp,
		Mouse:            c.TUI.Mouse && !tuiOpts.noMouse,
		ClipboardCommand: c.TUI.ClipboardCommand,
		Logger:           logger,
	})
}
