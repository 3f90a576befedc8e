package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/theme"
)

var themeOpts struct {
	json bool
}

// ThemeStatus is the machine-readable output of "folio theme --json".
type ThemeStatus struct {
	Mode         string `json:"mode"`
	Effective    string `json:"effective"`
	EnableSystem bool   `json:"enable_system"`
	Source       string `json:"source,omitempty"`
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the current theme",
	Long: `Show the persisted theme mode and the effective theme it resolves to.

In system mode the effective theme follows the host color scheme, detected
from the desktop portal, the FOLIO_COLOR_SCHEME / COLORFGBG environment, or
the terminal background (in the order configured under [scheme]).

Examples:
  folio theme
  folio theme --json
  folio theme set system`,
	Args: cobra.NoArgs,
	RunE: runTheme,
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Persist a theme mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	RunE:      runThemeSet,
}

var themePalettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List bundled palettes",
	Long: `List the palettes bundled with folio.

A file with the same name in the palette directory (default:
~/.config/folio/palettes) overrides the bundled palette.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range theme.ListEmbeddedPalettes() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themePalettesCmd)

	themeCmd.Flags().BoolVar(&themeOpts.json, "json", false,
		"Output as JSON")
}

func runTheme(cmd *cobra.Command, args []string) error {
	store := getThemeStore()

	status := ThemeStatus{
		Mode:         store.Mode().String(),
		Effective:    store.Effective().String(),
		EnableSystem: store.SystemEnabled(),
	}
	if store.Mode() == theme.ModeSystem && store.SystemEnabled() {
		status.Source = schemeResolver.Resolve().Source
		if status.Source == "" {
			status.Source = "fallback"
		}
	}

	if themeOpts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	fmt.Printf("mode:      %s\n", status.Mode)
	fmt.Printf("effective: %s\n", status.Effective)
	system := "disabled"
	if status.EnableSystem {
		system = "enabled"
	}
	if status.Source != "" {
		system += " (" + status.Source + ")"
	}
	fmt.Printf("system:    %s\n", system)
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	mode, err := theme.ParseMode(args[0])
	if err != nil {
		return fmt.Errorf("%w, must be one of: %s", err, joinModes())
	}

	store := getThemeStore()
	if err := store.SetMode(mode); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	fmt.Printf("Theme set to %s (effective: %s)\n", mode, store.Effective())
	if mode == theme.ModeSystem && !store.SystemEnabled() {
		fmt.Fprintln(os.Stderr, "Note: system tracking is disabled (theme.enable_system = false), system resolves to light")
	}
	return nil
}

func joinModes() string {
	names := make([]string, len(theme.Modes))
	for i, m := range theme.Modes {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
