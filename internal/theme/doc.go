// Package theme owns the light/dark/system theme preference for folio.
// It persists the chosen mode through a prefs.Storage, resolves the effective
// theme against the host color-scheme signal, notifies subscribers of changes
// and provides the bundled color palettes for each effective theme.
package theme
