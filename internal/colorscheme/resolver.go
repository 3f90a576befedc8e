// Package colorscheme detects the host's preferred color scheme.
//
// Detectors are consulted in priority order; the first one that produces an
// answer wins. The Resolver implements theme.SchemeSource and
// theme.SchemeWatcher so it can be handed directly to the theme store.
package colorscheme

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Detector reports the host color-scheme preference from one source.
type Detector interface {
	// Name returns a short identifier used in logs and config.
	Name() string

	// Priority orders detectors; higher values are consulted first.
	Priority() int

	// Available reports whether the detector can be used in this environment.
	Available() bool

	// Detect returns (prefersDark, true) on success and (_, false) when the
	// source has no opinion.
	Detect() (prefersDark bool, ok bool)
}

// Notifier is implemented by detectors that can signal preference changes.
// Watch must not block; fn is invoked from a background goroutine until ctx
// is cancelled.
type Notifier interface {
	Watch(ctx context.Context, fn func()) error
}

// Preference is a resolved color-scheme preference.
type Preference struct {
	PrefersDark bool
	// Source is the detector name, or empty when the fallback was used.
	Source string
}

// Resolver resolves the preference across registered detectors.
type Resolver struct {
	mu           sync.RWMutex
	logger       *slog.Logger
	detectors    []Detector
	fallbackDark bool
}

// NewResolver creates a Resolver that reports fallbackDark when no detector answers.
func NewResolver(fallbackDark bool, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger, fallbackDark: fallbackDark}
}

// Register adds a detector. Safe to call at any time.
func (r *Resolver) Register(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.detectors = append(r.detectors, d)
	sort.SliceStable(r.detectors, func(i, j int) bool {
		return r.detectors[i].Priority() > r.detectors[j].Priority()
	})
}

// Detectors returns the registered detectors in priority order.
func (r *Resolver) Detectors() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Detector(nil), r.detectors...)
}

// Resolve queries detectors in priority order.
func (r *Resolver) Resolve() Preference {
	for _, d := range r.Detectors() {
		if !d.Available() {
			continue
		}
		if dark, ok := d.Detect(); ok {
			return Preference{PrefersDark: dark, Source: d.Name()}
		}
	}
	return Preference{PrefersDark: r.fallbackDark}
}

// Prime queries every available detector once. Detectors that memoize their
// answer (the terminal query) must be primed before a TUI takes over stdin.
func (r *Resolver) Prime() {
	for _, d := range r.Detectors() {
		if !d.Available() {
			continue
		}
		dark, ok := d.Detect()
		r.logger.Debug("primed color scheme detector", "detector", d.Name(), "dark", dark, "ok", ok)
	}
}

// PrefersDark implements theme.SchemeSource.
func (r *Resolver) PrefersDark() bool {
	return r.Resolve().PrefersDark
}

// WatchScheme implements theme.SchemeWatcher. Every available Notifier is
// started; each notification re-resolves the preference and reports it to fn.
// Detectors that fail to start are logged and skipped.
func (r *Resolver) WatchScheme(ctx context.Context, fn func(prefersDark bool)) error {
	for _, d := range r.Detectors() {
		n, ok := d.(Notifier)
		if !ok || !d.Available() {
			continue
		}

		name := d.Name()
		err := n.Watch(ctx, func() {
			p := r.Resolve()
			r.logger.Debug("color scheme notification", "detector", name,
				"prefers_dark", p.PrefersDark, "source", p.Source)
			fn(p.PrefersDark)
		})
		if err != nil {
			r.logger.Warn("failed to watch color scheme", "detector", name, "error", err)
			continue
		}
		r.logger.Debug("watching color scheme", "detector", name)
	}
	return nil
}

// NewResolverFromNames builds a Resolver from detector names
// ("portal", "env", "terminal"). Unknown names are logged and ignored.
// fallback is "dark" or "light".
func NewResolverFromNames(names []string, fallback string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := NewResolver(strings.EqualFold(fallback, "dark"), logger)
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "portal":
			r.Register(NewPortalDetector(logger))
		case "env":
			r.Register(NewEnvDetector())
		case "terminal":
			r.Register(NewTerminalDetector())
		default:
			logger.Warn("unknown color scheme detector", "name", name)
		}
	}
	return r
}

// Close releases resources held by detectors that own them.
func (r *Resolver) Close() error {
	var firstErr error
	for _, d := range r.Detectors() {
		if c, ok := d.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
