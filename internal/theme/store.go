package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/folio/internal/prefs"
)

// StorageKey is the preference key holding the persisted mode.
const StorageKey = "theme"

// DefaultMode is used when no default is configured.
const DefaultMode = ModeDark

// ErrStoreClosed is returned when SetMode is called after Close.
var ErrStoreClosed = errors.New("theme store is closed")

// SchemeSource reports the host's color-scheme preference.
type SchemeSource interface {
	// PrefersDark reports whether the host currently prefers a dark appearance.
	PrefersDark() bool
}

// SchemeWatcher is implemented by sources that can push preference changes.
// WatchScheme must not block; fn is called from a background goroutine until
// ctx is cancelled.
type SchemeWatcher interface {
	WatchScheme(ctx context.Context, fn func(prefersDark bool)) error
}

// ChangeSource identifies what caused a Change.
type ChangeSource int

const (
	// ChangeSourceUser indicates an explicit SetMode call.
	ChangeSourceUser ChangeSource = iota
	// ChangeSourceSystem indicates a host color-scheme change.
	ChangeSourceSystem
)

// Change is delivered to subscribers.
type Change struct {
	Mode      Mode
	Effective Effective
	Source    ChangeSource
}

// Options configures a Store.
type Options struct {
	// Default is used when storage holds no valid mode.
	Default Mode
	// EnableSystem allows ModeSystem to follow the host signal.
	// When false, ModeSystem resolves to light.
	EnableSystem bool
	// Storage persists the mode. Nil keeps the mode in memory only.
	Storage prefs.Storage
	// Scheme is the host color-scheme signal. Nil behaves as "prefers light".
	Scheme SchemeSource
	Logger *slog.Logger
}

// Store is the single source of truth for the active theme.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	mode         Mode
	enableSystem bool
	storage      prefs.Storage
	scheme       SchemeSource

	// lastEffective is only used to suppress duplicate system notifications.
	lastEffective Effective

	subscribers []subscriber
	cancelWatch context.CancelFunc
	closed      bool
}

type subscriber struct {
	id ulid.ULID
	fn func(Change)
}

// NewStore initializes the store from persisted storage, falling back to
// opts.Default. Storage failures are logged and treated as "no value".
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	def := opts.Default
	if def == "" {
		def = DefaultMode
	}
	if !def.Valid() {
		logger.Warn("invalid default theme mode, using fallback", "mode", def, "fallback", DefaultMode)
		def = DefaultMode
	}

	s := &Store{
		logger:       logger,
		mode:         def,
		enableSystem: opts.EnableSystem,
		storage:      opts.Storage,
		scheme:       opts.Scheme,
	}

	if persisted, ok := s.readPersisted(); ok {
		s.mode = persisted
	}
	s.lastEffective = s.resolve(s.mode, s.enableSystem, s.scheme)

	logger.Debug("theme store initialized", "mode", s.mode, "effective", s.lastEffective,
		"enable_system", s.enableSystem)
	return s
}

// readPersisted returns the stored mode, if any.
func (s *Store) readPersisted() (Mode, bool) {
	if s.storage == nil {
		return "", false
	}

	raw, err := s.storage.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			s.logger.Debug("theme storage unavailable, using default", "error", err)
		}
		return "", false
	}

	m, err := ParseMode(raw)
	if err != nil {
		s.logger.Debug("ignoring persisted theme", "value", raw, "error", err)
		return "", false
	}
	return m, true
}

// Mode returns the selected mode.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SystemEnabled reports whether ModeSystem follows the host signal.
func (s *Store) SystemEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enableSystem
}

// Effective returns the theme to apply. ModeSystem is resolved against the
// host signal on every call.
func (s *Store) Effective() Effective {
	return s.resolve(s.Mode(), s.enableSystem, s.scheme)
}

func (s *Store) resolve(mode Mode, enableSystem bool, scheme SchemeSource) Effective {
	switch mode {
	case ModeDark:
		return EffectiveDark
	case ModeSystem:
		if enableSystem && scheme != nil && scheme.PrefersDark() {
			return EffectiveDark
		}
		return EffectiveLight
	default:
		return EffectiveLight
	}
}

// SetMode selects a mode, persists it and notifies subscribers before returning.
// Persistence failures are logged and otherwise ignored.
func (s *Store) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}

	// Resolved under the lock so a concurrent host change cannot be overwritten.
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	effective := s.resolve(m, s.enableSystem, s.scheme)
	s.mode = m
	s.lastEffective = effective
	storage := s.storage
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	if storage != nil {
		if err := storage.Set(StorageKey, m.String()); err != nil {
			s.logger.Debug("failed to persist theme", "mode", m, "error", err)
		}
	}

	s.logger.Debug("theme mode changed", "mode", m, "effective", effective)
	notify(subs, Change{Mode: m, Effective: effective, Source: ChangeSourceUser})
	return nil
}

// Subscribe registers fn to be called synchronously on every change.
func (s *Store) Subscribe(fn func(Change)) *Subscription {
	sub := &Subscription{id: ulid.Make(), store: s}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.subscribers = append(s.subscribers, subscriber{id: sub.id, fn: fn})
	}
	return sub
}

func (s *Store) unsubscribe(id ulid.ULID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool {
		return sub.id == id
	})
}

// SubscriberCount returns the number of active subscriptions.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Watch starts following host color-scheme changes when system tracking is
// enabled and the scheme source supports it. It returns immediately.
func (s *Store) Watch(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || !s.enableSystem || s.cancelWatch != nil {
		s.mu.Unlock()
		return nil
	}
	watcher, ok := s.scheme.(SchemeWatcher)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelWatch = cancel
	s.mu.Unlock()

	if err := watcher.WatchScheme(ctx, s.onSchemeChange); err != nil {
		cancel()
		s.mu.Lock()
		s.cancelWatch = nil
		s.mu.Unlock()
		return fmt.Errorf("watch color scheme: %w", err)
	}
	return nil
}

// onSchemeChange notifies subscribers when a host change flips the effective theme.
func (s *Store) onSchemeChange(prefersDark bool) {
	effective := EffectiveLight
	if prefersDark {
		effective = EffectiveDark
	}

	s.mu.Lock()
	if s.closed || s.mode != ModeSystem || effective == s.lastEffective {
		s.mu.Unlock()
		return
	}
	s.lastEffective = effective
	mode := s.mode
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	s.logger.Debug("host color scheme changed", "effective", effective)
	notify(subs, Change{Mode: mode, Effective: effective, Source: ChangeSourceSystem})
}

// Close stops host tracking, clears subscribers and closes the storage.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.subscribers = nil

	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}

	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

func notify(subs []subscriber, change Change) {
	for _, sub := range subs {
		sub.fn(change)
	}
}

// Subscription is returned by Subscribe.
type Subscription struct {
	id    ulid.ULID
	store *Store
	once  sync.Once
}

// ID returns the subscription identifier.
func (sub *Subscription) ID() string {
	return sub.id.String()
}

// Unsubscribe removes the subscription. Safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.store.unsubscribe(sub.id)
	})
}
