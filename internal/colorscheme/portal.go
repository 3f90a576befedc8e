package colorscheme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

// XDG desktop portal settings interface.
const (
	PortalDest      = "org.freedesktop.portal.Desktop"
	PortalPath      = "/org/freedesktop/portal/desktop"
	PortalInterface = "org.freedesktop.portal.Settings"

	AppearanceNamespace = "org.freedesktop.appearance"
	ColorSchemeKey      = "color-scheme"
)

// Portal color-scheme values.
const (
	portalNoPreference uint32 = 0
	portalPreferDark   uint32 = 1
	portalPreferLight  uint32 = 2
)

// PortalDetector reads the color-scheme setting from the XDG desktop portal
// over the D-Bus session bus and follows SettingChanged signals.
type PortalDetector struct {
	mu      sync.Mutex
	logger  *slog.Logger
	conn    *dbus.Conn
	connErr error
	dialed  bool
}

// NewPortalDetector creates a detector. The bus connection is opened lazily.
func NewPortalDetector(logger *slog.Logger) *PortalDetector {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortalDetector{logger: logger}
}

func (p *PortalDetector) Name() string { return "portal" }
func (p *PortalDetector) Priority() int { return 100 }

// Available reports whether the session bus is reachable.
func (p *PortalDetector) Available() bool {
	_, err := p.connect()
	return err == nil
}

// connect opens a private session bus connection once.
func (p *PortalDetector) connect() (*dbus.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dialed {
		return p.conn, p.connErr
	}
	p.dialed = true

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		p.connErr = fmt.Errorf("failed to connect to session bus: %w", err)
		p.logger.Debug("portal detector unavailable", "error", err)
		return nil, p.connErr
	}
	p.conn = conn
	return conn, nil
}

// Detect reads org.freedesktop.appearance color-scheme.
func (p *PortalDetector) Detect() (bool, bool) {
	conn, err := p.connect()
	if err != nil {
		return false, false
	}

	obj := conn.Object(PortalDest, PortalPath)

	var v dbus.Variant
	err = obj.Call(PortalInterface+".ReadOne", 0, AppearanceNamespace, ColorSchemeKey).Store(&v)
	if err != nil {
		// ReadOne is portal version 2; Read wraps the value in a second variant.
		err = obj.Call(PortalInterface+".Read", 0, AppearanceNamespace, ColorSchemeKey).Store(&v)
		if err != nil {
			p.logger.Debug("failed to read portal color scheme", "error", err)
			return false, false
		}
	}
	return ParseColorScheme(v)
}

// Watch follows SettingChanged signals for the color-scheme key.
func (p *PortalDetector) Watch(ctx context.Context, fn func()) error {
	conn, err := p.connect()
	if err != nil {
		return err
	}

	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(PortalPath),
		dbus.WithMatchInterface(PortalInterface),
		dbus.WithMatchMember("SettingChanged"),
	}
	if err := conn.AddMatchSignal(opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	ch := make(chan *dbus.Signal, 10)
	conn.Signal(ch)

	go func() {
		defer func() {
			conn.RemoveSignal(ch)
			_ = conn.RemoveMatchSignal(opts...)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-ch:
				if !ok {
					return
				}
				if isColorSchemeSignal(sig) {
					fn()
				}
			}
		}
	}()

	return nil
}

// Close closes the bus connection.
func (p *PortalDetector) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// isColorSchemeSignal reports whether sig is a SettingChanged for color-scheme.
func isColorSchemeSignal(sig *dbus.Signal) bool {
	if sig == nil || sig.Name != PortalInterface+".SettingChanged" || len(sig.Body) < 2 {
		return false
	}
	namespace, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	return namespace == AppearanceNamespace && key == ColorSchemeKey
}

// ParseColorScheme decodes a portal color-scheme value, unwrapping nested
// variants. Returns ok=false for "no preference" or unexpected types.
func ParseColorScheme(v any) (prefersDark bool, ok bool) {
	for {
		variant, isVariant := v.(dbus.Variant)
		if !isVariant {
			break
		}
		v = variant.Value()
	}

	var value uint32
	switch n := v.(type) {
	case uint32:
		value = n
	case int32:
		value = uint32(n)
	default:
		return false, false
	}

	switch value {
	case portalPreferDark:
		return true, true
	case portalPreferLight:
		return false, true
	default:
		return false, false
	}
}
