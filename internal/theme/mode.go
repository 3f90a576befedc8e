package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the user's theme choice.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Effective is the concrete theme applied to the UI after resolving ModeSystem.
type Effective string

const (
	EffectiveLight Effective = "light"
	EffectiveDark  Effective = "dark"
)

// ErrInvalidMode is returned for values outside light, dark and system.
var ErrInvalidMode = errors.New("invalid theme mode")

// Modes lists all modes in cycling order.
var Modes = []Mode{ModeLight, ModeDark, ModeSystem}

// ParseMode parses a mode name (case-insensitive, surrounding space ignored).
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeLight, ModeDark, ModeSystem:
		return true
	}
	return false
}

// String returns the persisted representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Next returns the mode that follows m when cycling.
// ModeSystem is skipped when allowSystem is false.
func (m Mode) Next(allowSystem bool) Mode {
	switch m {
	case ModeLight:
		return ModeDark
	case ModeDark:
		if allowSystem {
			return ModeSystem
		}
		return ModeLight
	default:
		return ModeLight
	}
}

// IsDark reports whether e is the dark theme.
func (e Effective) IsDark() bool {
	return e == EffectiveDark
}

// String returns the effective theme name.
func (e Effective) String() string {
	return string(e)
}
