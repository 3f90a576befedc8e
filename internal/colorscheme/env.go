package colorscheme

import (
	"os"
	"strconv"
	"strings"
)

// EnvColorScheme forces the preference ("dark" or "light").
const EnvColorScheme = "FOLIO_COLOR_SCHEME"

// EnvDetector reads the preference from the environment: FOLIO_COLOR_SCHEME
// first, then the COLORFGBG convention set by rxvt, konsole and others.
type EnvDetector struct {
	lookup func(string) (string, bool)
}

// NewEnvDetector creates a detector backed by os.LookupEnv.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{lookup: os.LookupEnv}
}

func (e *EnvDetector) Name() string { return "env" }
func (e *EnvDetector) Priority() int { return 50 }
func (e *EnvDetector) Available() bool { return true }

// Detect returns the preference if either variable is set to a usable value.
func (e *EnvDetector) Detect() (bool, bool) {
	if v, ok := e.lookup(EnvColorScheme); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "dark":
			return true, true
		case "light":
			return false, true
		}
	}

	if v, ok := e.lookup("COLORFGBG"); ok {
		return parseColorFGBG(v)
	}
	return false, false
}

// parseColorFGBG interprets "fg;bg" or "fg;default;bg". Background colors
// 0-6 and 8 are dark in the 16-color palette.
func parseColorFGBG(v string) (bool, bool) {
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 0 || bg > 15 {
		return false, false
	}
	return bg <= 6 || bg == 8, true
}
