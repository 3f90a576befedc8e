// Package output provides output formatters for portfolio content.
package output

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/jmylchreest/folio/internal/carousel"
	"github.com/jmylchreest/folio/internal/model"
)

// Formatter formats portfolio content for output.
type Formatter interface {
	// Format writes the given sections of p to w. An empty sections list
	// means every section.
	Format(w io.Writer, p *model.Portfolio, sections []model.Section) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatTypes lists the supported formats.
var FormatTypes = []FormatType{FormatPlain, FormatJSON, FormatYAML}

// ParseFormat parses a format name.
func ParseFormat(s string) (FormatType, error) {
	f := FormatType(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, must be one of: %v", s, FormatTypes)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template    string    // Custom template for plain format, executed against the Portfolio
	Width       int       // Wrap width for plain format (0 = no wrapping)
	Testimonial int       // Index of the selected testimonial, checked by every format
	Now         time.Time // Reference time for relative dates (zero = time.Now)
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Width: DefaultWidth,
	}
}

// DefaultWidth is used when the terminal size is unknown.
const DefaultWidth = 80

// TerminalWidth returns the column count of f when it is a terminal,
// otherwise COLUMNS, otherwise fallback.
func TerminalWidth(f *os.File, fallback int) int {
	if f != nil && term.IsTerminal(f.Fd()) {
		if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
			return w
		}
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// normalizeSections returns every section when sections is empty.
func normalizeSections(sections []model.Section) []model.Section {
	if len(sections) == 0 {
		return model.Sections
	}
	return sections
}

// checkTestimonial fails when the testimonials section is selected and index
// does not name a testimonial. An empty list only rejects a non-zero index.
func checkTestimonial(p *model.Portfolio, sections []model.Section, index int) error {
	if !slices.Contains(normalizeSections(sections), model.SectionTestimonials) {
		return nil
	}
	if len(p.Testimonials) == 0 && index == 0 {
		return nil
	}
	c, err := carousel.New(p.Testimonials)
	if err != nil {
		return fmt.Errorf("testimonials: %w", err)
	}
	if err := c.JumpTo(index); err != nil {
		return fmt.Errorf("testimonials: %w", err)
	}
	return nil
}

func (o FormatterOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}
