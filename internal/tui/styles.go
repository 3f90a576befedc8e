package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/folio/internal/theme"
)

// Styles holds the lipgloss styles derived from a palette.
type Styles struct {
	App       lipgloss.Style
	Brand     lipgloss.Style
	Mode      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Link     lipgloss.Style
	Tag      lipgloss.Style
	Badge    lipgloss.Style
	Card     lipgloss.Style
	Quote    lipgloss.Style

	Star      lipgloss.Style
	StarEmpty lipgloss.Style
	Dot       lipgloss.Style
	ActiveDot lipgloss.Style

	Status    lipgloss.Style
	StatusErr lipgloss.Style
}

// NewStyles builds styles from p.
func NewStyles(p theme.Palette) Styles {
	bg := lipgloss.Color(p.Background)
	fg := lipgloss.Color(p.Foreground)
	muted := lipgloss.Color(p.Muted)
	accent := lipgloss.Color(p.Accent)
	secondary := lipgloss.Color(p.Secondary)
	highlight := lipgloss.Color(p.Highlight)
	border := lipgloss.Color(p.Border)
	surface := lipgloss.Color(p.Surface)
	star := lipgloss.Color(p.Star)

	return Styles{
		App:   lipgloss.NewStyle().Background(bg).Foreground(fg),
		Brand: lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		Mode:  lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Tab:   lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).
			Foreground(bg).
			Background(accent).
			Padding(0, 1),

		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Subtitle: lipgloss.NewStyle().Foreground(secondary),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Text:     lipgloss.NewStyle().Foreground(fg),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Link:     lipgloss.NewStyle().Foreground(secondary).Underline(true),
		Tag:      lipgloss.NewStyle().Foreground(highlight),
		Badge: lipgloss.NewStyle().
			Foreground(highlight).
			Background(surface).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			MarginBottom(1),
		Quote: lipgloss.NewStyle().Italic(true).Foreground(fg),

		Star:      lipgloss.NewStyle().Foreground(star),
		StarEmpty: lipgloss.NewStyle().Foreground(muted),
		Dot:       lipgloss.NewStyle().Foreground(muted),
		ActiveDot: lipgloss.NewStyle().Foreground(accent),

		Status:    lipgloss.NewStyle().Foreground(fg),
		StatusErr: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
