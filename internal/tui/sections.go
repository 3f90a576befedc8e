package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/folio/internal/model"
)

// Zone ID prefixes for mouse hit testing.
const (
	zoneTab = "tab-"
	zoneDot = "dot-"
)

func tabZoneID(i int) string { return fmt.Sprintf("%s%d", zoneTab, i) }
func dotZoneID(i int) string { return fmt.Sprintf("%s%d", zoneDot, i) }

// renderSection renders the body of a section for the viewport.
func (m Model) renderSection(s model.Section) string {
	if m.portfolio == nil {
		return m.styles.Muted.Render("No content loaded.")
	}

	width := m.contentWidth()
	var body string
	switch s {
	case model.SectionHome:
		body = m.renderHome(width)
	case model.SectionAbout:
		body = m.renderAbout(width)
	case model.SectionSkills:
		body = m.renderSkills(width)
	case model.SectionExperience:
		body = m.renderExperience(width)
	case model.SectionProjects:
		body = m.renderProjects(width)
	case model.SectionServices:
		body = m.renderServices(width)
	case model.SectionProcess:
		body = m.renderProcess(width)
	case model.SectionTestimonials:
		body = m.renderTestimonials(width)
	case model.SectionBlog:
		body = m.renderBlog(width)
	case model.SectionContact:
		body = m.renderContact(width)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// contentWidth is the usable width inside the section padding.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		return 20
	}
	return w
}

func (m Model) paragraph(text string, width int) string {
	return m.styles.Text.Width(width).Render(text)
}

func (m Model) renderHome(width int) string {
	p := m.portfolio.Profile
	var b strings.Builder

	b.WriteString(m.styles.Muted.Render("Hello, I'm") + "\n")
	b.WriteString(m.styles.Title.Render(p.Name) + "\n")
	title := p.Title
	if p.Company != "" {
		title += " @ " + p.Company
	}
	b.WriteString(m.styles.Subtitle.Render(title) + "\n\n")

	if p.Tagline != "" {
		b.WriteString(m.paragraph(p.Tagline, width) + "\n\n")
	}
	if p.Available {
		b.WriteString(m.styles.Badge.Render("● Available for Freelance") + "\n\n")
	}

	if len(m.portfolio.Stats) > 0 {
		cells := make([]string, 0, len(m.portfolio.Stats))
		for _, s := range m.portfolio.Stats {
			cells = append(cells, m.styles.Card.MarginBottom(0).Render(
				m.styles.Accent.Bold(true).Render(s.Value)+"\n"+m.styles.Muted.Render(s.Label)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}

	if p.ResumeURL != "" {
		b.WriteString("\n" + m.styles.Muted.Render("Resume: ") + m.styles.Link.Render(p.ResumeURL) + "\n")
	}
	return b.String()
}

func (m Model) renderAbout(width int) string {
	a := m.portfolio.About
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render(a.Heading) + "\n")
	for i, para := range a.Paragraphs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.paragraph(para, width))
	}
	return b.String()
}

func (m Model) renderSkills(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Skills & Technologies") + "\n")
	for _, c := range m.portfolio.SkillCategories {
		names := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			name := s.Name
			if s.Icon != "" {
				name = s.Icon + " " + name
			}
			names = append(names, m.styles.Tag.Render(name))
		}
		content := m.styles.Title.Render(c.Title)
		if c.Description != "" {
			content += "\n" + m.styles.Muted.Render(c.Description)
		}
		content += "\n" + lipgloss.NewStyle().Width(width-4).Render(strings.Join(names, "  "))
		b.WriteString(m.styles.Card.Width(width-2).Render(content) + "\n")
	}
	return b.String()
}

func (m Model) renderExperience(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Professional Journey") + "\n")
	for _, e := range m.portfolio.Experience {
		content := m.styles.Title.Render(e.Position) + "\n" +
			m.styles.Accent.Render(e.Company) + "  " + m.styles.Muted.Render(e.Duration)
		if meta := joinNonEmpty(" · ", e.Location, e.Type); meta != "" {
			content += "\n" + m.styles.Muted.Render(meta)
		}
		if len(e.Achievements) > 0 {
			content += "\n" + m.bullets(e.Achievements, width-4)
		}
		b.WriteString(m.styles.Card.Width(width-2).Render(content) + "\n")
	}
	return b.String()
}

func (m Model) renderProjects(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Featured Projects") + "\n")
	for _, p := range m.portfolio.Projects {
		content := m.styles.Title.Render(p.Title)
		if p.Category != "" {
			content += "  " + m.styles.Badge.Render(p.Category)
		}
		content += "\n" + m.styles.Text.Width(width-4).Render(p.Description)
		if len(p.Technologies) > 0 {
			content += "\n" + m.styles.Tag.Width(width-4).Render(strings.Join(p.Technologies, " · "))
		}
		if len(p.Features) > 0 {
			content += "\n" + m.bullets(p.Features, width-4)
		}
		if p.LiveURL != "" {
			content += "\n" + m.styles.Muted.Render("Live: ") + m.styles.Link.Render(p.LiveURL)
		}
		if p.SourceURL != "" {
			content += "\n" + m.styles.Muted.Render("Code: ") + m.styles.Link.Render(p.SourceURL)
		}
		b.WriteString(m.styles.Card.Width(width-2).Render(content) + "\n")
	}
	return b.String()
}

func (m Model) renderServices(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Services") + "\n")
	for _, s := range m.portfolio.Services {
		content := m.styles.Title.Render(s.Title) + "\n" +
			m.styles.Text.Width(width-4).Render(s.Description)
		if len(s.Features) > 0 {
			content += "\n" + m.bullets(s.Features, width-4)
		}
		b.WriteString(m.styles.Card.Width(width-2).Render(content) + "\n")
	}
	return b.String()
}

func (m Model) renderProcess(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Work Process") + "\n")
	for i, s := range m.portfolio.Process {
		b.WriteString(m.styles.Accent.Bold(true).Render(s.Number) + "  " + m.styles.Title.Render(s.Title) + "\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(m.styles.Muted.Width(width-4).Render(s.Description)) + "\n")
		if i < len(m.portfolio.Process)-1 {
			b.WriteString(m.styles.Muted.Render("  │") + "\n")
		}
	}
	return b.String()
}

func (m Model) renderTestimonials(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("What Clients Say") + "\n")

	if m.testimonials == nil {
		return b.String() + m.styles.Muted.Render("No testimonials.")
	}

	t := m.testimonials.Current()
	content := m.stars(t.Rating) + "\n\n" +
		m.styles.Quote.Width(width-4).Render("“"+t.Quote+"”") + "\n\n" +
		m.styles.Title.Render(t.Name)
	if byline := t.Byline(); byline != "" {
		content += "\n" + m.styles.Muted.Render(byline)
	}
	if t.Project != "" {
		content += "\n" + m.styles.Badge.Render(t.Project)
	}
	b.WriteString(m.styles.Card.Width(width-2).Render(content) + "\n")

	// Navigation: ‹ ● ○ ○ › 1/4
	dots := make([]string, 0, m.testimonials.Len())
	for i := 0; i < m.testimonials.Len(); i++ {
		dot := m.styles.Dot.Render("○")
		if i == m.testimonials.Index() {
			dot = m.styles.ActiveDot.Render("●")
		}
		dots = append(dots, m.zones.Mark(dotZoneID(i), dot))
	}
	nav := m.styles.Muted.Render("‹ ") + strings.Join(dots, " ") + m.styles.Muted.Render(" ›")
	counter := m.styles.Muted.Render(fmt.Sprintf("  %d/%d", m.testimonials.Index()+1, m.testimonials.Len()))
	b.WriteString(nav + counter + "\n")
	return b.String()
}

func (m Model) renderBlog(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Latest Articles") + "\n")
	now := m.now()
	for _, post := range m.portfolio.Blog {
		meta := joinNonEmpty(" · ", post.Category, post.ReadTime)
		if d := post.DisplayDate(); d != "" {
			meta = joinNonEmpty(" · ", meta, d+" ("+post.Age(now)+")")
		}
		content := m.styles.Title.Width(width - 4).Render(post.Title)
		if meta != "" {
			content += "\n" + m.styles.Muted.Render(meta)
		}
		if post.Excerpt != "" {
			content += "\n" + m.styles.Text.Width(width-4).Render(post.Excerpt)
		}
		if len(post.Tags) > 0 {
			content += "\n" + m.styles.Tag.Render("#"+strings.Join(post.Tags, " #"))
		}
		b.WriteString(m.styles.Card.Width(width-2).Render(content) + "\n")
	}
	return b.String()
}

func (m Model) renderContact(width int) string {
	c := m.portfolio.Contact
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Let's Work Together") + "\n")

	rows := [][2]string{
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Location", c.Location},
		{"Response", c.ResponseTime},
	}
	for _, l := range c.Links {
		rows = append(rows, [2]string{l.Label, l.URL})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		b.WriteString(m.styles.Muted.Width(10).Render(r[0]) + m.styles.Text.Render(r[1]) + "\n")
	}

	b.WriteString("\n" + m.styles.Muted.Width(width).Render(
		"Messages are not sent from the terminal; press c to copy the email address."))
	return b.String()
}

func (m Model) stars(rating int) string {
	rating = max(0, min(rating, model.MaxRating))
	return m.styles.Star.Render(strings.Repeat("★", rating)) +
		m.styles.StarEmpty.Render(strings.Repeat("☆", model.MaxRating-rating))
}

func (m Model) bullets(items []string, width int) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Accent.Render("• "),
			m.styles.Text.Width(width-2).Render(it)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
