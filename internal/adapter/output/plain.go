package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/folio/internal/carousel"
	"github.com/jmylchreest/folio/internal/model"
)

// PlainFormatter formats content as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
	err      error
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		f.template, f.err = template.New("plain").Funcs(templateFuncs(opts)).Parse(opts.Template)
	}

	return f
}

// Format writes the sections as plain text, separated by blank lines.
func (f *PlainFormatter) Format(w io.Writer, p *model.Portfolio, sections []model.Section) error {
	if f.err != nil {
		return fmt.Errorf("invalid template: %w", f.err)
	}
	if err := checkTestimonial(p, sections, f.opts.Testimonial); err != nil {
		return err
	}
	if f.template != nil {
		return f.template.Execute(w, p)
	}

	for i, s := range normalizeSections(sections) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		text, err := f.renderSection(p, s)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) renderSection(p *model.Portfolio, s model.Section) (string, error) {
	var sb strings.Builder
	sb.WriteString("== " + s.Title() + " ==\n")

	switch s {
	case model.SectionHome:
		f.home(&sb, p)
	case model.SectionAbout:
		if p.About.Heading != "" {
			sb.WriteString(p.About.Heading + "\n")
		}
		for _, para := range p.About.Paragraphs {
			sb.WriteString("\n" + f.wrap(para, 0) + "\n")
		}
	case model.SectionSkills:
		for _, c := range p.SkillCategories {
			names := make([]string, 0, len(c.Skills))
			for _, sk := range c.Skills {
				names = append(names, sk.Name)
			}
			sb.WriteString(c.Title + "\n")
			sb.WriteString(f.wrap(strings.Join(names, ", "), 2) + "\n")
		}
	case model.SectionExperience:
		for _, e := range p.Experience {
			fmt.Fprintf(&sb, "%s @ %s (%s)\n", e.Position, e.Company, e.Duration)
			if meta := joinNonEmpty(" / ", e.Location, e.Type); meta != "" {
				sb.WriteString("  " + meta + "\n")
			}
			for _, a := range e.Achievements {
				sb.WriteString(f.bullet(a) + "\n")
			}
		}
	case model.SectionProjects:
		for _, pr := range p.Projects {
			sb.WriteString(pr.Title)
			if pr.Category != "" {
				sb.WriteString(" [" + pr.Category + "]")
			}
			sb.WriteString("\n" + f.wrap(pr.Description, 2) + "\n")
			if len(pr.Technologies) > 0 {
				sb.WriteString(f.wrap("Tech: "+strings.Join(pr.Technologies, ", "), 2) + "\n")
			}
			for _, feat := range pr.Features {
				sb.WriteString(f.bullet(feat) + "\n")
			}
			if link := joinNonEmpty(" ", pr.LiveURL, pr.SourceURL); link != "" {
				sb.WriteString("  " + link + "\n")
			}
		}
	case model.SectionServices:
		for _, sv := range p.Services {
			sb.WriteString(sv.Title + "\n")
			sb.WriteString(f.wrap(sv.Description, 2) + "\n")
			for _, feat := range sv.Features {
				sb.WriteString(f.bullet(feat) + "\n")
			}
		}
	case model.SectionProcess:
		for _, st := range p.Process {
			sb.WriteString(st.Number + " " + st.Title + "\n")
			sb.WriteString(f.wrap(st.Description, 3) + "\n")
		}
	case model.SectionTestimonials:
		if err := f.testimonial(&sb, p); err != nil {
			return "", err
		}
	case model.SectionBlog:
		now := f.opts.now()
		for _, b := range p.Blog {
			sb.WriteString(b.Title + "\n")
			meta := joinNonEmpty(" | ", b.Category, b.ReadTime, dateWithAge(b, now))
			if meta != "" {
				sb.WriteString("  " + meta + "\n")
			}
			if b.Excerpt != "" {
				sb.WriteString(f.wrap(b.Excerpt, 2) + "\n")
			}
			if len(b.Tags) > 0 {
				sb.WriteString("  #" + strings.Join(b.Tags, " #") + "\n")
			}
		}
	case model.SectionContact:
		c := p.Contact
		for _, kv := range [][2]string{
			{"Email", c.Email},
			{"Phone", c.Phone},
			{"Location", c.Location},
			{"Response", c.ResponseTime},
		} {
			if kv[1] != "" {
				fmt.Fprintf(&sb, "%-9s %s\n", kv[0]+":", kv[1])
			}
		}
		for _, l := range c.Links {
			fmt.Fprintf(&sb, "%-9s %s\n", l.Label+":", l.URL)
		}
	}

	return sb.String(), nil
}

func (f *PlainFormatter) home(sb *strings.Builder, p *model.Portfolio) {
	pr := p.Profile
	sb.WriteString(pr.Name + "\n")
	if pr.Title != "" {
		line := pr.Title
		if pr.Company != "" {
			line += " at " + pr.Company
		}
		sb.WriteString(line + "\n")
	}
	if pr.Tagline != "" {
		sb.WriteString(f.wrap(pr.Tagline, 0) + "\n")
	}
	if pr.Available {
		sb.WriteString("Available for freelance work\n")
	}
	if len(p.Stats) > 0 {
		stats := make([]string, 0, len(p.Stats))
		for _, s := range p.Stats {
			stats = append(stats, s.Value+" "+s.Label)
		}
		sb.WriteString(f.wrap(strings.Join(stats, " | "), 0) + "\n")
	}
}

// testimonial renders the testimonial selected by opts.Testimonial.
func (f *PlainFormatter) testimonial(sb *strings.Builder, p *model.Portfolio) error {
	c, err := carousel.New(p.Testimonials)
	if err != nil {
		return fmt.Errorf("testimonials: %w", err)
	}
	if err := c.JumpTo(f.opts.Testimonial); err != nil {
		return fmt.Errorf("testimonials: %w", err)
	}

	t := c.Current()
	fmt.Fprintf(sb, "%s  (%d/%d)\n", Stars(t.Rating), c.Index()+1, c.Len())
	sb.WriteString(f.wrap("\""+t.Quote+"\"", 2) + "\n")
	sb.WriteString("  - " + joinNonEmpty(", ", t.Name, t.Byline()) + "\n")
	if t.Project != "" {
		sb.WriteString("  Project: " + t.Project + "\n")
	}
	return nil
}

// wrap word-wraps s to the configured width and indents every line.
func (f *PlainFormatter) wrap(s string, indent int) string {
	pad := strings.Repeat(" ", indent)
	if f.opts.Width <= indent {
		return pad + s
	}
	wrapped := ansi.Wrap(s, f.opts.Width-indent, "")
	return pad + strings.ReplaceAll(wrapped, "\n", "\n"+pad)
}

func (f *PlainFormatter) bullet(s string) string {
	return "  - " + strings.TrimPrefix(f.wrap(s, 4), "    ")
}

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	rating = max(model.MinRating-1, min(rating, model.MaxRating))
	return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxRating-rating)
}

func dateWithAge(b model.BlogPost, now time.Time) string {
	d := b.DisplayDate()
	if d == "" {
		return ""
	}
	return d + " (" + b.Age(now) + ")"
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// templateFuncs returns template helper functions.
func templateFuncs(opts FormatterOptions) template.FuncMap {
	return template.FuncMap{
		"wrap": func(width int, s string) string {
			if width <= 0 {
				return s
			}
			return ansi.Wrap(s, width, "")
		},
		"stars": Stars,
		"join":  strings.Join,
		"date": func(b model.BlogPost) string {
			return b.DisplayDate()
		},
		"age": func(b model.BlogPost) string {
			return b.Age(opts.now())
		},
	}
}
