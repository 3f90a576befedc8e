package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/folio/internal/model"
)

// JSONFormatter formats content as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the whole portfolio, or an object keyed by section name.
func (f *JSONFormatter) Format(w io.Writer, p *model.Portfolio, sections []model.Section) error {
	if err := checkTestimonial(p, sections, f.opts.Testimonial); err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Select(p, sections))
}

// YAMLFormatter formats content as YAML, in the same shape as content files.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes the whole portfolio, or a mapping keyed by section name.
func (f *YAMLFormatter) Format(w io.Writer, p *model.Portfolio, sections []model.Section) error {
	if err := checkTestimonial(p, sections, f.opts.Testimonial); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Select(p, sections)); err != nil {
		return err
	}
	return encoder.Close()
}

// Select returns p itself when sections is empty, otherwise a map from
// section name to that section's records.
func Select(p *model.Portfolio, sections []model.Section) any {
	if len(sections) == 0 {
		return p
	}

	out := make(map[string]any, len(sections))
	for _, s := range sections {
		out[s.String()] = SectionData(p, s)
	}
	return out
}

// SectionData returns the records backing a section.
func SectionData(p *model.Portfolio, s model.Section) any {
	switch s {
	case model.SectionHome:
		return struct {
			Profile model.Profile `json:"profile" yaml:"profile"`
			Stats   []model.Stat  `json:"stats,omitempty" yaml:"stats,omitempty"`
		}{p.Profile, p.Stats}
	case model.SectionAbout:
		return p.About
	case model.SectionSkills:
		return p.SkillCategories
	case model.SectionExperience:
		return p.Experience
	case model.SectionProjects:
		return p.Projects
	case model.SectionServices:
		return p.Services
	case model.SectionProcess:
		return p.Process
	case model.SectionTestimonials:
		return p.Testimonials
	case model.SectionBlog:
		return p.Blog
	case model.SectionContact:
		return p.Contact
	default:
		return nil
	}
}
