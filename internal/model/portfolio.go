// Package model defines the portfolio content records rendered by folio.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Portfolio is the complete content of a portfolio page.
// It is loaded once, validated, and treated as read-only afterwards.
type Portfolio struct {
	Profile         Profile         `yaml:"profile" json:"profile"`
	Stats           []Stat          `yaml:"stats,omitempty" json:"stats,omitempty"`
	About           About           `yaml:"about" json:"about"`
	SkillCategories []SkillCategory `yaml:"skill_categories,omitempty" json:"skill_categories,omitempty"`
	Experience      []Experience    `yaml:"experience,omitempty" json:"experience,omitempty"`
	Projects        []Project       `yaml:"projects,omitempty" json:"projects,omitempty"`
	Services        []Service       `yaml:"services,omitempty" json:"services,omitempty"`
	Process         []ProcessStep   `yaml:"process,omitempty" json:"process,omitempty"`
	Testimonials    []Testimonial   `yaml:"testimonials" json:"testimonials"`
	Blog            []BlogPost      `yaml:"blog,omitempty" json:"blog,omitempty"`
	Contact         Contact         `yaml:"contact" json:"contact"`
}

// Profile is the hero section identity.
type Profile struct {
	Name       string `yaml:"name" json:"name"`
	Title      string `yaml:"title" json:"title"`
	Company    string `yaml:"company,omitempty" json:"company,omitempty"`
	CompanyURL string `yaml:"company_url,omitempty" json:"company_url,omitempty"`
	Tagline    string `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	Available  bool   `yaml:"available" json:"available"` // open for freelance work
	ResumeURL  string `yaml:"resume_url,omitempty" json:"resume_url,omitempty"`
}

// Stat is a headline number shown under the hero.
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// About is free-form biography text.
type About struct {
	Heading    string   `yaml:"heading" json:"heading"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
}

// SkillCategory groups related skills.
type SkillCategory struct {
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Skills      []Skill `yaml:"skills" json:"skills"`
}

// Skill is a single named skill with an optional glyph.
type Skill struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Experience is one position held.
type Experience struct {
	Company      string   `yaml:"company" json:"company"`
	Position     string   `yaml:"position" json:"position"`
	Duration     string   `yaml:"duration" json:"duration"`
	Location     string   `yaml:"location,omitempty" json:"location,omitempty"`
	Type         string   `yaml:"type,omitempty" json:"type,omitempty"`
	Achievements []string `yaml:"achievements,omitempty" json:"achievements,omitempty"`
}

// Project is a showcased piece of work.
type Project struct {
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Category     string   `yaml:"category,omitempty" json:"category,omitempty"`
	Technologies []string `yaml:"technologies,omitempty" json:"technologies,omitempty"`
	Features     []string `yaml:"features,omitempty" json:"features,omitempty"`
	LiveURL      string   `yaml:"live_url,omitempty" json:"live_url,omitempty"`
	SourceURL    string   `yaml:"source_url,omitempty" json:"source_url,omitempty"`
}

// Service is an offered service.
type Service struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features,omitempty" json:"features,omitempty"`
}

// ProcessStep is one step of the work process.
type ProcessStep struct {
	Number      string `yaml:"number" json:"number"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Testimonial is a client quote shown in the testimonials carousel.
type Testimonial struct {
	Name     string `yaml:"name" json:"name"`
	Position string `yaml:"position,omitempty" json:"position,omitempty"`
	Company  string `yaml:"company,omitempty" json:"company,omitempty"`
	Rating   int    `yaml:"rating" json:"rating"`
	Quote    string `yaml:"quote" json:"quote"`
	Project  string `yaml:"project,omitempty" json:"project,omitempty"`
}

// BlogPost is an article teaser.
type BlogPost struct {
	Title    string    `yaml:"title" json:"title"`
	Excerpt  string    `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	Category string    `yaml:"category,omitempty" json:"category,omitempty"`
	ReadTime string    `yaml:"read_time,omitempty" json:"read_time,omitempty"`
	Date     time.Time `yaml:"date" json:"date"`
	Tags     []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Contact holds contact details. The page renders them; it never sends anything.
type Contact struct {
	Email        string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone        string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Location     string `yaml:"location,omitempty" json:"location,omitempty"`
	ResponseTime string `yaml:"response_time,omitempty" json:"response_time,omitempty"`
	Links        []Link `yaml:"links,omitempty" json:"links,omitempty"`
}

// Link is a labelled URL.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Validation errors.
var (
	ErrEmptyName             = errors.New("profile name cannot be empty")
	ErrNoTestimonials        = errors.New("at least one testimonial is required")
	ErrEmptyTestimonialName  = errors.New("testimonial name cannot be empty")
	ErrEmptyTestimonialQuote = errors.New("testimonial quote cannot be empty")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrEmptyBlogTitle        = errors.New("blog post title cannot be empty")
)

// Validate checks the invariants the renderers rely on.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Profile.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Testimonials) == 0 {
		return ErrNoTestimonials
	}
	for i, t := range p.Testimonials {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("testimonial %d: %w", i, err)
		}
	}
	for i, b := range p.Blog {
		if strings.TrimSpace(b.Title) == "" {
			return fmt.Errorf("blog post %d: %w", i, ErrEmptyBlogTitle)
		}
	}
	return nil
}

// Validate checks a single testimonial.
func (t Testimonial) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTestimonialName
	}
	if strings.TrimSpace(t.Quote) == "" {
		return ErrEmptyTestimonialQuote
	}
	if t.Rating < MinRating || t.Rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// Byline returns "Position" or "Position, Company" without duplicating the
// company when the position already names it.
func (t Testimonial) Byline() string {
	switch {
	case t.Company == "":
		return t.Position
	case t.Position == "":
		return t.Company
	case strings.Contains(t.Position, t.Company):
		return t.Position
	default:
		return t.Position + ", " + t.Company
	}
}

// DisplayDate formats the post date as "Dec 15, 2024".
func (b BlogPost) DisplayDate() string {
	if b.Date.IsZero() {
		return ""
	}
	return b.Date.Format("Jan 2, 2006")
}

// Age returns the post date relative to now, e.g. "3 months ago".
func (b BlogPost) Age(now time.Time) string {
	if b.Date.IsZero() {
		return ""
	}
	return humanize.RelTime(b.Date, now, "ago", "from now")
}
