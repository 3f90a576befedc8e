package model

import (
	"errors"
	"fmt"
	"strings"
)

// Section identifies one content section of the page.
type Section string

// Sections in page order.
const (
	SectionHome         Section = "home"
	SectionAbout        Section = "about"
	SectionSkills       Section = "skills"
	SectionExperience   Section = "experience"
	SectionProjects     Section = "projects"
	SectionServices     Section = "services"
	SectionProcess      Section = "process"
	SectionTestimonials Section = "testimonials"
	SectionBlog         Section = "blog"
	SectionContact      Section = "contact"
)

// Sections lists every section in page order.
var Sections = []Section{
	SectionHome,
	SectionAbout,
	SectionSkills,
	SectionExperience,
	SectionProjects,
	SectionServices,
	SectionProcess,
	SectionTestimonials,
	SectionBlog,
	SectionContact,
}

var sectionTitles = map[Section]string{
	SectionHome:         "Home",
	SectionAbout:        "About",
	SectionSkills:       "Skills",
	SectionExperience:   "Experience",
	SectionProjects:     "Projects",
	SectionServices:     "Services",
	SectionProcess:      "Process",
	SectionTestimonials: "Testimonials",
	SectionBlog:         "Blog",
	SectionContact:      "Contact",
}

// ErrUnknownSection is returned by ParseSection.
var ErrUnknownSection = errors.New("unknown section")

// ParseSection parses a section name case-insensitively.
func ParseSection(s string) (Section, error) {
	sec := Section(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sectionTitles[sec]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// Title returns the display title.
func (s Section) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	return string(s)
}

func (s Section) String() string {
	return string(s)
}
