package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/adapter/output"
	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/core"
	"github.com/jmylchreest/folio/internal/model"
)

var renderOpts struct {
	sections    []string
	format      string
	template    string
	layout      string
	width       int
	testimonial int

	// Listing options
	filter    string
	sortBy    string
	sortOrder string
	limit     int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print portfolio content",
	Long: `Print portfolio content without the interactive UI.

Plain output is wrapped to the terminal width (or --width). JSON and YAML
output contain the selected sections keyed by name, or the whole portfolio
when no --section is given.

Examples:
  # Everything, as text
  folio render

  # Just the contact details
  folio render --section contact

  # Projects and skills as JSON
  folio render --section projects,skills --format json

  # The third testimonial
  folio render --section testimonials --testimonial 2

  # Recent backend posts, newest first
  folio render --section blog --filter "category=backend,date>90d" --sort date

  # Projects built with React
  folio render --section projects --filter "tech=react"

  # Custom template
  folio render --template '{{.Profile.Name}} <{{.Contact.Email}}>'

  # Named layout (bundled: card, signature, posts; or ~/.config/folio/layouts/NAME.tmpl)
  folio render --layout card`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var renderLayoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List bundled render layouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range output.ListEmbeddedLayouts() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.AddCommand(renderLayoutsCmd)

	renderCmd.Flags().StringSliceVarP(&renderOpts.sections, "section", "s", nil,
		"Sections to print (home, about, skills, experience, projects, services, process, testimonials, blog, contact)")
	renderCmd.Flags().StringVarP(&renderOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	renderCmd.Flags().StringVar(&renderOpts.template, "template", "",
		"Go template for plain output, executed against the portfolio")
	renderCmd.Flags().StringVar(&renderOpts.layout, "layout", "",
		"Named template layout for plain output (see --template)")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", 0,
		"Wrap width for plain output (default: terminal width, -1 disables wrapping)")
	renderCmd.Flags().IntVar(&renderOpts.testimonial, "testimonial", 0,
		"Index of the testimonial to print (0-based)")

	// Listing flags
	renderCmd.Flags().StringVar(&renderOpts.filter, "filter", "",
		"Filter blog posts and projects (e.g. \"tag=react,date>30d\")")
	renderCmd.Flags().StringVar(&renderOpts.sortBy, "sort", "",
		"Sort blog posts by field (date, title, category; default: content order)")
	renderCmd.Flags().StringVar(&renderOpts.sortOrder, "order", "desc",
		"Sort order (asc, desc)")
	renderCmd.Flags().IntVarP(&renderOpts.limit, "limit", "n", 0,
		"Maximum blog posts and projects (0 = unlimited)")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(renderOpts.format)
	if err != nil {
		return err
	}

	sections := make([]model.Section, 0, len(renderOpts.sections))
	for _, name := range renderOpts.sections {
		s, err := model.ParseSection(name)
		if err != nil {
			return err
		}
		sections = append(sections, s)
	}

	query, err := buildQuery()
	if err != nil {
		return err
	}

	portfolio, err := loadContent()
	if err != nil {
		return err
	}
	portfolio = query.Apply(portfolio)

	opts := output.DefaultFormatterOptions()
	opts.Template = renderOpts.template
	if renderOpts.layout != "" {
		if renderOpts.template != "" {
			return fmt.Errorf("--layout and --template are mutually exclusive")
		}
		opts.Template, err = output.NewLayoutLoader(config.LayoutDir()).Load(renderOpts.layout)
		if err != nil {
			return err
		}
	}
	opts.Testimonial = renderOpts.testimonial
	switch {
	case renderOpts.width < 0:
		opts.Width = 0
	case renderOpts.width > 0:
		opts.Width = renderOpts.width
	default:
		opts.Width = output.TerminalWidth(os.Stdout, output.DefaultWidth)
	}

	if err := output.NewFormatter(format, opts).Format(os.Stdout, portfolio, sections); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}

// buildQuery builds the listing query from the render flags.
func buildQuery() (core.Query, error) {
	var q core.Query

	if renderOpts.filter != "" {
		expr, err := core.ParseFilter(renderOpts.filter)
		if err != nil {
			return q, fmt.Errorf("invalid filter: %w", err)
		}
		q.Filter = expr
	}

	if renderOpts.sortBy != "" {
		field, err := core.ParseSortField(renderOpts.sortBy)
		if err != nil {
			return q, err
		}
		order, err := core.ParseSortOrder(renderOpts.sortOrder)
		if err != nil {
			return q, err
		}
		q.Sort = &core.SortOptions{Field: field, Order: order}
	}

	if renderOpts.limit < 0 {
		return q, fmt.Errorf("--limit must not be negative")
	}
	q.Limit = renderOpts.limit
	return q, nil
}
