package core

import (
	"slices"

	"github.com/jmylchreest/folio/internal/model"
)

// Query narrows the listing sections of a portfolio.
type Query struct {
	Filter *FilterExpr  // Applied to blog posts and projects (nil = all)
	Sort   *SortOptions // Blog post order (nil = content order)
	Limit  int          // Maximum posts and projects (0 = unlimited)
}

// Apply returns a copy of p with Blog and Projects narrowed by q.
// p is not modified.
func (q Query) Apply(p *model.Portfolio) *model.Portfolio {
	out := *p

	out.Blog = slices.Clone(FilterPosts(p.Blog, q.Filter))
	if q.Sort != nil {
		SortPosts(out.Blog, *q.Sort)
	}
	out.Projects = slices.Clone(FilterProjects(p.Projects, q.Filter))

	if q.Limit > 0 {
		out.Blog = out.Blog[:min(q.Limit, len(out.Blog))]
		out.Projects = out.Projects[:min(q.Limit, len(out.Projects))]
	}
	return &out
}
