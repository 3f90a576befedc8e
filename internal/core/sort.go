package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/folio/internal/model"
)

// SortField represents a field to sort blog posts by.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByTitle    SortField = "title"
	SortByCategory SortField = "category"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions returns default sort options (newest first).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByDate,
		Order: SortDesc,
	}
}

// SortPosts sorts posts in place based on the provided options.
func SortPosts(posts []model.BlogPost, opts SortOptions) {
	if len(posts) == 0 {
		return
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]

		// Equal keys keep content order in both directions
		var less, greater bool
		switch opts.Field {
		case SortByTitle:
			less = strings.ToLower(a.Title) < strings.ToLower(b.Title)
			greater = strings.ToLower(a.Title) > strings.ToLower(b.Title)
		case SortByCategory:
			less = strings.ToLower(a.Category) < strings.ToLower(b.Category)
			greater = strings.ToLower(a.Category) > strings.ToLower(b.Category)
		default:
			less = a.Date.Before(b.Date)
			greater = a.Date.After(b.Date)
		}

		if opts.Order == SortDesc {
			return greater
		}
		return less
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "time", "d", "":
		return SortByDate, nil
	case "title", "t":
		return SortByTitle, nil
	case "category", "cat", "c":
		return SortByCategory, nil
	default:
		return "", fmt.Errorf("invalid sort field: %s (use date, title, or category)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d", "":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
