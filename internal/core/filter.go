// Package core provides filtering and sorting of portfolio listings.
package core

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/folio/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match (case-insensitive)
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Later than
	FilterOpLess      FilterOp = "<"  // Earlier than
	FilterOpGreaterEq FilterOp = ">=" // Later than or same day
	FilterOpLessEq    FilterOp = "<=" // Earlier than or same day
)

// dateLayout is the absolute date form accepted by date conditions.
const dateLayout = "2006-01-02"

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: title, category, text, tag, date
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	// Cached parsed values
	regex   *regexp.Regexp // Compiled regex for ~= operator
	dateVal time.Time      // Parsed date for comparison
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// record is the filterable view shared by blog posts and projects.
type record struct {
	title    string
	category string
	text     string
	tags     []string
	date     time.Time
}

func postRecord(p model.BlogPost) record {
	return record{title: p.Title, category: p.Category, text: p.Excerpt, tags: p.Tags, date: p.Date}
}

func projectRecord(p model.Project) record {
	return record{title: p.Title, category: p.Category, text: p.Description, tags: p.Technologies}
}

// ParseDuration parses a duration string with extended formats.
// Supports: 48h, 7d, 1w, 0 (no limit)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if s == "0" || s == "" {
		return 0, nil
	}

	// Handle day suffix (7d -> 168h)
	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	// Handle week suffix (1w -> 168h)
	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: title, category, text, tag, date
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "category=Backend" - posts or projects in a category
//   - "tag=react" - any tag (or project technology) equals "react"
//   - "title~node" - title contains "node"
//   - "date>30d" - posts from the last 30 days
//   - "date>=2024-12-01" - posts on or after a day
func ParseFilter(expr string) (*FilterExpr, error) {
	return ParseFilterAt(expr, time.Now())
}

// ParseFilterAt is ParseFilter with relative dates resolved against now.
func ParseFilterAt(expr string, now time.Time) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part, now)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "tag=go" or "title~error".
func parseCondition(s string, now time.Time) (FilterCondition, error) {
	// Try operators in order of specificity (longest first)
	operators := []FilterOp{
		FilterOpNotEqual,  // != (must be before =)
		FilterOpGreaterEq, // >= (must be before >)
		FilterOpLessEq,    // <= (must be before <)
		FilterOpRegex,     // ~= (must be before ~)
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}

			if err := cond.init(now); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init normalizes the field and pre-parses the value.
func (c *FilterCondition) init(now time.Time) error {
	switch c.Field {
	case "title", "name":
		c.Field = "title"
	case "category", "cat":
		c.Field = "category"
	case "text", "excerpt", "description", "body":
		c.Field = "text"
	case "tag", "tags", "tech", "technology":
		c.Field = "tag"
	case "date", "time", "posted":
		c.Field = "date"
		d, err := parseDate(c.Value, now)
		if err != nil {
			return err
		}
		c.dateVal = d
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	switch c.Operator {
	case FilterOpGreater, FilterOpLess, FilterOpGreaterEq, FilterOpLessEq:
		if c.Field != "date" {
			return fmt.Errorf("operator %s only applies to date", c.Operator)
		}
	case FilterOpRegex:
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// parseDate accepts an absolute day (2006-01-02) or a duration before now.
func parseDate(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	dur, err := ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date value %q: use %s or a duration like 30d", s, dateLayout)
	}
	return now.Add(-dur), nil
}

// match tests a record against every condition.
func (f *FilterExpr) match(r record) bool {
	for _, cond := range f.Conditions {
		if !cond.match(r) {
			return false
		}
	}
	return true
}

// MatchPost tests if a blog post matches every condition.
func (f *FilterExpr) MatchPost(p model.BlogPost) bool {
	return f.match(postRecord(p))
}

// MatchProject tests if a project matches every condition. Date conditions
// never match a project.
func (f *FilterExpr) MatchProject(p model.Project) bool {
	return f.match(projectRecord(p))
}

func (c *FilterCondition) match(r record) bool {
	switch c.Field {
	case "title":
		return c.matchString(r.title)
	case "category":
		return c.matchString(r.category)
	case "text":
		return c.matchString(r.text)
	case "tag":
		return c.matchTags(r.tags)
	case "date":
		return !r.date.IsZero() && c.matchDate(r.date)
	default:
		return false
	}
}

// matchString matches a string field.
func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return strings.EqualFold(fieldValue, c.Value)
	case FilterOpNotEqual:
		return !strings.EqualFold(fieldValue, c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchTags matches when any tag matches. != matches when no tag is equal.
func (c *FilterCondition) matchTags(tags []string) bool {
	if c.Operator == FilterOpNotEqual {
		return !slices.ContainsFunc(tags, func(t string) bool {
			return strings.EqualFold(t, c.Value)
		})
	}
	return slices.ContainsFunc(tags, c.matchString)
}

// matchDate compares calendar days.
func (c *FilterCondition) matchDate(fieldValue time.Time) bool {
	a := fieldValue.Format(dateLayout)
	b := c.dateVal.Format(dateLayout)

	switch c.Operator {
	case FilterOpEqual:
		return a == b
	case FilterOpNotEqual:
		return a != b
	case FilterOpGreater:
		return a > b
	case FilterOpLess:
		return a < b
	case FilterOpGreaterEq:
		return a >= b
	case FilterOpLessEq:
		return a <= b
	default:
		return false
	}
}

// FilterPosts returns the posts matching expr.
func FilterPosts(posts []model.BlogPost, expr *FilterExpr) []model.BlogPost {
	if expr == nil || len(expr.Conditions) == 0 {
		return posts
	}

	result := make([]model.BlogPost, 0, len(posts))
	for _, p := range posts {
		if expr.MatchPost(p) {
			result = append(result, p)
		}
	}
	return result
}

// FilterProjects returns the projects matching expr.
func FilterProjects(projects []model.Project, expr *FilterExpr) []model.Project {
	if expr == nil || len(expr.Conditions) == 0 {
		return projects
	}

	result := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if expr.MatchProject(p) {
			result = append(result, p)
		}
	}
	return result
}
