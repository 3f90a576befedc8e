package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/folio/internal/model"
)

func TestSortPosts_Empty(t *testing.T) {
	var posts []model.BlogPost
	SortPosts(posts, DefaultSortOptions())
	assert.Len(t, posts, 0)
}

func TestSortPosts(t *testing.T) {
	tests := []struct {
		name string
		opts SortOptions
		want []string
	}{
		{
			name: "date desc",
			opts: DefaultSortOptions(),
			want: []string{"Next.js 14", "Modern JavaScript", "Scalable Node.js APIs", "MongoDB Optimization"},
		},
		{
			name: "date asc",
			opts: SortOptions{Field: SortByDate, Order: SortAsc},
			want: []string{"MongoDB Optimization", "Scalable Node.js APIs", "Modern JavaScript", "Next.js 14"},
		},
		{
			name: "title asc",
			opts: SortOptions{Field: SortByTitle, Order: SortAsc},
			want: []string{"Modern JavaScript", "MongoDB Optimization", "Next.js 14", "Scalable Node.js APIs"},
		},
		{
			name: "category desc",
			opts: SortOptions{Field: SortByCategory, Order: SortDesc},
			want: []string{"Next.js 14", "Modern JavaScript", "MongoDB Optimization", "Scalable Node.js APIs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := testPosts()
			SortPosts(posts, tt.opts)
			assert.Equal(t, tt.want, titles(posts))
		})
	}
}

func TestSortPosts_StableOnEqualKeys(t *testing.T) {
	posts := []model.BlogPost{
		{Title: "first", Category: "Go"},
		{Title: "second", Category: "Go"},
		{Title: "third", Category: "Go"},
	}

	SortPosts(posts, SortOptions{Field: SortByCategory, Order: SortDesc})
	assert.Equal(t, []string{"first", "second", "third"}, titles(posts))
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
	}{
		{"date", SortByDate},
		{"", SortByDate},
		{"TITLE", SortByTitle},
		{"cat", SortByCategory},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseSortField("rating")
	assert.Error(t, err)
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("ascending")
	require.NoError(t, err)
	assert.Equal(t, SortAsc, got)

	got, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, got)

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}
