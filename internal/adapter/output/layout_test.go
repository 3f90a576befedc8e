package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmbeddedLayouts(t *testing.T) {
	assert.ElementsMatch(t, []string{"card", "posts", "signature"}, ListEmbeddedLayouts())
}

func TestEmbeddedLayoutsRender(t *testing.T) {
	for _, name := range ListEmbeddedLayouts() {
		t.Run(name, func(t *testing.T) {
			src, ok := GetEmbeddedLayout(name)
			require.True(t, ok)

			opts := DefaultFormatterOptions()
			opts.Template = src
			var buf bytes.Buffer
			require.NoError(t, NewPlainFormatter(opts).Format(&buf, testPortfolio(), nil))
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestCardLayout(t *testing.T) {
	src, ok := GetEmbeddedLayout("card")
	require.True(t, ok)

	opts := DefaultFormatterOptions()
	opts.Template = src
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testPortfolio(), nil))

	out := buf.String()
	assert.Contains(t, out, "Ada Lovelace\nAnalyst @ Analytical Engines")
	assert.Contains(t, out, "  ada@example.com")
	assert.Contains(t, out, "  GitHub: https://github.com/ada")
}

func TestLayoutLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "card.tmpl"), []byte("custom {{.Profile.Name}}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.tmpl"), []byte("mine"), 0644))

	l := NewLayoutLoader(dir)

	src, err := l.Load("card")
	require.NoError(t, err)
	assert.Equal(t, "custom {{.Profile.Name}}", src, "user layout overrides bundled")

	src, err = l.Load("mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", src)

	src, err = l.Load("signature")
	require.NoError(t, err)
	assert.Contains(t, src, "{{.Profile.Name}}")

	_, err = l.Load("missing")
	assert.ErrorContains(t, err, "layout not found")

	_, err = l.Load("../card")
	assert.Error(t, err)
}

func TestLayoutLoader_NoDir(t *testing.T) {
	src, err := NewLayoutLoader("").Load("posts")
	require.NoError(t, err)
	assert.Contains(t, src, "range .Blog")
}
