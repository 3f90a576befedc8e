package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/folio/internal/model"
)

const minimal = `
profile:
  name: Ada Lovelace
  title: Analyst
testimonials:
  - name: Charles Babbage
    quote: She understood the engine better than I did.
    rating: 5
blog:
  - title: Notes
    date: 2024-12-15
`

func TestLoad_EmbeddedSample(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Faizan Ahmad", p.Profile.Name)
	assert.Len(t, p.Testimonials, 4)
	assert.Len(t, p.Stats, 4)
	assert.Len(t, p.Process, 4)
	assert.NotEmpty(t, p.SkillCategories)
	assert.NotEmpty(t, p.Contact.Links)
	require.NotEmpty(t, p.Blog)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), p.Blog[0].Date)
}

func TestParse_Minimal(t *testing.T) {
	p, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", p.Profile.Name)
	require.Len(t, p.Testimonials, 1)
	assert.Equal(t, 5, p.Testimonials[0].Rating)
	assert.Equal(t, "Dec 15, 2024", p.Blog[0].DisplayDate())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty document", "", ErrParse},
		{"malformed yaml", "profile: [", ErrParse},
		{"unknown key", "profile:\n  name: x\n  nickname: y\n", ErrParse},
		{"missing name", "testimonials:\n  - {name: a, quote: b, rating: 3}\n", model.ErrEmptyName},
		{"no testimonials", "profile:\n  name: x\n", model.ErrNoTestimonials},
		{"bad rating", "profile:\n  name: x\ntestimonials:\n  - {name: a, quote: b, rating: 0}\n", model.ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_ValidationWrapsErrInvalid(t *testing.T) {
	_, err := Parse([]byte("profile:\n  name: x\n"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, model.ErrNoTestimonials)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.Profile.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  name: x\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.yaml")

	require.NoError(t, WriteSample(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Sample(), data)

	err = WriteSample(path, false)
	assert.ErrorIs(t, err, ErrExists)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0644))
	require.NoError(t, WriteSample(path, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Sample(), data)
}

func TestSample_ReturnsCopy(t *testing.T) {
	a := Sample()
	a[0] = 'X'
	assert.NotEqual(t, a[0], Sample()[0])
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0644))

	changes := make(chan *model.Portfolio, 4)
	w, err := NewWatcher(path, func(p *model.Portfolio) { changes <- p }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	// An invalid edit is ignored
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  name: x\n"), 0644))

	updated := []byte(minimal + "\ncontact:\n  email: ada@example.com\n")
	require.NoError(t, os.WriteFile(path, updated, 0644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-changes:
			if p.Contact.Email == "ada@example.com" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "x.yaml"), nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
