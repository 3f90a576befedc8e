package tui

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/folio/internal/model"
	"github.com/jmylchreest/folio/internal/prefs"
	"github.com/jmylchreest/folio/internal/theme"
)

func testPortfolio() *model.Portfolio {
	return &model.Portfolio{
		Profile: model.Profile{
			Name:      "Ada Lovelace",
			Title:     "Analyst",
			ResumeURL: "https://example.com/ada.pdf",
		},
		About: model.About{Heading: "About Ada", Paragraphs: []string{"First programmer."}},
		Projects: []model.Project{
			{Title: "Engine", LiveURL: "https://example.com/engine"},
			{Title: "Notes"},
		},
		Testimonials: []model.Testimonial{
			{Name: "Charles", Quote: "Remarkable.", Rating: 5},
			{Name: "Mary", Quote: "Diligent.", Rating: 4},
			{Name: "Michael", Quote: "Precise.", Rating: 3},
		},
		Blog: []model.BlogPost{
			{Title: "Notes", Date: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
		},
		Contact: model.Contact{Email: "ada@example.com"},
	}
}

// newTestModel returns a sized model backed by an in-memory theme store.
func newTestModel(t *testing.T) (Model, *prefs.MemoryStorage) {
	t.Helper()

	storage := prefs.NewMemoryStorage()
	store := theme.NewStore(theme.Options{
		Default:      theme.ModeDark,
		EnableSystem: true,
		Storage:      storage,
	})
	t.Cleanup(func() { _ = store.Close() })

	m := New(Options{Store: store, Portfolio: testPortfolio(), ShowHelp: true})
	m.clock = func() time.Time { return time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(m.Close)

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, storage
}

// update sends a message through Update and returns the updated model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Defaults(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, model.SectionHome, m.sections.Current())
	assert.Equal(t, theme.EffectiveDark, m.effective)
	require.NotNil(t, m.testimonials)
	assert.Equal(t, 3, m.testimonials.Len())
	assert.NotNil(t, m.Init())
}

func TestNew_NilStore(t *testing.T) {
	m := New(Options{Portfolio: testPortfolio()})
	t.Cleanup(m.Close)

	assert.Equal(t, theme.EffectiveDark, m.effective)

	_, cmd := update(m, runes("t"))
	require.NotNil(t, cmd)
	msg := cmd().(statusMsg)
	assert.True(t, msg.isErr)
}

func TestView_BeforeResize(t *testing.T) {
	m := New(Options{Portfolio: testPortfolio()})
	t.Cleanup(m.Close)

	assert.Equal(t, "Initializing...", m.View())
}

func TestSectionNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.SectionAbout, m.sections.Current())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.SectionContact, m.sections.Current(), "previous wraps to the last section")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.SectionHome, m.sections.Current(), "next wraps to the first section")
}

func TestSectionJumpKeys(t *testing.T) {
	tests := []struct {
		key  string
		want model.Section
	}{
		{"1", model.SectionHome},
		{"5", model.SectionProjects},
		{"8", model.SectionTestimonials},
		{"0", model.SectionContact},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = update(m, runes(tt.key))
			assert.Equal(t, tt.want, m.sections.Current())
		})
	}
}

func TestSectionIndexForKey(t *testing.T) {
	i, ok := sectionIndexForKey("1")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = sectionIndexForKey("0")
	assert.True(t, ok)
	assert.Equal(t, 9, i)

	_, ok = sectionIndexForKey("a")
	assert.False(t, ok)
	_, ok = sectionIndexForKey("10")
	assert.False(t, ok)
}

func TestTestimonialNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, runes("8"))
	require.Equal(t, model.SectionTestimonials, m.sections.Current())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Mary", m.testimonials.Current().Name)

	m, _ = update(m, runes("l"))
	assert.Equal(t, "Michael", m.testimonials.Current().Name)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Charles", m.testimonials.Current().Name, "next wraps")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Michael", m.testimonials.Current().Name, "previous wraps")

	assert.Contains(t, m.View(), "Precise.")
	assert.Contains(t, m.View(), "3/3")
}

func TestTestimonialKeysIgnoredElsewhere(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.testimonials.Index())
	assert.Equal(t, model.SectionHome, m.sections.Current())
}

func TestCycleTheme(t *testing.T) {
	m, storage := newTestModel(t)

	m, cmd := update(m, runes("t"))
	require.NotNil(t, cmd)
	status := cmd().(statusMsg)
	assert.False(t, status.isErr)
	assert.Equal(t, "Theme: system (light)", status.text)

	persisted, err := storage.Get(theme.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "system", persisted)

	// The change arrives through the store subscription
	msg := waitForTheme(m.themeCh)()
	changed, ok := msg.(themeChangedMsg)
	require.True(t, ok)
	assert.Equal(t, theme.ModeSystem, changed.change.Mode)

	m, cmd = update(m, changed)
	assert.Equal(t, theme.EffectiveLight, m.effective)
	assert.NotNil(t, cmd, "keeps listening for theme changes")
	assert.Contains(t, m.View(), "system (light)")
}

func TestCycleTheme_Sequence(t *testing.T) {
	m, _ := newTestModel(t)

	want := []theme.Mode{theme.ModeSystem, theme.ModeLight, theme.ModeDark, theme.ModeSystem}
	for _, mode := range want {
		m, _ = update(m, runes("t"))
		assert.Equal(t, mode, m.store.Mode())
	}
}

func TestContentReload(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, runes("8"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, m.testimonials.Index())

	p := testPortfolio()
	p.Profile.Name = "Grace Hopper"
	m, cmd := update(m, contentChangedMsg{portfolio: p})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.testimonials.Index(), "index kept when still in range")
	assert.Contains(t, m.View(), "Grace Hopper")

	p = testPortfolio()
	p.Testimonials = p.Testimonials[:1]
	m, _ = update(m, contentChangedMsg{portfolio: p})
	assert.Equal(t, 0, m.testimonials.Index(), "index reset when out of range")

	p = testPortfolio()
	p.Testimonials = nil
	m, _ = update(m, contentChangedMsg{portfolio: p})
	assert.Nil(t, m.testimonials)
	assert.Contains(t, m.View(), "No testimonials.")
}

func TestStatusMessages(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(m, statusMsg{text: "hello"})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "hello")

	m, _ = update(m, clearStatusMsg{})
	assert.Empty(t, m.statusMsg)

	_, cmd = update(m, copyResultMsg{err: errors.New("boom")})
	msg := cmd().(statusMsg)
	assert.True(t, msg.isErr)
	assert.Contains(t, msg.text, "boom")

	_, cmd = update(m, copyResultMsg{})
	assert.Equal(t, "Copied to clipboard", cmd().(statusMsg).text)
}

func TestCopyTarget(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"1", "https://example.com/ada.pdf"},
		{"2", ""},
		{"5", "https://example.com/engine"},
		{"8", `"Remarkable." - Charles`},
		{"0", "ada@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = update(m, runes(tt.key))
			assert.Equal(t, tt.want, m.copyTarget())
		})
	}
}

func TestCopy_NothingToCopy(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, runes("2"))

	_, cmd := update(m, runes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Nothing to copy in this section", cmd().(statusMsg).text)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	assert.False(t, m.help.ShowAll)

	m, _ = update(m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "jump to section")
}

func TestHelpToggle_RestoresHiddenFooter(t *testing.T) {
	store := theme.NewStore(theme.Options{Default: theme.ModeDark})
	t.Cleanup(func() { _ = store.Close() })

	m := New(Options{Store: store, Portfolio: testPortfolio()})
	t.Cleanup(m.Close)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotContains(t, m.View(), "jump to section")

	m, _ = update(m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "jump to section")

	m, _ = update(m, runes("?"))
	assert.False(t, m.showHelp)
	assert.False(t, m.help.ShowAll)
	assert.Empty(t, m.viewFooter())
}

func TestHelpToggle_KeepsConfiguredFooter(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(m, runes("?"))
	m, _ = update(m, runes("?"))
	assert.True(t, m.showHelp)
	assert.NotEmpty(t, m.viewFooter())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMouseClickOutsideZones(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
	assert.Equal(t, model.SectionHome, m.sections.Current())
}

// zoneOrigin renders m and waits for the zone manager to record id.
func zoneOrigin(t *testing.T, m Model, id string) (int, int) {
	t.Helper()

	_ = m.View()
	require.Eventually(t, func() bool {
		return !m.zones.Get(id).IsZero()
	}, time.Second, 5*time.Millisecond, "zone %s never recorded", id)

	z := m.zones.Get(id)
	return z.StartX, z.StartY
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestMouseClickTab(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := zoneOrigin(t, m, tabZoneID(3))
	m, cmd := update(m, click(x, y))
	assert.Nil(t, cmd)
	assert.Equal(t, 3, m.sections.Index())
	assert.Equal(t, model.Sections[3], m.sections.Current())

	x, y = zoneOrigin(t, m, tabZoneID(0))
	m, _ = update(m, click(x, y))
	assert.Equal(t, model.SectionHome, m.sections.Current())
}

func TestMouseClickTestimonialDot(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, runes("8"))
	require.Equal(t, model.SectionTestimonials, m.sections.Current())

	x, y := zoneOrigin(t, m, dotZoneID(2))
	m, _ = update(m, click(x, y))
	assert.Equal(t, 2, m.testimonials.Index())
	assert.Contains(t, m.View(), "Precise.")

	x, y = zoneOrigin(t, m, dotZoneID(0))
	m, _ = update(m, click(x, y))
	assert.Equal(t, 0, m.testimonials.Index())
}

func TestMousePressIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	x, y := zoneOrigin(t, m, tabZoneID(3))
	m, _ = update(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, model.SectionHome, m.sections.Current())
}

// countingScheme counts host preference queries.
type countingScheme struct {
	queries atomic.Int32
}

func (c *countingScheme) PrefersDark() bool {
	c.queries.Add(1)
	return true
}

func TestView_DoesNotQueryHostScheme(t *testing.T) {
	scheme := &countingScheme{}
	store := theme.NewStore(theme.Options{
		Default:      theme.ModeSystem,
		EnableSystem: true,
		Scheme:       scheme,
	})
	t.Cleanup(func() { _ = store.Close() })

	m := New(Options{Store: store, Portfolio: testPortfolio()})
	t.Cleanup(m.Close)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	scheme.queries.Store(0)
	for i := 0; i < 50; i++ {
		m, _ = update(m, tea.MouseMsg{X: i, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
		assert.Contains(t, m.View(), "system (dark)")
	}
	assert.Zero(t, scheme.queries.Load())
}

func TestView_Sections(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "Testimonials")
	assert.Contains(t, view, "dark")

	m, _ = update(m, runes("9"))
	assert.Contains(t, m.View(), "3 days ago")

	m, _ = update(m, runes("0"))
	assert.Contains(t, m.View(), "ada@example.com")
}

func TestDetectClipboardCommand(t *testing.T) {
	only := func(name string) func(string) (string, error) {
		return func(file string) (string, error) {
			if file == name {
				return "/usr/bin/" + file, nil
			}
			return "", errors.New("not found")
		}
	}

	assert.Equal(t, "my-copy", detectClipboardCommand("my-copy", only("wl-copy")))
	assert.Equal(t, "wl-copy", detectClipboardCommand("", only("wl-copy")))
	assert.Equal(t, "xclip -selection clipboard", detectClipboardCommand("", only("xclip")))
	assert.Equal(t, "xsel --clipboard --input", detectClipboardCommand("", only("xsel")))
	assert.Equal(t, "", detectClipboardCommand("", only("none")))
}
