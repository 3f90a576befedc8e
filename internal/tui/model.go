// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jmylchreest/folio/internal/carousel"
	"github.com/jmylchreest/folio/internal/model"
	"github.com/jmylchreest/folio/internal/theme"
)

// Options configures the TUI model.
type Options struct {
	Store            *theme.Store
	Portfolio        *model.Portfolio
	ContentUpdates   <-chan *model.Portfolio // reloaded content, may be nil
	PaletteDir       string
	ShowHelp         bool
	ClipboardCommand string
	Logger           *slog.Logger
}

// Model is the main TUI model.
type Model struct {
	store  *theme.Store
	logger *slog.Logger

	// Content
	portfolio    *model.Portfolio
	sections     *carousel.Controller[model.Section]
	testimonials *carousel.Controller[model.Testimonial]

	// Theme
	effective  theme.Effective
	paletteDir string
	palette    theme.Palette
	styles     Styles

	// Components
	viewport viewport.Model
	help     help.Model
	keys     KeyMap
	zones    *zone.Manager

	// State
	width       int
	height      int
	ready       bool
	showHelp    bool
	helpDefault bool

	// Status message
	statusMsg string
	statusErr bool

	clipboardCmd string
	clock        func() time.Time

	// Subscriptions
	themeCh   <-chan theme.Change
	themeSub  *theme.Subscription
	contentCh <-chan *model.Portfolio
}

type themeChangedMsg struct {
	change theme.Change
}

type contentChangedMsg struct {
	portfolio *model.Portfolio
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// New creates a new TUI model. It subscribes to the theme store; call Close
// when the program exits.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// model.Sections is never empty
	sections, _ := carousel.New(model.Sections)

	h := help.New()
	h.ShowAll = false

	m := Model{
		store:        opts.Store,
		logger:       logger,
		sections:     sections,
		paletteDir:   opts.PaletteDir,
		help:         h,
		keys:         DefaultKeyMap(),
		zones:        zone.New(),
		showHelp:     opts.ShowHelp,
		helpDefault:  opts.ShowHelp,
		clipboardCmd: opts.ClipboardCommand,
		contentCh:    opts.ContentUpdates,
	}
	m.setPortfolio(opts.Portfolio)

	effective := theme.EffectiveDark
	if opts.Store != nil {
		effective = opts.Store.Effective()

		// SetMode notifies synchronously from inside Update; sends must not block.
		ch := make(chan theme.Change, 8)
		m.themeSub = opts.Store.Subscribe(func(c theme.Change) {
			select {
			case ch <- c:
			default:
				logger.Debug("dropping theme change, queue full", "mode", c.Mode)
			}
		})
		m.themeCh = ch
	}
	m.applyTheme(effective)

	return m
}

// Close releases the theme subscription and mouse zone tracking.
func (m Model) Close() {
	if m.themeSub != nil {
		m.themeSub.Unsubscribe()
	}
	if m.zones != nil {
		m.zones.Close()
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForTheme(m.themeCh),
		waitForContent(m.contentCh),
	)
}

func waitForTheme(ch <-chan theme.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return themeChangedMsg{change: c}
	}
}

func waitForContent(ch <-chan *model.Portfolio) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return contentChangedMsg{portfolio: p}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, 0)
			m.ready = true
		}
		m.layout()
		m.refresh()
		return m, nil

	case themeChangedMsg:
		m.applyTheme(msg.change.Effective)
		m.refresh()
		return m, waitForTheme(m.themeCh)

	case contentChangedMsg:
		m.setPortfolio(msg.portfolio)
		m.refresh()
		return m, tea.Batch(
			waitForContent(m.contentCh),
			setStatus("Content reloaded", false),
		)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied to clipboard", false)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.showHelp = m.help.ShowAll || m.helpDefault
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.NextSection):
		m.sections.Next()
		m.showSection()
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.sections.Previous()
		m.showSection()
		return m, nil

	case key.Matches(msg, m.keys.JumpSection):
		i, _ := sectionIndexForKey(msg.String())
		if err := m.sections.JumpTo(i); err != nil {
			return m, setStatus(err.Error(), true)
		}
		m.showSection()
		return m, nil

	case key.Matches(msg, m.keys.NextItem):
		if m.onTestimonials() {
			m.testimonials.Next()
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevItem):
		if m.onTestimonials() {
			m.testimonials.Previous()
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()

	case key.Matches(msg, m.keys.Copy):
		text := m.copyTarget()
		if text == "" {
			return m, setStatus("Nothing to copy in this section", false)
		}
		return m, m.copyToClipboard(text)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleMouse handles clicks on section tabs and testimonial dots. Wheel
// events scroll the viewport.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	for i := 0; i < m.sections.Len(); i++ {
		if m.zones.Get(tabZoneID(i)).InBounds(msg) {
			m.selectSection(i)
			return m, nil
		}
	}

	if m.onTestimonials() {
		for i := 0; i < m.testimonials.Len(); i++ {
			if m.zones.Get(dotZoneID(i)).InBounds(msg) {
				m.selectTestimonial(i)
				return m, nil
			}
		}
	}

	return m, nil
}

func (m *Model) selectSection(i int) {
	if err := m.sections.JumpTo(i); err != nil {
		m.logger.Debug("section out of range", "error", err)
		return
	}
	m.showSection()
}

func (m *Model) selectTestimonial(i int) {
	if m.testimonials == nil {
		return
	}
	if err := m.testimonials.JumpTo(i); err != nil {
		m.logger.Debug("testimonial out of range", "error", err)
		return
	}
	m.refresh()
}

func (m Model) onTestimonials() bool {
	return m.sections.Current() == model.SectionTestimonials && m.testimonials != nil
}

// cycleTheme advances the theme mode. The new palette arrives through the
// store subscription.
func (m Model) cycleTheme() tea.Cmd {
	if m.store == nil {
		return setStatus("Theme store unavailable", true)
	}
	next := m.store.Mode().Next(m.store.SystemEnabled())
	if err := m.store.SetMode(next); err != nil {
		return setStatus("Theme change failed: "+err.Error(), true)
	}
	return setStatus("Theme: "+formatModeLabel(next, m.store.Effective()), false)
}

// modeLabel describes the selected mode and the palette currently applied.
func (m Model) modeLabel() string {
	if m.store == nil {
		return m.effective.String()
	}
	return formatModeLabel(m.store.Mode(), m.effective)
}

func formatModeLabel(mode theme.Mode, effective theme.Effective) string {
	if mode == theme.ModeSystem {
		return fmt.Sprintf("system (%s)", effective)
	}
	return mode.String()
}

// copyTarget returns the text the copy key acts on in the current section.
func (m Model) copyTarget() string {
	if m.portfolio == nil {
		return ""
	}
	switch m.sections.Current() {
	case model.SectionHome:
		if m.portfolio.Profile.ResumeURL != "" {
			return m.portfolio.Profile.ResumeURL
		}
		return m.portfolio.Profile.CompanyURL
	case model.SectionContact:
		return m.portfolio.Contact.Email
	case model.SectionTestimonials:
		if m.testimonials == nil {
			return ""
		}
		t := m.testimonials.Current()
		return fmt.Sprintf("%q - %s", t.Quote, t.Name)
	case model.SectionProjects:
		var urls []string
		for _, p := range m.portfolio.Projects {
			if p.LiveURL != "" {
				urls = append(urls, p.LiveURL)
			}
		}
		return strings.Join(urls, "\n")
	default:
		return ""
	}
}

// setPortfolio replaces the content. The testimonial carousel is rebuilt and
// keeps its position when the new list is long enough.
func (m *Model) setPortfolio(p *model.Portfolio) {
	m.portfolio = p
	if p == nil {
		m.testimonials = nil
		return
	}

	prev := 0
	if m.testimonials != nil {
		prev = m.testimonials.Index()
	}

	c, err := carousel.New(p.Testimonials)
	if err != nil {
		m.testimonials = nil
		return
	}
	if prev < c.Len() {
		_ = c.JumpTo(prev)
	}
	m.testimonials = c
}

func (m *Model) applyTheme(e theme.Effective) {
	m.effective = e
	m.palette = theme.LoadPalette(e, m.paletteDir, m.logger)
	m.styles = NewStyles(m.palette)
}

// showSection renders the current section from the top.
func (m *Model) showSection() {
	m.refresh()
	m.viewport.GotoTop()
}

// refresh re-renders the current section into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderSection(m.sections.Current()))
}

// layout sizes the viewport between header and footer.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	h := m.height - lipgloss.Height(m.viewHeader()) - lipgloss.Height(m.viewFooter())
	m.viewport.Width = m.width
	m.viewport.Height = max(h, 1)
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewport.View(),
		m.viewFooter(),
	)
	return m.zones.Scan(m.styles.App.Width(m.width).Height(m.height).Render(body))
}

func (m Model) viewHeader() string {
	name := "folio"
	if m.portfolio != nil && m.portfolio.Profile.Name != "" {
		name = m.portfolio.Profile.Name
	}
	brand := m.styles.Brand.Render(name)
	mode := m.styles.Mode.Render("◐ " + m.modeLabel())
	gap := max(m.width-lipgloss.Width(brand)-lipgloss.Width(mode), 1)
	top := brand + strings.Repeat(" ", gap) + mode

	tabs := make([]string, 0, m.sections.Len())
	for i, s := range m.sections.Items() {
		label := fmt.Sprintf("%d %s", (i+1)%10, s.Title())
		style := m.styles.Tab
		if i == m.sections.Index() {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, m.zones.Mark(tabZoneID(i), style.Render(label)))
	}
	tabLine := ansi.Truncate(strings.Join(tabs, ""), m.width, "…")

	return top + "\n" + tabLine
}

func (m Model) viewFooter() string {
	if m.statusMsg != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusErr
		}
		return style.Render(m.statusMsg)
	}
	if !m.showHelp {
		return ""
	}
	return m.help.View(m.keys)
}
