// Package tui provides a Bubble Tea terminal browser for the album catalog.
//
// The list view shows a search box, genre chips, the count line and the
// current page of the filtered view. Enter opens the detail view; esc goes
// back. Every view change goes through the router, so the persisted
// navigation marker always matches what is on screen.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/catalog"
	"github.com/handiism/album-catalog/internal/cover"
	"github.com/handiism/album-catalog/internal/errmsg"
	"github.com/handiism/album-catalog/internal/ingest"
	"github.com/handiism/album-catalog/internal/router"
)

// Loader ingests the sheet. *ingest.Pipeline satisfies it.
type Loader interface {
	Load(ctx context.Context, url string) (ingest.Result, error)
}

// Deps are the collaborators the TUI drives.
type Deps struct {
	Loader   Loader
	SheetURL string
	Catalog  *catalog.Catalog
	Router   *router.Router
	Proxy    *cover.Proxy
	Logger   *zap.Logger
}

// Phase is the ingestion state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusGenres
)

// Message types
type (
	// LoadedMsg is sent when ingestion finishes.
	LoadedMsg struct {
		Result ingest.Result
		Err    error
	}
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	deps Deps
	ctx  context.Context

	phase   Phase
	err     error
	notices []string

	search  textinput.Model
	spinner spinner.Model
	detail  viewport.Model
	help    help.Model
	keys    keyMap

	focus       focus
	cursor      int
	offset      int
	genreCursor int

	width  int
	height int
}

// NewModel creates a new TUI model. The catalog is loaded by Init.
func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Proxy == nil {
		deps.Proxy = cover.NewProxy("")
	}

	ti := textinput.New()
	ti.Placeholder = "search artist, album, genre, track"
	ti.Prompt = "/ "
	ti.CharLimit = 200
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	return Model{
		deps:    deps,
		ctx:     ctx,
		phase:   PhaseLoading,
		search:  ti,
		spinner: sp,
		detail:  viewport.New(80, 20),
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   80,
		height:  24,
	}
}

// Init starts loading the catalog.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	loader, url, ctx := m.deps.Loader, m.deps.SheetURL, m.ctx
	return func() tea.Msg {
		res, err := loader.Load(ctx, url)
		return LoadedMsg{Result: res, Err: err}
	}
}

// Phase returns the ingestion state.
func (m Model) Phase() Phase {
	return m.phase
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(20, min(60, msg.Width-10))
		m.detail.Width = msg.Width
		m.detail.Height = max(5, msg.Height-4)
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if m.phase != PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		return m.loaded(msg), nil

	case tea.ResumeMsg:
		// Returning from ctrl+z behaves like a page restored from cache.
		m.deps.Router.OnResume()
		m.syncDetail()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) loaded(msg LoadedMsg) Model {
	if msg.Err != nil {
		m.phase = PhaseFailed
		m.err = msg.Err
		m.deps.Logger.Error("catalog load failed", zap.Error(msg.Err))
		return m
	}

	m.phase = PhaseReady
	m.err = nil
	m.notices = m.notices[:0]
	if msg.Result.HasNotice(ingest.NoticeShapeFallback) {
		m.notices = append(m.notices, errmsg.NoticeShapeFallback)
	}
	if msg.Result.HasNotice(ingest.NoticeEmptyResult) {
		m.notices = append(m.notices, errmsg.NoticeEmptyResult)
	}

	m.deps.Catalog.Populate(msg.Result.Records)
	m.deps.Router.EnforceRoute()
	m.cursor, m.offset, m.genreCursor = 0, 0, 0
	m.syncDetail()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Suspend) {
		return m, tea.Suspend
	}

	switch m.phase {
	case PhaseLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case PhaseFailed:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.phase = PhaseLoading
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.load())
		}
		return m, nil
	}

	if m.deps.Router.State() == router.StateDetail {
		return m.handleDetailKey(msg)
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusGenres:
		return m.handleGenreKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Open):
		if m.deps.Router.OpenIndex(m.cursor) {
			m.syncDetail()
		}
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Genres):
		if len(m.deps.Catalog.Genres()) > 0 {
			m.focus = focusGenres
		}
	case key.Matches(msg, m.keys.ClearAll):
		m.deps.Catalog.Reset()
		m.search.SetValue("")
		m.resetCursor()
	case key.Matches(msg, m.keys.More):
		m.deps.Catalog.LoadMore()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyTab, tea.KeyDown:
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.deps.Catalog.SetQuery(v)
		m.resetCursor()
	}
	return m, cmd
}

func (m Model) handleGenreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	genres := m.deps.Catalog.Genres()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.genreCursor = max(0, m.genreCursor-1)
	case key.Matches(msg, m.keys.Right):
		m.genreCursor = min(len(genres)-1, m.genreCursor+1)
	case key.Matches(msg, m.keys.Toggle):
		if m.genreCursor < len(genres) {
			m.deps.Catalog.ToggleGenre(genres[m.genreCursor])
			m.resetCursor()
		}
	case key.Matches(msg, m.keys.ClearAll):
		m.deps.Catalog.Reset()
		m.search.SetValue("")
		m.resetCursor()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Genres), key.Matches(msg, m.keys.Down):
		m.focus = focusList
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.deps.Router.Back()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// resetCursor moves to the top of a freshly filtered view.
func (m *Model) resetCursor() {
	m.cursor, m.offset = 0, 0
}

// clampCursor keeps the cursor inside the window and scrolls the list.
func (m *Model) clampCursor() {
	n := len(m.deps.Catalog.Window())
	m.cursor = max(0, min(m.cursor, n-1))

	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, m.offset)
}

// syncDetail renders the open record into the detail viewport.
func (m *Model) syncDetail() {
	rec, ok := m.deps.Catalog.CurrentItem()
	if !ok {
		return
	}
	m.detail.SetContent(m.renderDetail(rec))
	m.detail.GotoTop()
}
