package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reelfind/internal/config"
	"reelfind/internal/domain"
	"reelfind/internal/eventbus"
	"reelfind/internal/logging"
	"reelfind/internal/ui/debounce"
	"reelfind/internal/ui/logic"
	"reelfind/internal/ui/state"
	"reelfind/internal/ui/views"
)

// MovieFetcher retrieves one page of movies for a search term
type MovieFetcher interface {
	FetchMovies(ctx context.Context, term string) (domain.MoviePage, error)
}

// TrendingSource lists the most searched terms
type TrendingSource interface {
	TrendingMovies(ctx context.Context, limit int) ([]domain.TrendingEntry, error)
}

// Model is the search controller: it owns the search state and drives the
// debounce -> fetch -> render lifecycle
type Model struct {
	ctx    context.Context
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	input       textinput.Model
	inPagerMode bool // tracks if we're currently in pager mode

	movies    MovieFetcher
	trending  TrendingSource
	debouncer *debounce.Debouncer
	navigator *logic.Navigator // navigation and viewport handler
	renderer  *views.Renderer  // view renderer
	pager     *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. trending may be nil, in which case the
// trending section stays empty.
func NewModel(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, movies MovieFetcher, trending TrendingSource) *Model {
	input := textinput.New()
	input.Placeholder = "Search through thousands of movies"
	input.Prompt = "> "
	input.CharLimit = 256
	input.Focus()

	return &Model{
		ctx:       ctx,
		bus:       bus,
		config:    cfg,
		state:     state.NewAppState(),
		help:      help.New(),
		keys:      defaultKeyMap(),
		input:     input,
		movies:    movies,
		trending:  trending,
		debouncer: debounce.New(cfg.Search.Debounce()),
		navigator: logic.NewNavigator(),
		renderer:  views.NewRenderer(),
		pager:     NewPager(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init starts the cursor, schedules the first debounced publication and loads trending
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.debouncer.Trigger(m.state.Query), m.loadTrending())
}

// SetQuery replaces the query immediately and restarts the debounce window
func (m *Model) SetQuery(text string) tea.Cmd {
	m.state.Query = text
	if m.input.Value() != text {
		m.input.SetValue(text)
	}
	return m.debouncer.Trigger(text)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if msg.Width > 12 {
			m.input.Width = msg.Width - 12
		}
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounce.Msg:
		value, ok := m.debouncer.Settled(msg)
		if !ok || !m.state.PublishDebounced(value) {
			return m, nil
		}
		return m, m.fetchMovies(value)

	case moviesFetchedMsg:
		m.handleMoviesFetched(msg)
		return m, nil

	case trendingLoadedMsg:
		if msg.err != nil {
			logging.Error().Err(msg.err).Msg("failed to load trending movies")
			return m, nil
		}
		m.state.SetTrending(msg.entries)
		m.updateViewportHeight()
		return m, nil

	case detailsPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			logging.Warn().Err(msg.err).Msg("details pager failed, falling back to popup")
			m.state.ShowDetails = true
			m.state.DetailsContent = msg.content
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Popups swallow keys until closed
	if m.state.ShowHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.state.ShowHelp = false
		}
		return m, nil
	}
	if m.state.ShowDetails {
		switch msg.String() {
		case "esc", "enter", "q":
			m.state.ShowDetails = false
			m.state.DetailsContent = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.state.ShowHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Details):
		return m, m.openDetails()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.navigator.MoveUp)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.navigator.MoveDown)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(m.navigator.PageUp)
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.navigator.PageDown)
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(m.navigator.First)
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.moveCursor(m.navigator.Last)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		return m, tea.Batch(cmd, m.SetQuery(value))
	}
	return m, cmd
}

// fetchMovies flips the state to loading and returns the request command.
// Results are applied in completion order.
func (m *Model) fetchMovies(term string) tea.Cmd {
	m.state.BeginFetch()

	ctx, movies := m.ctx, m.movies
	return func() tea.Msg {
		page, err := movies.FetchMovies(ctx, term)
		return moviesFetchedMsg{term: term, page: page, err: err}
	}
}

func (m *Model) handleMoviesFetched(msg moviesFetchedMsg) {
	defer m.state.EndFetch()

	if msg.err != nil {
		logging.Error().Err(msg.err).Str("term", msg.term).Msg("failed to fetch movies")
		m.state.ApplyFetchError()
		return
	}

	ok := m.state.ApplyPage(msg.page)
	m.resetCursor()
	if !ok {
		logging.Warn().Str("term", msg.term).Str("error", m.state.ErrorMessage).Msg("movie API reported a failure")
		return
	}

	logging.Debug().Str("term", msg.term).Int("results", len(m.state.Movies)).Msg("movies fetched")
	if msg.term != "" && len(m.state.Movies) > 0 {
		m.bus.Publish(eventbus.SearchSucceededEvent{Term: msg.term, Movie: m.state.Movies[0]})
	}
}

// loadTrending reads the top searches once
func (m *Model) loadTrending() tea.Cmd {
	if m.trending == nil {
		return nil
	}

	ctx, source := m.ctx, m.trending
	limit, timeout := m.config.Search.TrendingLimit, m.config.Store.Timeout()
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		entries, err := source.TrendingMovies(ctx, limit)
		return trendingLoadedMsg{entries: entries, err: err}
	}
}

// openDetails shows the selected movie in the pager, or in a popup when no
// program is attached
func (m *Model) openDetails() tea.Cmd {
	movie, ok := m.state.SelectedMovie()
	if !ok {
		return nil
	}
	content := m.renderer.Movies().RenderDetails(movie, m.config.API.ImageBaseURL)

	if m.program == nil {
		m.state.ShowDetails = true
		m.state.DetailsContent = content
		return nil
	}

	program, pager := m.program, m.pager
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := pager.Show(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return detailsPagerMsg{content: content, err: err}
	}
}

// syncNavigatorState updates the navigator with current model state
func (m *Model) syncNavigatorState() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportHeight,
		len(m.state.Movies),
	)
}

func (m *Model) moveCursor(move func() (int, int)) {
	m.syncNavigatorState()
	m.state.SelectedIndex, m.state.ViewportOffset = move()
}

func (m *Model) resetCursor() {
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
}

func (m *Model) updateViewportHeight() {
	if m.height <= 0 {
		return
	}
	m.state.ViewportHeight = views.ListHeight(m.height, len(m.state.Trending))
	m.moveCursor(m.navigator.Clamp)
}

// View renders the UI
func (m *Model) View() string {
	// Don't render anything while ov owns the terminal
	if m.inPagerMode {
		return ""
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		SearchInput:    m.input.View(),
		Movies:         m.state.Movies,
		Loading:        m.state.Loading,
		ErrorMessage:   m.state.ErrorMessage,
		Trending:       m.state.Trending,
		SelectedIndex:  m.state.SelectedIndex,
		ViewportOffset: m.state.ViewportOffset,
		ViewportHeight: m.state.ViewportHeight,
		ShowHelp:       m.state.ShowHelp,
		HelpShort:      m.help.ShortHelpView(m.keys.ShortHelp()),
		HelpFull:       m.help.FullHelpView(m.keys.FullHelp()),
		ShowDetails:    m.state.ShowDetails,
		DetailsContent: m.state.DetailsContent,
	})
}
