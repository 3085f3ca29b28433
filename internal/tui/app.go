package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/appydinos/moviebrowser/internal/service"
	"github.com/appydinos/moviebrowser/internal/tui/styles"
)

// Screen identifies which screen has focus
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenDetails
	ScreenWatchlist
)

// loadMoreThreshold is how close to the bottom the cursor must be before
// the next page is requested.
const loadMoreThreshold = 5

// Model is the main Bubble Tea model for the application
type Model struct {
	browse    *service.BrowseService
	details   *service.DetailsService
	watchlist *service.WatchlistService
	logger    *slog.Logger

	screen Screen
	width  int
	height int

	browseState    service.BrowseState
	detailsState   service.DetailsState
	watchlistState service.WatchlistState

	browseCursor    int
	watchlistCursor int

	searching bool
	search    textinput.Model
	spin      spinner.Model
}

// NewModel creates the application model and kicks off the initial load.
func NewModel(browse *service.BrowseService, details *service.DetailsService, watchlist *service.WatchlistService, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "Search movies..."
	search.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.AccentStyle

	return Model{
		browse:    browse,
		details:   details,
		watchlist: watchlist,
		logger:    logger,
		screen:    ScreenBrowse,
		search:    search,
		spin:      spin,
	}
}

// Init starts the service subscriptions and the first page load.
func (m Model) Init() tea.Cmd {
	m.browse.LoadMore()
	m.watchlist.Refresh()
	return tea.Batch(
		WaitForBrowseCmd(m.browse),
		WaitForDetailsCmd(m.details),
		WaitForWatchlistCmd(m.watchlist),
		m.spin.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case BrowseStateMsg:
		m.browseState = msg.State
		m.clampCursors()
		return m, WaitForBrowseCmd(m.browse)

	case DetailsStateMsg:
		m.detailsState = msg.State
		return m, WaitForDetailsCmd(m.details)

	case WatchlistStateMsg:
		m.watchlistState = msg.State
		m.clampCursors()
		return m, WaitForWatchlistCmd(m.watchlist)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search / filter input mode swallows everything except its exits
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			query := m.search.Value()
			if m.screen == ScreenWatchlist {
				m.watchlist.SetFilter(query)
			} else {
				m.browseCursor = 0
				m.browse.SetQuery(query)
			}
			return m, nil
		case "esc":
			m.searching = false
			m.search.SetValue("")
			if m.screen == ScreenWatchlist {
				m.watchlist.SetFilter("")
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1":
		m.screen = ScreenBrowse
		return m, nil

	case "2":
		m.screen = ScreenWatchlist
		m.watchlist.Refresh()
		return m, nil

	case "esc":
		if m.screen == ScreenDetails {
			m.screen = ScreenBrowse
		}
		return m, nil

	case "/":
		if m.screen == ScreenBrowse || m.screen == ScreenWatchlist {
			m.searching = true
			m.search.SetValue("")
			m.search.Focus()
		}
		return m, nil

	case "r":
		switch m.screen {
		case ScreenBrowse:
			m.browse.Retry()
		case ScreenDetails:
			m.details.Retry()
		case ScreenWatchlist:
			m.watchlist.Refresh()
		}
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "enter":
		return m.openSelection()

	case "w":
		if m.screen == ScreenDetails {
			if m.detailsState.InWatchlist {
				m.details.RemoveFromWatchlist()
			} else {
				m.details.AddToWatchlist()
			}
		}
		return m, nil

	case "x", "delete":
		if m.screen == ScreenWatchlist {
			items := m.watchlistState.Filtered
			if m.watchlistCursor < len(items) {
				m.watchlist.Delete(items[m.watchlistCursor].Movie.ID)
			}
		}
		return m, nil
	}

	return m, nil
}

// moveCursor moves the active list cursor and requests the next page
// when close to the bottom.
func (m *Model) moveCursor(delta int) {
	switch m.screen {
	case ScreenBrowse:
		m.browseCursor += delta
		if m.browseCursor < 0 {
			m.browseCursor = 0
		}
		if n := len(m.browseState.Movies); n > 0 && m.browseCursor >= n {
			m.browseCursor = n - 1
		}
		if len(m.browseState.Movies)-m.browseCursor <= loadMoreThreshold {
			m.browse.LoadMore()
		}
	case ScreenWatchlist:
		m.watchlistCursor += delta
		if m.watchlistCursor < 0 {
			m.watchlistCursor = 0
		}
		if n := len(m.watchlistState.Filtered); n > 0 && m.watchlistCursor >= n {
			m.watchlistCursor = n - 1
		}
		if len(m.watchlistState.Filtered)-m.watchlistCursor <= loadMoreThreshold {
			m.watchlist.LoadMore()
		}
	}
}

func (m Model) openSelection() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenBrowse:
		if m.browseCursor < len(m.browseState.Movies) {
			m.screen = ScreenDetails
			m.details.LoadMovie(m.browseState.Movies[m.browseCursor].ID)
		}
	case ScreenWatchlist:
		items := m.watchlistState.Filtered
		if m.watchlistCursor < len(items) {
			m.screen = ScreenDetails
			// The movie is already in hand; skip the detail fetch.
			m.details.SetMovie(items[m.watchlistCursor].Movie)
		}
	}
	return m, nil
}

func (m *Model) clampCursors() {
	if n := len(m.browseState.Movies); m.browseCursor >= n && n > 0 {
		m.browseCursor = n - 1
	}
	if n := len(m.watchlistState.Filtered); m.watchlistCursor >= n && n > 0 {
		m.watchlistCursor = n - 1
	}
}
