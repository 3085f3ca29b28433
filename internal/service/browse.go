package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/appydinos/moviebrowser/internal/domain"
	"github.com/appydinos/moviebrowser/internal/movies"
	"github.com/appydinos/moviebrowser/internal/paging"
)

// BrowseState is a snapshot of the movie list screen: the items loaded
// so far for the current query plus the load state of the next page.
type BrowseState struct {
	Query      string
	Movies     []domain.Movie
	Loading    bool
	EndReached bool

	// Err is the message of the most recent failed page load, empty
	// when the last load succeeded. Initial tells full-screen and
	// footer error presentation apart: true means nothing has loaded
	// yet for this query.
	Err     string
	Initial bool
}

// BrowseService owns the browse screen's paged movie sequence. Changing
// the query replaces the pager instance rather than mutating it, so
// results from a stale in-flight fetch can never surface in the new
// query's list.
type BrowseService struct {
	repo   *movies.Repository
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	gen     int
	pager   *paging.Pager[domain.Movie]
	state   BrowseState
	updates chan BrowseState
}

// NewBrowseService creates a browse service positioned on the
// now-playing list. Call LoadMore to fetch the first page.
func NewBrowseService(repo *movies.Repository, logger *slog.Logger) *BrowseService {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BrowseService{
		repo:    repo,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		pager:   repo.NowPlaying(),
		state:   BrowseState{Initial: true},
		updates: make(chan BrowseState, 1),
	}
}

// Close cancels all in-flight work owned by this service.
func (s *BrowseService) Close() {
	s.cancel()
}

// State returns the current snapshot.
func (s *BrowseService) State() BrowseState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Updates returns the state change stream; the channel always holds the
// latest snapshot.
func (s *BrowseService) Updates() <-chan BrowseState {
	return s.updates
}

// SetQuery switches the sequence to a new search term (empty = now
// playing) and loads its first page. The previous pager is detached
// wholesale; its in-flight results are dropped by generation check.
func (s *BrowseService) SetQuery(query string) {
	s.mu.Lock()
	if query == s.state.Query && s.pager.Started() {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.pager = s.repo.Movies(query)
	s.state = BrowseState{Query: query, Initial: true}
	s.notifyLocked()
	s.mu.Unlock()

	s.LoadMore()
}

// LoadMore requests the next page of the current sequence. Pages load
// one at a time; a request while a load is already running is ignored.
func (s *BrowseService) LoadMore() {
	s.mu.Lock()
	if s.state.Loading || s.state.EndReached {
		s.mu.Unlock()
		return
	}
	gen := s.gen
	pager := s.pager
	s.state.Loading = true
	s.state.Err = ""
	s.notifyLocked()
	s.mu.Unlock()

	go s.loadNext(gen, pager)
}

// Retry re-invokes the failed page load; the pager's cursor did not
// advance, so the same key is fetched again.
func (s *BrowseService) Retry() {
	s.LoadMore()
}

func (s *BrowseService) loadNext(gen int, pager *paging.Pager[domain.Movie]) {
	_, err := pager.LoadNext(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return // The query changed while this page was in flight
	}

	s.state.Loading = false
	if err != nil {
		s.logger.Error("failed to load movie page", "query", s.state.Query, "error", err)
		s.state.Err = err.Error()
		s.notifyLocked()
		return
	}

	s.state.Movies = pager.Items()
	s.state.Initial = false
	s.state.EndReached = pager.Done()
	s.notifyLocked()
}

func (s *BrowseService) notifyLocked() {
	select {
	case s.updates <- s.state:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- s.state:
		default:
		}
	}
}
