package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/appydinos/moviebrowser/internal/domain"
	"github.com/appydinos/moviebrowser/internal/paging"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const watchlistPageSize = 20

// WatchlistState is a snapshot of the watchlist screen. Items are
// newest-first; Filtered is Items narrowed by the title filter (the
// whole list when the filter is empty).
type WatchlistState struct {
	Items    []domain.WatchlistItem
	Filtered []domain.WatchlistItem
	Filter   string
	Loading  bool
	Err      string
	Empty    bool
}

// WatchlistService owns the watchlist screen's paged local sequence and
// the in-memory title filter over it.
type WatchlistService struct {
	store  domain.WatchlistRepository
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	gen     int
	pager   *paging.Pager[domain.WatchlistItem]
	state   WatchlistState
	updates chan WatchlistState
}

// NewWatchlistService creates a watchlist service. Call Refresh to load
// the first page.
func NewWatchlistService(store domain.WatchlistRepository, logger *slog.Logger) *WatchlistService {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &WatchlistService{
		store:   store,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		updates: make(chan WatchlistState, 1),
	}
	s.pager = s.newPager()
	return s
}

// Close cancels all in-flight work owned by this service.
func (s *WatchlistService) Close() {
	s.cancel()
}

// State returns the current snapshot.
func (s *WatchlistService) State() WatchlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Updates returns the state change stream; the channel always holds the
// latest snapshot.
func (s *WatchlistService) Updates() <-chan WatchlistState {
	return s.updates
}

// Refresh restarts the sequence from the first page, picking up rows
// added or removed since the last read.
func (s *WatchlistService) Refresh() {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pager = s.newPager()
	s.state.Items = nil
	s.state.Loading = true
	s.state.Err = ""
	s.applyFilterLocked()
	s.notifyLocked()
	pager := s.pager
	s.mu.Unlock()

	go s.loadNext(gen, pager)
}

// LoadMore requests the next window of the sequence.
func (s *WatchlistService) LoadMore() {
	s.mu.Lock()
	if s.state.Loading || s.pager.Done() {
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

// Delete removes the movie from the watchlist and refreshes the list.
func (s *WatchlistService) Delete(movieID int) {
	go func() {
		if err := s.store.Delete(s.ctx, movieID); err != nil {
			s.logger.Error("failed to delete watchlist movie", "movie_id", movieID, "error", err)
			return
		}
		s.Refresh()
	}()
}

// SetFilter narrows the visible items to titles fuzzy-matching the
// query. Filtering is purely local; the persisted list is untouched.
func (s *WatchlistService) SetFilter(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter = query
	s.applyFilterLocked()
	s.notifyLocked()
}

func (s *WatchlistService) newPager() *paging.Pager[domain.WatchlistItem] {
	return paging.NewPager[domain.WatchlistItem](Loader{s.store, watchlistPageSize})
}

func (s *WatchlistService) loadNext(gen int, pager *paging.Pager[domain.WatchlistItem]) {
	_, err := pager.LoadNext(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}

	s.state.Loading = false
	if err != nil {
		s.logger.Error("failed to load watchlist page", "error", err)
		s.state.Err = err.Error()
		s.notifyLocked()
		return
	}

	s.state.Items = pager.Items()
	s.state.Empty = len(s.state.Items) == 0
	s.applyFilterLocked()
	s.notifyLocked()
}

func (s *WatchlistService) applyFilterLocked() {
	if s.state.Filter == "" {
		s.state.Filtered = s.state.Items
		return
	}
	filtered := make([]domain.WatchlistItem, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if fuzzy.MatchNormalizedFold(s.state.Filter, item.Movie.Title) {
			filtered = append(filtered, item)
		}
	}
	s.state.Filtered = filtered
}

func (s *WatchlistService) notifyLocked() {
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

// Loader adapts the watchlist repository's paged read to
// domain.PageLoader.
type Loader struct {
	Store    domain.WatchlistRepository
	PageSize int
}

func (l Loader) Load(ctx context.Context, key *int) (domain.Page[domain.WatchlistItem], error) {
	return l.Store.List(ctx, key, l.PageSize)
}
