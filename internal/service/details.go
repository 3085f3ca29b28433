// Package service holds the state machines that mediate between the
// data layers and what a screen displays. Each service owns its own
// cancellation scope and exposes a snapshot plus a stream of state
// changes; the goroutines behind them are an implementation detail.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/appydinos/moviebrowser/internal/domain"
)

// User-facing messages for the details screen.
const (
	msgSelectMovie    = "Select a movie to see its details"
	msgDetailsMissing = "Failed to get movie details"
	msgDetailsFailed  = "Something went wrong when trying to get the movie details"
)

// DetailsState is a snapshot of the movie detail screen.
type DetailsState struct {
	Loading     bool
	Movie       *domain.Movie
	InWatchlist bool
	Message     MessageState
}

// DetailsService drives a single movie detail screen. The detail fetch
// and the video fetch run concurrently with no ordering guarantee;
// whichever resolves second merges the other's data via mergeMovie, so
// the displayed movie always carries both once both have arrived.
// Responses are tagged with a generation counter: anything from a
// superseded load is discarded.
type DetailsService struct {
	repo      domain.MoviesRepository
	watchlist domain.WatchlistRepository
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	gen     int
	movieID int
	videos  []domain.Video
	state   DetailsState
	updates chan DetailsState
}

// NewDetailsService creates a details service with its own cancellation
// scope. Close releases it.
func NewDetailsService(repo domain.MoviesRepository, watchlist domain.WatchlistRepository, logger *slog.Logger) *DetailsService {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DetailsService{
		repo:      repo,
		watchlist: watchlist,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		movieID:   -1,
		updates:   make(chan DetailsState, 1),
		state:     DetailsState{Loading: true},
	}
}

// Close cancels all in-flight work owned by this service. Results from
// cancelled fetches are discarded.
func (s *DetailsService) Close() {
	s.cancel()
}

// State returns the current snapshot.
func (s *DetailsService) State() DetailsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Updates returns the state change stream. Intermediate states coalesce:
// the channel always holds the latest snapshot.
func (s *DetailsService) Updates() <-chan DetailsState {
	return s.updates
}

// LoadMovie starts loading the movie with the given id. A negative id
// means "no selection yet" and shows a non-retryable prompt instead. The
// detail and video fetches are issued concurrently.
func (s *DetailsService) LoadMovie(movieID int) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.movieID = movieID
	s.videos = nil

	if movieID < 0 {
		s.state = DetailsState{
			Message: MessageState{
				Show:         true,
				Text:         msgSelectMovie,
				CanRetry:     false,
				Illustration: IllustrationSelect,
			},
		}
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	s.state = DetailsState{Loading: true}
	s.notifyLocked()
	s.mu.Unlock()

	go s.fetchDetails(gen, movieID)
	go s.fetchVideos(gen, movieID, false)
	go s.checkMembership(gen, movieID)
}

// SetMovie shows a movie the caller already has in hand (navigation from
// the watchlist), skipping the detail fetch. When the movie has no
// attached videos a video fetch is issued and its result written back to
// the watchlist store as a best-effort cache warm.
func (s *DetailsService) SetMovie(movie domain.Movie) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.movieID = movie.ID
	s.videos = movie.Videos

	m := movie
	s.state = DetailsState{Movie: &m}
	s.notifyLocked()
	s.mu.Unlock()

	if len(movie.Videos) == 0 {
		go s.fetchVideos(gen, movie.ID, true)
	}
	go s.checkMembership(gen, movie.ID)
}

// Retry re-runs the load for the current movie id.
func (s *DetailsService) Retry() {
	s.mu.Lock()
	movieID := s.movieID
	s.mu.Unlock()
	s.LoadMovie(movieID)
}

// AddToWatchlist optimistically marks the current movie as saved, then
// persists it. A storage failure is fatal to the action and only logged.
func (s *DetailsService) AddToWatchlist() {
	s.mu.Lock()
	if s.state.Movie == nil {
		s.mu.Unlock()
		return
	}
	movie := *s.state.Movie
	s.state.InWatchlist = true
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		if _, err := s.watchlist.Add(s.ctx, movie); err != nil {
			s.logger.Error("failed to add movie to watchlist", "movie_id", movie.ID, "error", err)
		}
	}()
}

// RemoveFromWatchlist deletes the current movie's row, then clears the
// membership flag.
func (s *DetailsService) RemoveFromWatchlist() {
	s.mu.Lock()
	if s.state.Movie == nil {
		s.mu.Unlock()
		return
	}
	gen := s.gen
	movieID := s.state.Movie.ID
	s.mu.Unlock()

	go func() {
		if err := s.watchlist.Delete(s.ctx, movieID); err != nil {
			s.logger.Error("failed to remove movie from watchlist", "movie_id", movieID, "error", err)
			return
		}
		s.mu.Lock()
		if gen == s.gen {
			s.state.InWatchlist = false
			s.notifyLocked()
		}
		s.mu.Unlock()
	}()
}

// CheckMembership refreshes the membership flag for the current movie.
func (s *DetailsService) CheckMembership() {
	s.mu.Lock()
	gen := s.gen
	movieID := s.movieID
	s.mu.Unlock()
	go s.checkMembership(gen, movieID)
}

func (s *DetailsService) fetchDetails(gen, movieID int) {
	movie, err := s.repo.GetMovieDetails(s.ctx, movieID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return // Superseded by a newer load
	}

	s.state.Loading = false
	if err != nil {
		s.logger.Error("failed to get movie details", "movie_id", movieID, "error", err)
		s.showMessageLocked(msgDetailsFailed, true)
		return
	}
	if movie == nil {
		s.showMessageLocked(msgDetailsMissing, true)
		return
	}

	s.state.Message = MessageState{}
	s.state.Movie = mergeMovie(movie, s.videos)
	s.notifyLocked()
}

// fetchVideos resolves the trailer list and merges it into whatever
// movie is currently displayed. persist requests a best-effort
// write-back of the merged trailers into the watchlist store.
func (s *DetailsService) fetchVideos(gen, movieID int, persist bool) {
	videos, err := s.repo.GetMovieVideos(s.ctx, movieID)
	if err != nil {
		// Trailers are optional; the empty state stands.
		s.logger.Error("failed to get movie videos", "movie_id", movieID, "error", err)
		return
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.videos = videos
	if s.state.Movie != nil {
		s.state.Movie = mergeMovie(s.state.Movie, videos)
		s.notifyLocked()
	}
	s.mu.Unlock()

	if persist && len(videos) > 0 {
		if err := s.watchlist.UpdateTrailers(s.ctx, movieID, videos); err != nil {
			// Cache warm only; the user never sees this failure.
			s.logger.Warn("failed to update stored trailers", "movie_id", movieID, "error", err)
		}
	}
}

func (s *DetailsService) checkMembership(gen, movieID int) {
	if movieID < 0 {
		return
	}
	movie, err := s.watchlist.GetMovie(s.ctx, movieID)
	if err != nil {
		s.logger.Error("failed to check watchlist membership", "movie_id", movieID, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.state.InWatchlist = movie != nil
	s.notifyLocked()
}

func (s *DetailsService) showMessageLocked(text string, canRetry bool) {
	s.state.Message = MessageState{
		Show:         true,
		Text:         text,
		CanRetry:     canRetry,
		Illustration: IllustrationError,
	}
	s.notifyLocked()
}

// notifyLocked publishes the current state, replacing any queued
// snapshot so slow consumers only see the latest.
func (s *DetailsService) notifyLocked() {
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

// mergeMovie combines the latest known core fields with the latest known
// videos, regardless of which fetch resolved last. A plain assignment
// from either completion path could let the earlier result win; routing
// both paths through here keeps the merge race-free.
func mergeMovie(core *domain.Movie, videos []domain.Video) *domain.Movie {
	if core == nil {
		return nil
	}
	merged := *core
	if len(videos) > 0 {
		merged.Videos = videos
	}
	return &merged
}
