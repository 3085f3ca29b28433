// Package movies maps TMDB payloads into the domain model and exposes
// the remote catalog as paged sequences and point detail operations.
package movies

import (
	"context"
	"errors"
	"log/slog"

	"github.com/appydinos/moviebrowser/internal/domain"
	"github.com/appydinos/moviebrowser/internal/paging"
	"github.com/appydinos/moviebrowser/internal/store"
	"github.com/appydinos/moviebrowser/internal/tmdb"
)

// API is the full remote surface the repository consumes.
type API interface {
	ListSource
	MovieDetails(ctx context.Context, movieID int) (*tmdb.MovieResponse, error)
	MovieVideos(ctx context.Context, movieID int) (*tmdb.VideoResponse, error)
}

// Repository implements domain.MoviesRepository over the TMDB client,
// with a best-effort response cache so previously viewed details survive
// connectivity loss. A nil cache disables caching entirely.
type Repository struct {
	api    API
	cache  *store.ResponseCache
	logger *slog.Logger
}

// NewRepository creates a movies repository.
func NewRepository(api API, cache *store.ResponseCache, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{api: api, cache: cache, logger: logger}
}

// NowPlaying returns a fresh pager over the now-playing list. Each call
// builds a new sequence owned by the caller for its own lifecycle.
func (r *Repository) NowPlaying() *paging.Pager[domain.Movie] {
	return r.Movies("")
}

// Search returns a fresh pager over movies matching the query. An empty
// query falls back to the now-playing list.
func (r *Repository) Search(query string) *paging.Pager[domain.Movie] {
	return r.Movies(query)
}

// Movies builds a pager bound to the given query.
func (r *Repository) Movies(query string) *paging.Pager[domain.Movie] {
	return paging.NewPager[domain.Movie](NewPagingSource(r.api, query))
}

// GetMovieDetails returns the mapped movie for the id. A non-success
// response returns (nil, nil): not found is not exceptional here, the
// orchestration layer decides what to show. Transport failures fall back
// to the cached copy when one exists, otherwise propagate.
func (r *Repository) GetMovieDetails(ctx context.Context, movieID int) (*domain.Movie, error) {
	resp, err := r.api.MovieDetails(ctx, movieID)
	if err != nil {
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) {
			r.logger.Warn("movie details unavailable", "movie_id", movieID, "status", statusErr.Code)
			return nil, nil
		}
		if r.cache != nil {
			if movie, ok := r.cache.GetMovie(movieID); ok {
				r.logger.Info("serving cached movie details", "movie_id", movieID)
				return movie, nil
			}
		}
		return nil, err
	}

	movie := tmdb.MapMovie(*resp)
	if r.cache != nil {
		if err := r.cache.PutMovie(movie); err != nil {
			r.logger.Warn("failed to cache movie details", "movie_id", movieID, "error", err)
		}
	}
	return &movie, nil
}

// GetMovieVideos returns the movie's trailers. A non-success response
// returns an empty, non-nil list: no trailers is a valid and common
// state. Transport failures fall back to the cache, then propagate.
func (r *Repository) GetMovieVideos(ctx context.Context, movieID int) ([]domain.Video, error) {
	resp, err := r.api.MovieVideos(ctx, movieID)
	if err != nil {
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) {
			r.logger.Warn("movie videos unavailable", "movie_id", movieID, "status", statusErr.Code)
			return []domain.Video{}, nil
		}
		if r.cache != nil {
			if videos, ok := r.cache.GetVideos(movieID); ok {
				return videos, nil
			}
		}
		return nil, err
	}

	videos := tmdb.MapVideos(*resp)
	if r.cache != nil {
		if err := r.cache.PutVideos(movieID, videos); err != nil {
			r.logger.Warn("failed to cache movie videos", "movie_id", movieID, "error", err)
		}
	}
	return videos, nil
}
