package domain

import (
	"context"
)

// MoviesRepository exposes the simplified remote detail operations. The
// remote source never silently returns nil; nil-coalescing happens here:
// a non-success detail response becomes (nil, nil) and a non-success
// video response becomes an empty list, because neither is exceptional.
type MoviesRepository interface {
	// GetMovieDetails returns the mapped movie, or nil (no error) when
	// the server reports a non-success status for the id.
	GetMovieDetails(ctx context.Context, movieID int) (*Movie, error)

	// GetMovieVideos returns the movie's trailers, or an empty (never
	// nil) list when the server reports a non-success status.
	GetMovieVideos(ctx context.Context, movieID int) ([]Video, error)
}

// WatchlistRepository is the durable local watchlist keyed by movie id.
// Storage failures propagate to the caller; there is no recovery at this
// layer.
type WatchlistRepository interface {
	// Add upserts the movie (replace-on-conflict by movie id) and
	// returns the surrogate row id.
	Add(ctx context.Context, movie Movie) (int64, error)

	// GetMovie returns the stored movie, or nil when not present. This
	// is also the membership primitive.
	GetMovie(ctx context.Context, movieID int) (*Movie, error)

	// Delete removes the row for the movie id. Deleting an absent id is
	// a no-op, not an error.
	Delete(ctx context.Context, movieID int) error

	// List returns one window of the watchlist ordered newest-first.
	List(ctx context.Context, key *int, pageSize int) (Page[WatchlistItem], error)

	// UpdateTrailers overwrites only the stored video list for an
	// existing row; a no-op if the row does not exist.
	UpdateTrailers(ctx context.Context, movieID int, videos []Video) error
}
