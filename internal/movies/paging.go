package movies

import (
	"context"

	"github.com/appydinos/moviebrowser/internal/domain"
	"github.com/appydinos/moviebrowser/internal/tmdb"
)

// ListSource is the remote read surface the paging source needs.
type ListSource interface {
	NowPlaying(ctx context.Context, page int) (*tmdb.MovieListResponse, error)
	SearchMovies(ctx context.Context, page int, query string) (*tmdb.MovieListResponse, error)
}

// PagingSource translates page keys into remote fetches for one query.
// An empty query means now-playing mode. A changed search term requires
// a new PagingSource: instances are never rebound, so a stale in-flight
// fetch can never be mistaken for the new query's results.
type PagingSource struct {
	source ListSource
	query  string
}

// NewPagingSource binds a paging source to a query. Pass "" for the
// now-playing list.
func NewPagingSource(source ListSource, query string) *PagingSource {
	return &PagingSource{source: source, query: query}
}

// Load fetches the page for the given key (nil = page 1) and maps it to
// domain movies. PrevKey is always nil: the sequence only grows forward.
// NextKey is nil once the server reports the last page. Errors pass
// through untouched; retry is the caller re-invoking the same key.
func (s *PagingSource) Load(ctx context.Context, key *int) (domain.Page[domain.Movie], error) {
	page := 1
	if key != nil {
		page = *key
	}

	var resp *tmdb.MovieListResponse
	var err error
	if s.query == "" {
		resp, err = s.source.NowPlaying(ctx, page)
	} else {
		resp, err = s.source.SearchMovies(ctx, page, s.query)
	}
	if err != nil {
		return domain.Page[domain.Movie]{}, err
	}

	var nextKey *int
	if resp.Page != resp.TotalPages {
		next := resp.Page + 1
		nextKey = &next
	}
	return domain.Page[domain.Movie]{
		Items:   tmdb.MapListMovies(resp.Results),
		NextKey: nextKey,
	}, nil
}
