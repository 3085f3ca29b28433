package movies

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appydinos/moviebrowser/internal/tmdb"
)

// fakeListSource records calls and serves canned responses.
type fakeListSource struct {
	nowPlayingCalls []int
	searchCalls     []string
	resp            *tmdb.MovieListResponse
	err             error
}

func (f *fakeListSource) NowPlaying(_ context.Context, page int) (*tmdb.MovieListResponse, error) {
	f.nowPlayingCalls = append(f.nowPlayingCalls, page)
	return f.resp, f.err
}

func (f *fakeListSource) SearchMovies(_ context.Context, page int, query string) (*tmdb.MovieListResponse, error) {
	f.searchCalls = append(f.searchCalls, query)
	return f.resp, f.err
}

func TestPagingSourceRoutesByQuery(t *testing.T) {
	resp := &tmdb.MovieListResponse{Page: 1, TotalPages: 1}

	t.Run("empty query hits now playing", func(t *testing.T) {
		src := &fakeListSource{resp: resp}
		_, err := NewPagingSource(src, "").Load(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, src.nowPlayingCalls)
		assert.Empty(t, src.searchCalls)
	})

	t.Run("non-empty query hits search", func(t *testing.T) {
		src := &fakeListSource{resp: resp}
		_, err := NewPagingSource(src, "free guy").Load(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"free guy"}, src.searchCalls)
		assert.Empty(t, src.nowPlayingCalls)
	})
}

func TestPagingSourceKeys(t *testing.T) {
	t.Run("nil key means page one", func(t *testing.T) {
		src := &fakeListSource{resp: &tmdb.MovieListResponse{Page: 1, TotalPages: 3}}
		page, err := NewPagingSource(src, "").Load(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, src.nowPlayingCalls)
		require.NotNil(t, page.NextKey)
		assert.Equal(t, 2, *page.NextKey)
		assert.Nil(t, page.PrevKey)
	})

	t.Run("last page terminates the sequence", func(t *testing.T) {
		src := &fakeListSource{resp: &tmdb.MovieListResponse{Page: 3, TotalPages: 3}}
		key := 3
		page, err := NewPagingSource(src, "").Load(context.Background(), &key)
		require.NoError(t, err)
		assert.Nil(t, page.NextKey)
		assert.Nil(t, page.PrevKey)
	})

	t.Run("single page list terminates immediately", func(t *testing.T) {
		src := &fakeListSource{resp: &tmdb.MovieListResponse{Page: 1, TotalPages: 1}}
		page, err := NewPagingSource(src, "").Load(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, page.NextKey)
	})
}

func TestPagingSourceMapsResults(t *testing.T) {
	src := &fakeListSource{resp: &tmdb.MovieListResponse{
		Page:       1,
		TotalPages: 1,
		Results: []tmdb.MovieListResult{
			{ID: 2, Title: "Free Guy", PosterPath: "/freeguy.img", VoteAverage: 7.7, VoteCount: 1346},
		},
	}}

	page, err := NewPagingSource(src, "").Load(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Free Guy", page.Items[0].Title)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/freeguy.img", page.Items[0].PosterURL)
}

func TestPagingSourcePassesErrorsThrough(t *testing.T) {
	t.Run("transport error untouched", func(t *testing.T) {
		transportErr := errors.New("connection refused")
		src := &fakeListSource{err: transportErr}
		_, err := NewPagingSource(src, "").Load(context.Background(), nil)
		require.ErrorIs(t, err, transportErr)
	})

	t.Run("status error keeps server message", func(t *testing.T) {
		statusErr := &tmdb.StatusError{Code: 422, Body: "page must be less than or equal to 500"}
		src := &fakeListSource{err: statusErr}
		_, err := NewPagingSource(src, "x").Load(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, "page must be less than or equal to 500", err.Error())
	})
}
