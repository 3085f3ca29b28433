package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", "en-US", nil)
	client.BaseURL = server.URL
	client.HTTPClient = server.Client()
	return client
}

func TestNowPlaying(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/now_playing", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 2,
			"total_pages": 5,
			"total_results": 100,
			"results": [
				{"id": 2, "title": "Free Guy", "poster_path": "/freeguy.img", "vote_average": 7.7, "vote_count": 1346}
			]
		}`))
	})

	resp, err := client.NowPlaying(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 5, resp.TotalPages)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Free Guy", resp.Results[0].Title)
	assert.Equal(t, 7.7, resp.Results[0].VoteAverage)
}

func TestSearchMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "free guy", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page": 1, "total_pages": 1, "results": []}`))
	})

	resp, err := client.SearchMovies(context.Background(), 1, "free guy")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Empty(t, resp.Results)
}

func TestMovieDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/2", r.URL.Path)
		w.Write([]byte(`{
			"id": 2,
			"title": "Free Guy",
			"runtime": 115,
			"status": "Released",
			"tagline": "Life's too short to be a background character.",
			"genres": [{"id": 35, "name": "Comedy"}, {"id": 12, "name": "Adventure"}]
		}`))
	})

	resp, err := client.MovieDetails(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 115, resp.Runtime)
	require.Len(t, resp.Genres, 2)
	assert.Equal(t, "Comedy", resp.Genres[0].Name)
}

func TestMovieVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/2/videos", r.URL.Path)
		w.Write([]byte(`{"id": 2, "results": [{"id": "v1", "key": "abc123", "name": "Official Trailer", "site": "YouTube", "type": "Trailer"}]}`))
	})

	resp, err := client.MovieVideos(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "abc123", resp.Results[0].Key)
}

func TestStatusErrorCarriesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message": "The resource you requested could not be found."}`))
	})

	_, err := client.MovieDetails(context.Background(), 999)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, `{"status_message": "The resource you requested could not be found."}`, err.Error())
}

func TestStatusErrorEmptyBody(t *testing.T) {
	err := &StatusError{Code: 404}
	assert.Equal(t, "tmdb status 404", err.Error())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.NowPlaying(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestServerErrorsAreRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"page": 1, "total_pages": 1, "results": []}`))
	})

	resp, err := client.NowPlaying(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, resp.Page)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(&StatusError{Code: 404}))
	assert.False(t, isTransient(&StatusError{Code: 401}))
	assert.True(t, isTransient(&StatusError{Code: 429}))
	assert.True(t, isTransient(&StatusError{Code: 500}))
	assert.True(t, isTransient(&StatusError{Code: 503}))
	assert.True(t, isTransient(assert.AnError))
}
