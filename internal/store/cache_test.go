package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appydinos/moviebrowser/internal/domain"
)

func TestResponseCachePersistedRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewResponseCache(dir)
	require.NoError(t, err)

	movie := domain.Movie{ID: 2, Title: "Free Guy", Genre: []string{"Comedy"}}
	require.NoError(t, cache.PutMovie(movie))

	videos := []domain.Video{{ID: "v1", Key: "abc"}}
	require.NoError(t, cache.PutVideos(2, videos))
	require.NoError(t, cache.Close())

	// A fresh handle reads what the old one wrote.
	reopened, err := NewResponseCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.GetMovie(2)
	require.True(t, ok)
	assert.True(t, movie.Equal(*got))

	gotVideos, ok := reopened.GetVideos(2)
	require.True(t, ok)
	assert.Equal(t, videos, gotVideos)
}

func TestResponseCacheMiss(t *testing.T) {
	cache, err := NewResponseCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	movie, ok := cache.GetMovie(999)
	assert.False(t, ok)
	assert.Nil(t, movie)

	videos, ok := cache.GetVideos(999)
	assert.False(t, ok)
	assert.Nil(t, videos)
}

func TestResponseCacheMemoryOnly(t *testing.T) {
	cache, err := NewResponseCache("")
	require.NoError(t, err)
	defer cache.Close()

	movie := domain.Movie{ID: 2, Title: "Free Guy"}
	require.NoError(t, cache.PutMovie(movie))

	got, ok := cache.GetMovie(2)
	require.True(t, ok)
	assert.Equal(t, "Free Guy", got.Title)
}

func TestInvalidateAll(t *testing.T) {
	cache, err := NewResponseCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.PutMovie(domain.Movie{ID: 2, Title: "Free Guy"}))
	require.NoError(t, cache.PutVideos(2, []domain.Video{{Key: "abc"}}))

	cache.InvalidateAll()

	_, ok := cache.GetMovie(2)
	assert.False(t, ok)
	_, ok = cache.GetVideos(2)
	assert.False(t, ok)
}
