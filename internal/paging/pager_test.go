package paging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appydinos/moviebrowser/internal/domain"
)

// scriptedLoader serves pre-built pages keyed by the requested page
// number and records the keys it was asked for.
type scriptedLoader struct {
	pages map[int]domain.Page[string]
	errs  map[int]error
	keys  []*int
}

func (l *scriptedLoader) Load(_ context.Context, key *int) (domain.Page[string], error) {
	l.keys = append(l.keys, key)
	page := 1
	if key != nil {
		page = *key
	}
	if err := l.errs[page]; err != nil {
		return domain.Page[string]{}, err
	}
	return l.pages[page], nil
}

func intPtr(n int) *int { return &n }

func TestPagerAccumulatesPages(t *testing.T) {
	loader := &scriptedLoader{pages: map[int]domain.Page[string]{
		1: {Items: []string{"a", "b"}, NextKey: intPtr(2)},
		2: {Items: []string{"c"}, NextKey: intPtr(3)},
		3: {Items: []string{"d"}},
	}}
	pager := NewPager[string](loader)

	assert.False(t, pager.Started())
	assert.False(t, pager.Done())

	ctx := context.Background()
	_, err := pager.LoadNext(ctx)
	require.NoError(t, err)
	assert.True(t, pager.Started())
	assert.Equal(t, []string{"a", "b"}, pager.Items())

	_, err = pager.LoadNext(ctx)
	require.NoError(t, err)
	_, err = pager.LoadNext(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, pager.Items())
	assert.True(t, pager.Done())

	// First call gets a nil key, subsequent calls the server-issued key.
	require.Len(t, loader.keys, 3)
	assert.Nil(t, loader.keys[0])
	assert.Equal(t, 2, *loader.keys[1])
	assert.Equal(t, 3, *loader.keys[2])
}

func TestPagerRetriesSameKeyAfterError(t *testing.T) {
	loadErr := errors.New("network down")
	loader := &scriptedLoader{
		pages: map[int]domain.Page[string]{
			1: {Items: []string{"a"}, NextKey: intPtr(2)},
			2: {Items: []string{"b"}},
		},
		errs: map[int]error{2: loadErr},
	}
	pager := NewPager[string](loader)

	ctx := context.Background()
	_, err := pager.LoadNext(ctx)
	require.NoError(t, err)

	_, err = pager.LoadNext(ctx)
	require.ErrorIs(t, err, loadErr)
	assert.Equal(t, []string{"a"}, pager.Items())
	assert.False(t, pager.Done())

	// The cursor did not advance; a retry fetches page 2 again.
	delete(loader.errs, 2)
	_, err = pager.LoadNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, pager.Items())
	assert.Equal(t, 2, *loader.keys[1])
	assert.Equal(t, 2, *loader.keys[2])
}

func TestPagerDoneIsTerminal(t *testing.T) {
	loader := &scriptedLoader{pages: map[int]domain.Page[string]{
		1: {Items: []string{"a"}},
	}}
	pager := NewPager[string](loader)

	ctx := context.Background()
	_, err := pager.LoadNext(ctx)
	require.NoError(t, err)
	require.True(t, pager.Done())

	page, err := pager.LoadNext(ctx)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Len(t, loader.keys, 1)
}

func TestRefreshKey(t *testing.T) {
	pages := []domain.Page[string]{
		{Items: []string{"a", "b"}, NextKey: intPtr(2)},
		{Items: []string{"c", "d"}, PrevKey: intPtr(1), NextKey: intPtr(3)},
	}

	t.Run("no anchor starts over", func(t *testing.T) {
		assert.Nil(t, RefreshKey(State[string]{Pages: pages}))
	})

	t.Run("no pages starts over", func(t *testing.T) {
		assert.Nil(t, RefreshKey(State[string]{Anchor: intPtr(0)}))
	})

	t.Run("prefers page after prev key", func(t *testing.T) {
		key := RefreshKey(State[string]{Pages: pages, Anchor: intPtr(2)})
		require.NotNil(t, key)
		assert.Equal(t, 2, *key)
	})

	t.Run("falls back to page before next key", func(t *testing.T) {
		key := RefreshKey(State[string]{Pages: pages, Anchor: intPtr(0)})
		require.NotNil(t, key)
		assert.Equal(t, 1, *key)
	})

	t.Run("anchor past the end resolves to the last page", func(t *testing.T) {
		key := RefreshKey(State[string]{Pages: pages, Anchor: intPtr(99)})
		require.NotNil(t, key)
		assert.Equal(t, 2, *key)
	})
}
