package paging

import "github.com/appydinos/moviebrowser/internal/domain"

// State captures the loaded pages and the consumer's anchor position in
// the flattened item sequence. It exists so a refresh after invalidation
// can resume near where the consumer was instead of resetting to the
// first page.
type State[T any] struct {
	Pages  []domain.Page[T]
	Anchor *int // Index into the flattened items, nil when unknown
}

// RefreshKey returns the key to refetch around the anchor: the page
// after the closest page's PrevKey when present, otherwise the page
// before its NextKey. Returns nil when there is no anchor or no pages,
// meaning "start from the beginning".
func RefreshKey[T any](state State[T]) *int {
	page := closestPage(state)
	if page == nil {
		return nil
	}
	if page.PrevKey != nil {
		k := *page.PrevKey + 1
		return &k
	}
	if page.NextKey != nil {
		k := *page.NextKey - 1
		return &k
	}
	return nil
}

// closestPage locates the page containing the anchor position. An anchor
// past the end resolves to the last page.
func closestPage[T any](state State[T]) *domain.Page[T] {
	if state.Anchor == nil || len(state.Pages) == 0 {
		return nil
	}
	offset := *state.Anchor
	for i := range state.Pages {
		if offset < len(state.Pages[i].Items) {
			return &state.Pages[i]
		}
		offset -= len(state.Pages[i].Items)
	}
	return &state.Pages[len(state.Pages)-1]
}
