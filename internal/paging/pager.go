// Package paging turns repeated page fetches into a single forward-only
// growing sequence. It is agnostic to where pages come from: the remote
// movie list and the local watchlist scan both feed it through
// domain.PageLoader.
package paging

import (
	"context"
	"sync"

	"github.com/appydinos/moviebrowser/internal/domain"
)

// Pager consumes a PageLoader as a lazily growing sequence. Pages are
// requested one at a time; a failed load leaves the cursor where it was
// so a retry re-invokes the same key. A Pager is owned by exactly one
// consumer; a changed query means a new Pager, never a rebound one.
type Pager[T any] struct {
	loader domain.PageLoader[T]

	mu      sync.Mutex
	pages   []domain.Page[T]
	nextKey *int
	started bool
	done    bool
}

// NewPager creates a pager over the given loader, positioned before the
// first page.
func NewPager[T any](loader domain.PageLoader[T]) *Pager[T] {
	return &Pager[T]{loader: loader}
}

// LoadNext fetches the next page and appends it to the sequence. It
// returns the fetched page. Once the sequence is exhausted it returns an
// empty page and Done() reports true. On error the cursor does not
// advance, so calling LoadNext again retries the same key.
func (p *Pager[T]) LoadNext(ctx context.Context) (domain.Page[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return domain.Page[T]{}, nil
	}

	page, err := p.loader.Load(ctx, p.nextKey)
	if err != nil {
		return domain.Page[T]{}, err
	}

	p.started = true
	p.pages = append(p.pages, page)
	p.nextKey = page.NextKey
	if page.NextKey == nil {
		p.done = true
	}
	return page, nil
}

// Items returns a flattened snapshot of everything loaded so far.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, page := range p.pages {
		n += len(page.Items)
	}
	items := make([]T, 0, n)
	for _, page := range p.pages {
		items = append(items, page.Items...)
	}
	return items
}

// Pages returns a snapshot of the loaded pages.
func (p *Pager[T]) Pages() []domain.Page[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Page[T](nil), p.pages...)
}

// Started reports whether at least one page has loaded successfully.
func (p *Pager[T]) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Done reports whether the sequence is exhausted.
func (p *Pager[T]) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
