package domain

import "context"

// Page is one window of a paged sequence: the items plus the keys to
// fetch the neighbouring windows. A nil NextKey means the sequence is
// exhausted. PrevKey is always nil for forward-only sources.
type Page[T any] struct {
	Items   []T
	PrevKey *int
	NextKey *int
}

// PageLoader produces successive windows of a paged sequence. A nil key
// means "start from the beginning". Remote and local paged sources both
// implement this so consumers can treat them uniformly.
type PageLoader[T any] interface {
	Load(ctx context.Context, key *int) (Page[T], error)
}
