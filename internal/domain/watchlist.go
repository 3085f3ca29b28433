package domain

import "time"

// WatchlistItem is one saved movie. The movie's fields are denormalized
// into the row (no foreign key) so an entry stays readable even if the
// remote record changes or disappears.
type WatchlistItem struct {
	ID      int64 // Surrogate row id assigned by the store
	Movie   Movie
	AddedAt time.Time // Wall-clock time the movie was saved
}
