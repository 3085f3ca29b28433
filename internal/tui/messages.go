package tui

import (
	"github.com/appydinos/moviebrowser/internal/service"
)

// Message types for the TUI

// BrowseStateMsg carries a new browse screen snapshot
type BrowseStateMsg struct {
	State service.BrowseState
}

// DetailsStateMsg carries a new details screen snapshot
type DetailsStateMsg struct {
	State service.DetailsState
}

// WatchlistStateMsg carries a new watchlist screen snapshot
type WatchlistStateMsg struct {
	State service.WatchlistState
}
