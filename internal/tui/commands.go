package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/appydinos/moviebrowser/internal/service"
)

// Command factories bridging the service update streams into Bubble Tea.
// Each wait command blocks on a channel and is re-issued after its
// message is handled, keeping exactly one reader per stream.

// WaitForBrowseCmd waits for the next browse snapshot
func WaitForBrowseCmd(svc *service.BrowseService) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-svc.Updates()
		if !ok {
			return nil
		}
		return BrowseStateMsg{State: state}
	}
}

// WaitForDetailsCmd waits for the next details snapshot
func WaitForDetailsCmd(svc *service.DetailsService) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-svc.Updates()
		if !ok {
			return nil
		}
		return DetailsStateMsg{State: state}
	}
}

// WaitForWatchlistCmd waits for the next watchlist snapshot
func WaitForWatchlistCmd(svc *service.WatchlistService) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-svc.Updates()
		if !ok {
			return nil
		}
		return WatchlistStateMsg{State: state}
	}
}
