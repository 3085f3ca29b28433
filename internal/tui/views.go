package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/appydinos/moviebrowser/internal/domain"
	"github.com/appydinos/moviebrowser/internal/service"
	"github.com/appydinos/moviebrowser/internal/tui/styles"
)

// listWindow returns the [start, end) slice bounds that keep cursor visible
// inside a viewport of the given height.
func listWindow(cursor, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

// View renders the active screen
func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenBrowse:
		body = m.browseView()
	case ScreenDetails:
		body = m.detailsView()
	case ScreenWatchlist:
		body = m.watchlistView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m Model) headerView() string {
	tabs := []string{"[1] Now Playing", "[2] Watchlist"}
	active := 0
	if m.screen == ScreenWatchlist {
		active = 1
	}
	for i := range tabs {
		if i == active && m.screen != ScreenDetails {
			tabs[i] = styles.AccentStyle.Render(tabs[i])
		} else {
			tabs[i] = styles.DimStyle.Render(tabs[i])
		}
	}
	title := styles.TitleStyle.Render("Movie Browser")
	return styles.HeaderStyle.Width(m.width).Render(title + "  " + strings.Join(tabs, "  "))
}

func (m Model) footerView() string {
	if m.searching {
		return styles.FooterStyle.Width(m.width).Render("/ " + m.search.View())
	}

	var parts []string
	switch m.screen {
	case ScreenBrowse:
		parts = []string{"enter details", "/ search", "j/k move", "q quit"}
		if m.browseState.Err != "" && !m.browseState.Initial {
			return styles.FooterStyle.Width(m.width).Render(
				styles.ErrorStyle.Render(m.browseState.Err) + "  " + styles.DimStyle.Render("r retry"))
		}
	case ScreenDetails:
		mark := "w add to watchlist"
		if m.detailsState.InWatchlist {
			mark = "w remove from watchlist"
		}
		parts = []string{mark, "esc back", "q quit"}
	case ScreenWatchlist:
		parts = []string{"enter details", "x remove", "/ filter", "q quit"}
		if m.watchlistState.Err != "" {
			return styles.FooterStyle.Width(m.width).Render(
				styles.ErrorStyle.Render(m.watchlistState.Err) + "  " + styles.DimStyle.Render("r retry"))
		}
	}
	return styles.FooterStyle.Width(m.width).Render(styles.DimStyle.Render(strings.Join(parts, " · ")))
}

func (m Model) bodyHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 10
	}
	return h
}

func (m Model) browseView() string {
	st := m.browseState

	// A failure before anything was shown gets the whole screen.
	if st.Err != "" && st.Initial {
		return styles.MessageBox.Render(
			styles.ErrorStyle.Render(st.Err) + "\n\n" + styles.DimStyle.Render("press r to retry"))
	}

	if st.Loading && len(st.Movies) == 0 {
		return styles.MessageBox.Render(m.spin.View() + " Loading movies...")
	}

	if len(st.Movies) == 0 {
		if st.Query != "" {
			return styles.MessageBox.Render(styles.DimStyle.Render(
				fmt.Sprintf("No results for %q", st.Query)))
		}
		return styles.MessageBox.Render(styles.DimStyle.Render("Nothing playing right now"))
	}

	var b strings.Builder
	if st.Query != "" {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Results for %q", st.Query)))
		b.WriteString("\n")
	}

	start, end := listWindow(m.browseCursor, len(st.Movies), m.bodyHeight())
	for i := start; i < end; i++ {
		b.WriteString(m.movieRow(st.Movies[i], i == m.browseCursor))
		b.WriteString("\n")
	}

	if st.Loading {
		b.WriteString(styles.DimStyle.Render(m.spin.View() + " loading more..."))
	} else if st.EndReached {
		b.WriteString(styles.DimStyle.Render("end of list"))
	}
	return b.String()
}

func (m Model) movieRow(mv domain.Movie, selected bool) string {
	line := fmt.Sprintf("%s  %s", mv.FullTitle(), styles.DimStyle.Render(mv.RatingText()))
	if selected {
		return styles.SelectedStyle.Render("> " + line)
	}
	return "  " + line
}

func (m Model) detailsView() string {
	st := m.detailsState

	if st.Message.Show {
		return m.messageView(st.Message)
	}
	if st.Loading || st.Movie == nil {
		return styles.MessageBox.Render(m.spin.View() + " Loading details...")
	}

	mv := st.Movie
	var b strings.Builder

	title := styles.TitleStyle.Render(mv.FullTitle())
	if st.InWatchlist {
		title += " " + styles.AccentStyle.Render(styles.InWatchlistMarker)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(mv.InfoText()))
	b.WriteString("\n")
	b.WriteString(styles.AccentStyle.Render(mv.RatingText()))
	b.WriteString("\n\n")

	if mv.TagLine != "" {
		b.WriteString(styles.DimStyle.Italic(true).Render(mv.TagLine))
		b.WriteString("\n\n")
	}
	if mv.Description != "" {
		b.WriteString(wrap(mv.Description, m.width-4))
		b.WriteString("\n")
	}

	if len(mv.Videos) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("Trailers"))
		b.WriteString("\n")
		for _, v := range mv.Videos {
			b.WriteString(fmt.Sprintf("  %s %s\n", styles.TagStyle.Render(v.Type), v.Name))
			b.WriteString("    " + styles.DimStyle.Render(v.URL) + "\n")
		}
	}
	return b.String()
}

func (m Model) messageView(msg service.MessageState) string {
	icon := "!"
	if msg.Illustration == service.IllustrationSelect {
		icon = "?"
	}
	body := styles.ErrorStyle.Render(icon) + " " + msg.Text
	if msg.CanRetry {
		body += "\n\n" + styles.DimStyle.Render("press r to retry")
	}
	return styles.MessageBox.Render(body)
}

func (m Model) watchlistView() string {
	st := m.watchlistState

	if st.Err != "" && len(st.Items) == 0 {
		return styles.MessageBox.Render(
			styles.ErrorStyle.Render(st.Err) + "\n\n" + styles.DimStyle.Render("press r to retry"))
	}
	if st.Loading && len(st.Items) == 0 {
		return styles.MessageBox.Render(m.spin.View() + " Loading watchlist...")
	}
	if st.Empty {
		return styles.MessageBox.Render(styles.DimStyle.Render(
			"Your watchlist is empty.\nFind a movie and press w on its details to add it."))
	}

	var b strings.Builder
	if st.Filter != "" {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Filter: %q", st.Filter)))
		b.WriteString("\n")
	}
	if len(st.Filtered) == 0 {
		b.WriteString(styles.DimStyle.Render("No titles match the filter"))
		return b.String()
	}

	start, end := listWindow(m.watchlistCursor, len(st.Filtered), m.bodyHeight())
	for i := start; i < end; i++ {
		item := st.Filtered[i]
		line := fmt.Sprintf("%s  %s", item.Movie.FullTitle(),
			styles.DimStyle.Render("added "+item.AddedAt.Format("Jan 2, 2006")))
		if i == m.watchlistCursor {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// wrap performs a simple greedy word wrap.
func wrap(s string, width int) string {
	if width < 20 {
		width = 72
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+1+len(word) > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
