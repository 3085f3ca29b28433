package domain

import (
	"fmt"
	"strings"
	"time"
)

// Movie represents one title. Movies are immutable value records created
// by the mapping layer; Videos stays nil until a trailer fetch has
// completed, so nil and empty mean different things.
type Movie struct {
	ID          int     // Stable remote identifier
	Title       string  // Display title
	Description string  // Plot synopsis
	PosterURL   string  // Full poster image URL
	ReleaseDate string  // ISO date as reported by the server; may not parse
	Rating      float64 // Average rating, 0 when absent
	Votes       int     // Vote count
	Genre       []string
	RunTime     string // Human-readable runtime, e.g. "1h 55m"
	Status      string
	TagLine     string
	Videos      []Video // Attached trailers (nil = not fetched)
}

// FullTitle returns the title with the release year in parentheses.
// When the release date does not parse the year is omitted entirely,
// leaving "{title} ".
func (m Movie) FullTitle() string {
	year := ""
	if d, err := time.Parse("2006-01-02", m.ReleaseDate); err == nil {
		year = fmt.Sprintf("(%d)", d.Year())
	}
	return fmt.Sprintf("%s %s", m.Title, year)
}

// InfoText returns the single-line summary shown under the title:
// runtime, release date and the comma-joined genre list.
func (m Movie) InfoText() string {
	genreText := ""
	if len(m.Genre) > 0 {
		genreText = "| " + strings.Join(m.Genre, ", ")
	}
	return fmt.Sprintf("%s | %s %s", m.RunTime, m.ReleaseDate, genreText)
}

// RatingText returns the rating line, e.g. "7.7 (1346 votes)".
func (m Movie) RatingText() string {
	return fmt.Sprintf("%.1f (%d votes)", m.Rating, m.Votes)
}

// Equal reports structural equality across all fields, including genre
// and video order. List diffing relies on this.
func (m Movie) Equal(other Movie) bool {
	if m.ID != other.ID ||
		m.Title != other.Title ||
		m.Description != other.Description ||
		m.PosterURL != other.PosterURL ||
		m.ReleaseDate != other.ReleaseDate ||
		m.Rating != other.Rating ||
		m.Votes != other.Votes ||
		m.RunTime != other.RunTime ||
		m.Status != other.Status ||
		m.TagLine != other.TagLine {
		return false
	}
	if len(m.Genre) != len(other.Genre) {
		return false
	}
	for i := range m.Genre {
		if m.Genre[i] != other.Genre[i] {
			return false
		}
	}
	if len(m.Videos) != len(other.Videos) {
		return false
	}
	for i := range m.Videos {
		if m.Videos[i] != other.Videos[i] {
			return false
		}
	}
	return true
}

// Video is a trailer attached to a movie. URL and Thumbnail are
// synthesized from the provider key at mapping time.
type Video struct {
	ID        string
	Key       string // Provider-specific video key
	Name      string
	Site      string // e.g. "YouTube"
	Type      string // e.g. "Trailer", "Teaser"
	URL       string
	Thumbnail string
}

// ToHoursAndMinutes formats a runtime in minutes as "Xh Ym", dropping
// the hour segment when it would be zero: 159 -> "2h 39m", 59 -> "59m".
func ToHoursAndMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
