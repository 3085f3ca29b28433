package tmdb

import (
	"fmt"

	"github.com/appydinos/moviebrowser/internal/domain"
)

const (
	posterBaseURL = "https://image.tmdb.org/t/p/w500"

	videoWatchURL = "https://www.youtube.com/watch?v=%s"
	videoThumbURL = "https://img.youtube.com/vi/%s/0.jpg"
)

// MapMovie converts a detail payload to a domain movie.
func MapMovie(r MovieResponse) domain.Movie {
	genres := make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, g.Name)
	}
	return domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Overview,
		PosterURL:   posterBaseURL + r.PosterPath,
		ReleaseDate: r.ReleaseDate,
		Rating:      r.VoteAverage,
		Votes:       r.VoteCount,
		Genre:       genres,
		RunTime:     domain.ToHoursAndMinutes(r.Runtime),
		Status:      r.Status,
		TagLine:     r.Tagline,
	}
}

// MapListMovies converts one page of list results to domain movies.
// List payloads have no runtime, genre or tagline fields.
func MapListMovies(results []MovieListResult) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, domain.Movie{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Overview,
			PosterURL:   posterBaseURL + r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			Rating:      r.VoteAverage,
			Votes:       r.VoteCount,
		})
	}
	return movies
}

// MapVideos converts a video payload to domain videos, synthesizing the
// watch and thumbnail URLs from the provider key.
func MapVideos(r VideoResponse) []domain.Video {
	videos := make([]domain.Video, 0, len(r.Results))
	for _, v := range r.Results {
		videos = append(videos, domain.Video{
			ID:        v.ID,
			Key:       v.Key,
			Name:      v.Name,
			Site:      v.Site,
			Type:      v.Type,
			URL:       fmt.Sprintf(videoWatchURL, v.Key),
			Thumbnail: fmt.Sprintf(videoThumbURL, v.Key),
		})
	}
	return videos
}
