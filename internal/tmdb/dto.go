package tmdb

// Wire-format payloads for the TMDB v3 API.

// MovieListResponse is one page of /movie/now_playing or /search/movie.
type MovieListResponse struct {
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
	Results      []MovieListResult `json:"results"`
}

// MovieListResult is one list entry. List payloads carry fewer fields
// than the detail payload (no runtime, genres or tagline).
type MovieListResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// MovieResponse is the full /movie/{id} detail payload.
type MovieResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Runtime     int     `json:"runtime"`
	Status      string  `json:"status"`
	Tagline     string  `json:"tagline"`
	Genres      []Genre `json:"genres"`
}

// Genre is a nested genre object in the detail payload.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VideoResponse is the /movie/{id}/videos payload.
type VideoResponse struct {
	ID      int           `json:"id"`
	Results []VideoResult `json:"results"`
}

// VideoResult is one provider video record.
type VideoResult struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}
