package domain

import "errors"

// ErrMissingAPIKey indicates no TMDB API key has been configured.
var ErrMissingAPIKey = errors.New("TMDB API key is not configured")
