package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 15 * time.Second
	userAgent      = "moviebrowser/1.0"

	retryAttempts = 3
	retryDelay    = 300 * time.Millisecond
)

// StatusError is a non-2xx TMDB response. Error() returns the raw
// response body so the server's own message reaches the caller
// unchanged.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("tmdb status %d", e.Code)
}

// Client is a typed TMDB API client. Every operation returns either a
// successful payload or an explicit failure: a transport error as-is, or
// a *StatusError for non-2xx responses. There is no nil-coalescing at
// this layer.
type Client struct {
	// BaseURL and HTTPClient are exported so tests can point the client
	// at an httptest server.
	BaseURL    string
	HTTPClient *http.Client

	apiKey   string
	language string
	logger   *slog.Logger
}

// NewClient creates a TMDB client with the default base URL and timeout.
func NewClient(apiKey, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		language:   language,
		logger:     logger,
	}
}

// NowPlaying fetches one page of currently-playing movies.
func (c *Client) NowPlaying(ctx context.Context, page int) (*MovieListResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var out MovieListResponse
	if err := c.get(ctx, "/movie/now_playing", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMovies fetches one page of movies matching the query text.
func (c *Client) SearchMovies(ctx context.Context, page int, query string) (*MovieListResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("query", query)

	var out MovieListResponse
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetails fetches the full record for one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*MovieResponse, error) {
	var out MovieResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieVideos fetches the trailer list for one movie.
func (c *Client) MovieVideos(ctx context.Context, movieID int) (*VideoResponse, error) {
	var out VideoResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs a GET against the API with bounded retry for transport
// errors, 429s and 5xx responses. Other non-2xx statuses return a
// *StatusError immediately. LastErrorOnly keeps the final error
// identical to what the last attempt produced.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	reqURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return err
	}

	var body []byte
	err = retry.Do(
		func() error {
			b, err := c.fetch(ctx, reqURL)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying tmdb request", "endpoint", endpoint, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(c.BaseURL + endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for key, values := range params {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// isTransient reports whether a failed attempt is worth retrying:
// transport errors, rate limiting and server errors are, client errors
// are not.
func isTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}
