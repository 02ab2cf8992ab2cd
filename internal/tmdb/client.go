// Package tmdb talks to the movie metadata API (TMDB v3).
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"reelfind/internal/domain"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// ErrFetchFailed wraps every transport, status and decoding failure
var ErrFetchFailed = errors.New("failed to fetch movies")

type Config struct {
	BaseURL string
	Token   string
	// Client defaults to a plain http.Client. No timeout is applied.
	Client *http.Client
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(cfg.Token),
		http:    httpClient,
	}
}

// Endpoint returns the search URL for a non-empty term and the
// popularity-sorted discover URL otherwise.
func (c *Client) Endpoint(term string) string {
	if term == "" {
		return c.baseURL + "/discover/movie?sort_by=popularity.desc"
	}
	return c.baseURL + "/search/movie?query=" + escapeTerm(term)
}

// escapeTerm percent-encodes term for the query string, spaces as %20
func escapeTerm(term string) string {
	return strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
}

// FetchMovies runs one search (or discover request for an empty term).
// A payload with response == false is returned as-is, not as an error.
func (c *Client) FetchMovies(ctx context.Context, term string) (domain.MoviePage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(term), nil)
	if err != nil {
		return domain.MoviePage{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.MoviePage{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.MoviePage{}, fmt.Errorf("%w: HTTP %d: %s", ErrFetchFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page domain.MoviePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return domain.MoviePage{}, fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}
	if page.Results == nil {
		page.Results = []domain.Movie{}
	}
	return page, nil
}
