package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/model"
)

// ErrNotFound covers every terminal provider outcome for one movie:
// unknown id, malformed payload, or exhausted retries. Callers cannot
// tell "doesn't exist" from "transient failure" and are expected to
// fall through to another candidate.
var ErrNotFound = errors.New("movie not found")

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	RetryDelay time.Duration
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    "https://www.omdbapi.com",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxRetries: 3,
		RetryDelay: 300 * time.Millisecond,
	}
}

type movieResponse struct {
	ImdbID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Poster   string `json:"Poster"`
	Plot     string `json:"Plot"`
	Genre    string `json:"Genre"`
	Rated    string `json:"Rated"`
	Runtime  string `json:"Runtime"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Awards   string `json:"Awards"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	Search []struct {
		Title string `json:"Title"`
	} `json:"Search"`
	Response string `json:"Response"`
}

// ResolveByID fetches one movie by IMDb id and normalizes the payload.
// Provider errors of every flavor come back as ErrNotFound.
func (c *Client) ResolveByID(ctx context.Context, imdbID string) (*model.MovieDetails, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing OMDb API key")
	}
	q := url.Values{}
	q.Set("apikey", c.APIKey)
	q.Set("i", imdbID)
	q.Set("type", "movie")

	body, err := c.get(ctx, c.BaseURL+"/?"+q.Encode())
	if err != nil {
		log.Warn().Str("imdb_id", imdbID).Err(err).Msg("omdb lookup failed")
		return nil, ErrNotFound
	}
	var mr movieResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, ErrNotFound
	}
	if !strings.EqualFold(mr.Response, "True") {
		return nil, ErrNotFound
	}
	return normalize(imdbID, mr), nil
}

// SearchTitles runs a title search and returns the raw result titles.
func (c *Client) SearchTitles(ctx context.Context, query string) ([]string, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing OMDb API key")
	}
	q := url.Values{}
	q.Set("apikey", c.APIKey)
	q.Set("s", query)
	q.Set("type", "movie")
	q.Set("page", "1")

	body, err := c.get(ctx, c.BaseURL+"/?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, err
	}
	if !strings.EqualFold(sr.Response, "True") {
		return nil, nil
	}
	titles := make([]string, 0, len(sr.Search))
	for _, item := range sr.Search {
		if t := strings.TrimSpace(item.Title); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

// get performs the request with a small bounded retry; OMDb rate limits
// aggressively on free keys.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	retries := c.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("omdb status %d", resp.StatusCode)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("omdb request failed after %d attempts: %w", retries, lastErr)
}

func normalize(imdbID string, mr movieResponse) *model.MovieDetails {
	id := mr.ImdbID
	if id == "" {
		id = imdbID
	}
	return &model.MovieDetails{
		ID:             id,
		Title:          na(mr.Title),
		Year:           na(mr.Year),
		PosterURL:      na(mr.Poster),
		Plot:           na(mr.Plot),
		Genre:          na(mr.Genre),
		ContentRating:  na(mr.Rated),
		RuntimeMinutes: parseRuntime(mr.Runtime),
		Director:       na(mr.Director),
		CastOrdered:    splitNames(mr.Actors),
		AwardsSummary:  na(mr.Awards),
	}
}

// na maps OMDb's "N/A" sentinel to an empty string.
func na(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "N/A") {
		return ""
	}
	return strings.TrimSpace(s)
}

func splitNames(s string) []string {
	s = na(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// parseRuntime extracts minutes out of strings like "142 min".
func parseRuntime(s string) int {
	fields := strings.Fields(na(s))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
