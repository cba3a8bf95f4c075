package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to TMDb's discover API. It backs the top-grossing title
// corpus; per-movie metadata comes from the other provider.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: "https://api.themoviedb.org/3",
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type discoverResp struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Results    []discoverItem `json:"results"`
}

type discoverItem struct {
	ID    int32  `json:"id"`
	Title string `json:"title"`
	Adult bool   `json:"adult"`
}

// TopGrossingByYear returns up to limit distinct titles for the year,
// ordered by worldwide revenue. Pages are fetched until the limit is
// met, capped at three; TMDb never orders beyond that usefully.
func (c *Client) TopGrossingByYear(ctx context.Context, year, limit int) ([]string, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing TMDb API key")
	}
	if limit <= 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var titles []string
	for page := 1; page <= 3 && len(titles) < limit; page++ {
		u, _ := url.Parse(c.BaseURL + "/discover/movie")
		q := u.Query()
		q.Set("api_key", c.APIKey)
		q.Set("language", "en-US")
		q.Set("primary_release_year", strconv.Itoa(year))
		q.Set("sort_by", "revenue.desc")
		q.Set("include_adult", "false")
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, err
		}
		var dr discoverResp
		err = func() error {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("tmdb status %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&dr)
		}()
		if err != nil {
			return nil, err
		}
		if len(dr.Results) == 0 {
			break
		}
		for _, it := range dr.Results {
			title := strings.TrimSpace(it.Title)
			if title == "" || it.Adult {
				continue
			}
			key := strings.ToLower(title)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			titles = append(titles, title)
			if len(titles) >= limit {
				break
			}
		}
		if dr.Page >= dr.TotalPages {
			break
		}
	}
	return titles, nil
}
