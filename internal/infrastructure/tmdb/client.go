package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client issues read-only calls against a TMDB-compatible movie catalog.
// Every call is a single synchronous request; there is no caching and no
// retrying.
type Client struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	HTTPClient   *http.Client
}

func NewClient(baseURL, imageBaseURL, apiKey string) *Client {
	return &Client{
		BaseURL:      baseURL,
		ImageBaseURL: imageBaseURL,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchResult is one candidate from a title search.
type SearchResult struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
	Overview      string `json:"overview"`
	PosterPath    string `json:"poster_path"`
}

// Details is the full catalog record for one movie.
type Details struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
	Overview      string `json:"overview"`
	PosterPath    string `json:"poster_path"`
}

// SearchByTitle queries the catalog for movies matching title. It returns
// the candidates and the catalog's total result count.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]SearchResult, int, error) {
	u := c.BaseURL + "/search/movie?query=" + url.QueryEscape(title)

	var body struct {
		Results      []SearchResult `json:"results"`
		TotalResults int            `json:"total_results"`
	}
	if err := c.get(ctx, u, &body); err != nil {
		return nil, 0, fmt.Errorf("tmdb search %q: %w", title, err)
	}
	return body.Results, body.TotalResults, nil
}

// GetDetails fetches the full record for one catalog id.
func (c *Client) GetDetails(ctx context.Context, id int64) (*Details, error) {
	u := c.BaseURL + "/movie/" + strconv.FormatInt(id, 10)

	d := &Details{}
	if err := c.get(ctx, u, d); err != nil {
		return nil, fmt.Errorf("tmdb details %d: %w", id, err)
	}
	if d.OriginalTitle == "" && d.Title == "" {
		return nil, fmt.Errorf("tmdb details %d: response missing title", id)
	}
	return d, nil
}

// PosterURL builds the CDN URL for a poster path fragment.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.ImageBaseURL + posterPath
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
