package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar Academic Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultFields are the paper fields requested for verification.
	DefaultFields = "title,authors,year,venue,externalIds,url,openAccessPdf"

	// DefaultSearchLimit bounds relevance search results.
	DefaultSearchLimit = 10

	// RateLimit is 1 request per second for unauthenticated clients; an
	// API key raises the server-side limit but the client stays polite.
	RateLimit = 1.0
)

// Client is a rate-limited HTTP client for the Semantic Scholar API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new Semantic Scholar API client. The S2_API_KEY
// environment variable is honored unless overridden by WithAPIKey.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchPapers searches for papers by relevance.
func (c *Client) SearchPapers(ctx context.Context, query string) ([]Paper, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", fmt.Sprint(DefaultSearchLimit))
	params.Set("fields", DefaultFields)

	var resp SearchResponse
	if err := c.get(ctx, "/paper/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PaperByID fetches one paper by identifier. The id uses the API's prefix
// format, e.g. "DOI:10.1038/nature12373" or "ARXIV:1706.03762".
func (c *Client) PaperByID(ctx context.Context, id string) (*Paper, error) {
	params := url.Values{}
	params.Set("fields", DefaultFields)

	var paper Paper
	if err := c.get(ctx, "/paper/"+url.PathEscape(id), params, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// get performs a rate-limited GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode == 404:
		return ErrNotFound
	case resp.StatusCode == 429:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}
