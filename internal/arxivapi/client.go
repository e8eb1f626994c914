// Package arxivapi provides a minimal client for the arXiv Atom API.
// It serves as a last-resort provider for very recent preprints that the
// aggregators have not indexed yet.
package arxivapi

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/resolve"
)

const (
	// BaseURL is the arXiv API query endpoint.
	BaseURL = "https://export.arxiv.org/api/query"

	// RateLimit honors arXiv's request that clients stay under one
	// request every three seconds.
	RateLimit = 1.0 / 3.0

	// ProviderName identifies this source in reports.
	ProviderName = "arxiv"
)

// ErrNetworkError indicates a network connectivity issue.
var ErrNetworkError = errors.New("network error communicating with arXiv")

// ErrInvalidResponse indicates an unexpected API response.
var ErrInvalidResponse = errors.New("invalid response from arXiv")

// feed is the Atom response envelope.
type feed struct {
	XMLName xml.Name `xml:"feed"`
	Entries []entry  `xml:"entry"`
}

type entry struct {
	ID        string   `xml:"id"` // https://arxiv.org/abs/<id><version>
	Title     string   `xml:"title"`
	Published string   `xml:"published"` // RFC 3339
	Authors   []author `xml:"author"`
}

type author struct {
	Name string `xml:"name"`
}

// Client is a rate-limited HTTP client for the arXiv API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

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

// NewClient creates a new arXiv API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PaperByID fetches metadata for one arXiv identifier. Returns nil when
// the identifier is unknown.
func (c *Client) PaperByID(ctx context.Context, arxivID string) (*reference.Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("id_list", normalize.ArXivID(arxivID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrInvalidResponse, resp.StatusCode)
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(f.Entries) == 0 {
		return nil, nil
	}

	cand := mapEntry(f.Entries[0])
	// The API answers unknown IDs with a placeholder entry that has no
	// authors and an error title; an empty mapped title filters it.
	if cand.Title == "" || cand.ArXivID == "" {
		return nil, nil
	}
	return &cand, nil
}

func mapEntry(e entry) reference.Candidate {
	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	var year int
	if len(e.Published) >= 4 {
		if y, err := strconv.Atoi(e.Published[:4]); err == nil {
			year = y
		}
	}

	id := normalize.ArXivID(e.ID)
	cand := reference.Candidate{
		Title:    normalize.CollapseSpace(e.Title),
		Authors:  authors,
		Year:     year,
		Venue:    "arXiv",
		ArXivID:  id,
		Provider: ProviderName,
	}
	if id != "" {
		cand.URL = "https://arxiv.org/abs/" + id
	}
	return cand
}

// Provider adapts the arXiv client to the resolver's query interface.
// Only arXiv-ID queries are answered; DOI and title queries fall through
// to other providers.
type Provider struct {
	client *Client
}

// NewProvider wraps a client as a resolver provider.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Name implements resolve.Provider.
func (p *Provider) Name() string { return ProviderName }

// Query implements resolve.Provider.
func (p *Provider) Query(ctx context.Context, req resolve.Request) ([]reference.Candidate, error) {
	if req.ArXivID == "" {
		return nil, nil
	}
	cand, err := p.client.PaperByID(ctx, req.ArXivID)
	if err != nil || cand == nil {
		return nil, err
	}
	return []reference.Candidate{*cand}, nil
}
