package crossref

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
	// BaseURL is the CrossRef REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout bounds every registry call. A hung lookup must not
	// stall a validation batch.
	DefaultTimeout = 10 * time.Second

	// RateLimit is 50 requests per second per CrossRef etiquette.
	RateLimit = 50.0

	// DefaultSearchRows is the number of candidates requested from the
	// title search endpoint.
	DefaultSearchRows = 5
)

// Client is a rate-limited HTTP client for the CrossRef REST API.
// The limiter is shared state: callers validating concurrently must share
// one Client (or inject a shared limiter) because CrossRef's limit is
// global, not per-caller.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto sets the contact address sent in the User-Agent header,
// which places requests in CrossRef's polite pool.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
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

// WithLimiter injects a rate limiter, so the inter-request clock can be
// shared across clients or replaced with an unbounded one in tests.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates a new CrossRef API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if addr := os.Getenv("CROSSREF_MAILTO"); addr != "" {
		c.mailto = addr
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a rate-limited GET and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	ua := "lr/1.0"
	if c.mailto != "" {
		ua = fmt.Sprintf("lr/1.0 (mailto:%s)", c.mailto)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding body: %v", ErrInvalidResponse, err)
	}

	return nil
}

// WorkByDOI fetches the canonical work record for a normalized DOI.
// Returns ErrNotFound if the DOI is not registered.
func (c *Client) WorkByDOI(ctx context.Context, normalizedDOI string) (*Work, error) {
	u := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(normalizedDOI))

	var wr workResponse
	if err := c.get(ctx, u, &wr); err != nil {
		return nil, err
	}

	if wr.Message == nil {
		return nil, fmt.Errorf("%w: missing message", ErrInvalidResponse)
	}

	return wr.Message, nil
}

// SearchTitle searches works by title relevance and returns up to rows
// candidates, best-scored first.
func (c *Client) SearchTitle(ctx context.Context, title string, rows int) ([]Work, error) {
	if rows <= 0 {
		rows = DefaultSearchRows
	}

	q := url.Values{}
	q.Set("query.title", title)
	q.Set("rows", fmt.Sprintf("%d", rows))
	u := fmt.Sprintf("%s/works?%s", c.baseURL, q.Encode())

	var sr searchResponse
	if err := c.get(ctx, u, &sr); err != nil {
		return nil, err
	}

	if sr.Message == nil {
		return nil, fmt.Errorf("%w: missing message", ErrInvalidResponse)
	}

	return sr.Message.Items, nil
}
