package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ClientConfig holds HTTP client configuration.
type ClientConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// Client implements the HTTPClient port over net/http. One attempt per
// call: transport failures are reported, never retried.
type Client struct {
	client    *http.Client
	userAgent string
}

// NewClient creates the download transport.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "chemtel-doc-harvester/1.0"
	}
	return &Client{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Fetch issues a single GET and returns the body for streaming. Any non-2xx
// status is a failure; the body is closed before returning the error so the
// caller never sees a partial artifact.
func (c *Client) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
