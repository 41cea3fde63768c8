package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// Client wraps http.Client for vendor REST calls. There is no retry,
// caching, or rate limiting at this layer; a failed call is terminal for
// the request it belongs to.
type Client struct {
	name string
	http *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a vendor HTTP client. name labels errors ("benzinga",
// "fmp").
func NewClient(name string, opts ...ClientOption) *Client {
	c := &Client{
		name: name,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches one URL and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrapf(err, "%s: create request", c.name)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "%s: request failed", c.name)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(err, "%s: read response body", c.name)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Provider: c.name, StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "%s: unmarshal response", c.name)
	}
	return nil
}

// GetAllRows fetches every URL concurrently, decoding each body as a JSON
// array of objects, and concatenates the rows in input URL order.
func (c *Client) GetAllRows(ctx context.Context, urls []string) ([]map[string]any, error) {
	perURL := make([][]map[string]any, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			var rows []map[string]any
			if err := c.GetJSON(gctx, u, &rows); err != nil {
				return err
			}
			perURL[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []map[string]any
	for _, rows := range perURL {
		out = append(out, rows...)
	}
	return out, nil
}
