// Package upstream holds the HTTP reference clients for the external
// collaborators: evidence search, recommendation catalog, related-article
// index, and article store. Each client satisfies the consumer-side
// interface declared next to the stage that uses it.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/versolabs/verso/internal/model"
)

const maxResponseBytes = 4_000_000

func newHTTPClient(cfg model.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}

// getJSON performs a GET and decodes the JSON body into out. Failures wrap
// model.ErrUpstreamUnavailable so stages can absorb them uniformly.
func getJSON(ctx context.Context, client *http.Client, userAgent, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", url, model.ErrUpstreamTimeout)
		}
		return fmt.Errorf("%s: %v: %w", url, err, model.ErrUpstreamUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", url, model.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d: %w", url, resp.StatusCode, model.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %v: %w", err, model.ErrUpstreamUnavailable)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %v: %w", url, err, model.ErrUpstreamUnavailable)
	}

	return nil
}
