package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/versolabs/verso/internal/model"
)

// SearchClient queries the external evidence search service. Requests are
// rate limited per domain to keep the per-claim fan-out polite.
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *Limiter
	userAgent  string
}

// NewSearchClient creates a search client for the configured endpoint.
func NewSearchClient(cfg model.UpstreamConfig, httpCfg model.HTTPConfig) *SearchClient {
	return &SearchClient{
		baseURL:    cfg.SearchBaseURL,
		httpClient: newHTTPClient(httpCfg),
		limiter:    NewLimiter(cfg.RatePerSecond, cfg.RateBurst),
		userAgent:  httpCfg.UserAgent,
	}
}

// Search issues one evidence query and returns the raw hits.
func (c *SearchClient) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("search: no endpoint configured: %w", model.ErrUpstreamUnavailable)
	}

	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	if err := c.limiter.Wait(ctx, endpoint); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", model.ErrUpstreamTimeout)
	}

	var payload struct {
		Results []model.SearchHit `json:"results"`
	}
	if err := getJSON(ctx, c.httpClient, c.userAgent, endpoint, &payload); err != nil {
		return nil, err
	}

	return payload.Results, nil
}
