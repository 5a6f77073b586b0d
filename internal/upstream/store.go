package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/versolabs/verso/internal/model"
)

// StoreClient is the HTTP client for the article-storage collaborator.
// It satisfies resolve.Store.
type StoreClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewStoreClient creates an article store client for the configured endpoint.
func NewStoreClient(cfg model.UpstreamConfig, httpCfg model.HTTPConfig) *StoreClient {
	return &StoreClient{
		baseURL:    cfg.StoreBaseURL,
		httpClient: newHTTPClient(httpCfg),
		userAgent:  httpCfg.UserAgent,
	}
}

// Resolve loads one article by identifier.
func (c *StoreClient) Resolve(ctx context.Context, id string) (*model.Article, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("article store: no endpoint configured: %w", model.ErrNotFound)
	}

	endpoint := fmt.Sprintf("%s/articles/%s", c.baseURL, url.PathEscape(id))

	var article model.Article
	if err := getJSON(ctx, c.httpClient, c.userAgent, endpoint, &article); err != nil {
		return nil, err
	}

	return &article, nil
}

// Recent lists the most recently published articles, newest first.
func (c *StoreClient) Recent(ctx context.Context, limit int) ([]model.Article, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("article store: no endpoint configured: %w", model.ErrUpstreamUnavailable)
	}

	endpoint := fmt.Sprintf("%s/articles/recent?limit=%d", c.baseURL, limit)

	var payload struct {
		Articles []model.Article `json:"articles"`
	}
	if err := getJSON(ctx, c.httpClient, c.userAgent, endpoint, &payload); err != nil {
		return nil, err
	}

	return payload.Articles, nil
}
