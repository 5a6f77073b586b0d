package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/versolabs/verso/internal/model"
)

// CatalogClient queries the recommendation catalog service.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewCatalogClient creates a catalog client for the configured endpoint.
func NewCatalogClient(cfg model.UpstreamConfig, httpCfg model.HTTPConfig) *CatalogClient {
	return &CatalogClient{
		baseURL:    cfg.CatalogBaseURL,
		httpClient: newHTTPClient(httpCfg),
		userAgent:  httpCfg.UserAgent,
	}
}

// Query returns catalog items for the given topics, in catalog order.
func (c *CatalogClient) Query(ctx context.Context, topics []string) ([]model.CatalogItem, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("catalog: no endpoint configured: %w", model.ErrUpstreamUnavailable)
	}

	endpoint := fmt.Sprintf("%s/catalog?topics=%s", c.baseURL, url.QueryEscape(strings.Join(topics, ",")))

	var payload struct {
		Items []model.CatalogItem `json:"items"`
	}
	if err := getJSON(ctx, c.httpClient, c.userAgent, endpoint, &payload); err != nil {
		return nil, err
	}

	return payload.Items, nil
}
