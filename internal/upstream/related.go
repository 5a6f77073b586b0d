package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/versolabs/verso/internal/model"
)

// RelatedClient queries the related-article index service.
type RelatedClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewRelatedClient creates a related-index client for the configured endpoint.
func NewRelatedClient(cfg model.UpstreamConfig, httpCfg model.HTTPConfig) *RelatedClient {
	return &RelatedClient{
		baseURL:    cfg.RelatedBaseURL,
		httpClient: newHTTPClient(httpCfg),
		userAgent:  httpCfg.UserAgent,
	}
}

// SearchRelated returns up to limit related-article links for the topics.
func (c *RelatedClient) SearchRelated(ctx context.Context, topics []string, limit int) ([]model.RelatedArticleLink, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("related: no endpoint configured: %w", model.ErrUpstreamUnavailable)
	}

	endpoint := fmt.Sprintf("%s/related?topics=%s&limit=%d",
		c.baseURL, url.QueryEscape(strings.Join(topics, ",")), limit)

	var payload struct {
		Articles []model.RelatedArticleLink `json:"articles"`
	}
	if err := getJSON(ctx, c.httpClient, c.userAgent, endpoint, &payload); err != nil {
		return nil, err
	}

	return payload.Articles, nil
}
