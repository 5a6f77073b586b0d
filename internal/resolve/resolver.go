package resolve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/versolabs/verso/internal/model"
)

// Store is the article-storage collaborator. Implementations return
// model.ErrNotFound (possibly wrapped) for unknown identifiers.
type Store interface {
	Resolve(ctx context.Context, id string) (*model.Article, error)
	// Recent lists the most recently published articles, newest first.
	// Backs the trending query.
	Recent(ctx context.Context, limit int) ([]model.Article, error)
}

// Resolver loads an article by identifier (via the store) or by URL (via a
// direct fetch). Articles arriving without topics or sentiment get both
// derived heuristically so downstream stages always have input.
type Resolver struct {
	store      Store
	httpClient *http.Client
	robots     *RobotsChecker
	userAgent  string
	maxBytes   int64
}

// NewResolver creates a resolver. The store may be nil when only URL
// resolution is needed (e.g. the one-shot CLI).
func NewResolver(store Store, cfg model.HTTPConfig) *Resolver {
	return &Resolver{
		store: store,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// Resolve loads the article for the request. Exactly one of id and rawURL
// is set; the request validator enforces that before this point.
func (r *Resolver) Resolve(ctx context.Context, id, rawURL string) (*model.Article, error) {
	var (
		article *model.Article
		err     error
	)

	if id != "" {
		article, err = r.resolveID(ctx, id)
	} else {
		article, err = r.resolveURL(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	if len(article.Topics) == 0 {
		article.Topics = DeriveTopics(article.Title, article.Body, 5)
	}
	if article.Sentiment == "" {
		article.Sentiment = DeriveSentiment(article.Body)
	}

	return article, nil
}

func (r *Resolver) resolveID(ctx context.Context, id string) (*model.Article, error) {
	if r.store == nil {
		return nil, fmt.Errorf("resolve %q: no article store configured: %w", id, model.ErrNotFound)
	}

	article, err := r.store.Resolve(ctx, id)
	if err != nil {
		if model.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve %q: %w", id, model.ErrNotFound)
	}
	return article, nil
}

// resolveURL fetches the article page directly. Robots disallow and fetch
// failures both surface as not-found: the article is unreachable either way.
func (r *Resolver) resolveURL(ctx context.Context, rawURL string) (*model.Article, error) {
	allowed, _, err := r.robots.CanFetch(ctx, rawURL)
	if err == nil && !allowed {
		return nil, fmt.Errorf("fetch %s: disallowed by robots.txt: %w", rawURL, model.ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", model.ErrNotFound)
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %v: %w", rawURL, err, model.ErrNotFound)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d: %w", rawURL, resp.StatusCode, model.ErrNotFound)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %v: %w", err, model.ErrNotFound)
	}

	finalURL := resp.Request.URL.String()
	title, text := ParseHTML(string(body))
	if title == "" {
		title = subjectFromURL(finalURL)
	}

	publishedAt := time.Now().UTC()
	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			publishedAt = t
		}
	}

	return &model.Article{
		ID:          ArticleIDFromURL(finalURL),
		Title:       title,
		Body:        text,
		SourceURL:   finalURL,
		PublishedAt: publishedAt,
	}, nil
}

// ArticleIDFromURL derives a stable identifier for URL-resolved articles.
func ArticleIDFromURL(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "url-" + hex.EncodeToString(sum[:8])
}

// subjectFromURL extracts a human-readable title from the URL path.
func subjectFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	segments := strings.Split(trimmed, "/")
	last := segments[len(segments)-1]

	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")

	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	return last
}
