// Package expand drives the story expansion pipeline: resolve the article,
// read through the result cache, fan out to the three enrichment stages
// with per-stage deadlines, merge whatever completed, and cache the
// composed result. The orchestrator always answers once the article
// resolves; enrichment failures only degrade their own section.
package expand

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/versolabs/verso/internal/cache"
	"github.com/versolabs/verso/internal/credibility"
	"github.com/versolabs/verso/internal/extract"
	"github.com/versolabs/verso/internal/logger"
	"github.com/versolabs/verso/internal/model"
	"github.com/versolabs/verso/internal/recommend"
	"github.com/versolabs/verso/internal/related"
	"github.com/versolabs/verso/internal/resolve"
	"github.com/versolabs/verso/internal/summarize"
	"github.com/versolabs/verso/internal/upstream"
	"github.com/versolabs/verso/internal/verify"
)

// Resolver loads the article for a request.
type Resolver interface {
	Resolve(ctx context.Context, id, rawURL string) (*model.Article, error)
}

// Extractor pulls claims out of article body text.
type Extractor interface {
	Extract(body string) []model.Claim
}

// FactChecker verifies claims into verdicts.
type FactChecker interface {
	VerifyAll(ctx context.Context, claims []model.Claim) []model.Verdict
}

// Recommender ranks catalog items for the article topics.
type Recommender interface {
	Recommend(ctx context.Context, topics []string) ([]model.RecommendationCandidate, error)
}

// RelatedFinder looks up related-article links.
type RelatedFinder interface {
	Find(ctx context.Context, topics []string) ([]model.RelatedArticleLink, error)
}

// Summarizer writes the article summary for the requested level.
type Summarizer interface {
	Summarize(ctx context.Context, article *model.Article, level model.SummaryLevel) string
}

// Orchestrator composes the pipeline. All collaborators are injected so
// tests run it against fakes.
type Orchestrator struct {
	resolver    Resolver
	extractor   Extractor
	verifier    FactChecker
	recommender Recommender
	finder      RelatedFinder
	summarizer  Summarizer
	store       resolve.Store
	cache       *cache.Store
	cfg         *model.Config
}

// New wires the orchestrator with the real components: HTTP upstream
// clients, the credibility table, and the configured cache.
func New(cfg *model.Config, store resolve.Store) *Orchestrator {
	table := credibility.NewTable(&cfg.Credibility)
	searcher := upstream.NewSearchClient(cfg.Upstream, cfg.HTTP)
	catalog := upstream.NewCatalogClient(cfg.Upstream, cfg.HTTP)
	index := upstream.NewRelatedClient(cfg.Upstream, cfg.HTTP)

	return &Orchestrator{
		resolver:    resolve.NewResolver(store, cfg.HTTP),
		extractor:   extract.NewClaimExtractor(cfg.Verify.MaxClaims),
		verifier:    verify.NewVerifier(searcher, table, cfg.Verify),
		recommender: recommend.NewMatcher(catalog, cfg.Recommend),
		finder:      related.NewFinder(index, cfg.Related),
		summarizer:  summarize.NewSummarizer(cfg.LLM),
		store:       store,
		cache:       cache.NewStore(cfg.Cache),
		cfg:         cfg,
	}
}

// Expand runs one expansion request end to end. Only validation and
// not-found errors surface; everything else degrades into the result.
func (o *Orchestrator) Expand(ctx context.Context, req model.ExpandRequest) (*model.ExpansionResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"article_id": req.ArticleID,
	})

	if o.cfg.Stages.OverallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Stages.OverallTimeout)
		defer cancel()
	}

	article, err := o.resolver.Resolve(ctx, req.ArticleID, req.ArticleURL)
	if err != nil {
		return nil, err
	}

	expansionKey := cache.Key(article.ID,
		boolKey(req.IncludeFacts), boolKey(req.IncludeRecommendations),
		boolKey(req.IncludeRelated), string(req.SummaryLevel))

	if data, ok := o.cache.Get(cache.CategoryExpansion, expansionKey); ok {
		var cached model.ExpansionResult
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.CacheHit = true
			cached.ProcessingTimeMs = time.Since(start).Milliseconds()
			return &cached, nil
		}
		log.Warn("discarding undecodable cached expansion")
	}

	result := &model.ExpansionResult{
		ArticleID:             article.ID,
		Title:                 article.Title,
		Topics:                article.Topics,
		Sentiment:             article.Sentiment,
		FactChecks:            []model.Verdict{},
		Recommendations:       []model.RecommendationCandidate{},
		RelatedArticles:       []model.RelatedArticleLink{},
		FactsStatus:           model.SectionStatus{State: model.SectionSkipped},
		RecommendationsStatus: model.SectionStatus{State: model.SectionSkipped},
		RelatedStatus:         model.SectionStatus{State: model.SectionSkipped},
	}

	result.Summary = o.summarizer.Summarize(ctx, article, req.SummaryLevel)

	type factsOut struct {
		verdicts []model.Verdict
		status   model.SectionStatus
	}
	type recsOut struct {
		candidates []model.RecommendationCandidate
		status     model.SectionStatus
	}
	type relatedOut struct {
		links  []model.RelatedArticleLink
		status model.SectionStatus
	}

	factsCh := make(chan factsOut, 1)
	recsCh := make(chan recsOut, 1)
	relatedCh := make(chan relatedOut, 1)

	if req.IncludeFacts {
		go func() {
			verdicts, status := runStage(ctx, o.cfg.Stages.FactsTimeout, "facts", log,
				func(stageCtx context.Context) ([]model.Verdict, error) {
					return o.factChecks(stageCtx, article)
				})
			factsCh <- factsOut{verdicts, status}
		}()
	} else {
		factsCh <- factsOut{nil, model.SectionStatus{State: model.SectionSkipped}}
	}

	if req.IncludeRecommendations {
		go func() {
			candidates, status := runStage(ctx, o.cfg.Stages.RecommendationsTimeout, "recommendations", log,
				func(stageCtx context.Context) ([]model.RecommendationCandidate, error) {
					return o.recommendations(stageCtx, article)
				})
			recsCh <- recsOut{candidates, status}
		}()
	} else {
		recsCh <- recsOut{nil, model.SectionStatus{State: model.SectionSkipped}}
	}

	if req.IncludeRelated {
		go func() {
			links, status := runStage(ctx, o.cfg.Stages.RelatedTimeout, "related", log,
				func(stageCtx context.Context) ([]model.RelatedArticleLink, error) {
					return o.relatedArticles(stageCtx, article)
				})
			relatedCh <- relatedOut{links, status}
		}()
	} else {
		relatedCh <- relatedOut{nil, model.SectionStatus{State: model.SectionSkipped}}
	}

	facts := <-factsCh
	recs := <-recsCh
	rel := <-relatedCh

	if facts.verdicts != nil {
		result.FactChecks = facts.verdicts
	}
	result.FactsStatus = facts.status
	if recs.candidates != nil {
		result.Recommendations = recs.candidates
	}
	result.RecommendationsStatus = recs.status
	if rel.links != nil {
		result.RelatedArticles = rel.links
	}
	result.RelatedStatus = rel.status

	result.CredibilityScore = aggregateCredibility(result.FactChecks)

	if data, err := json.Marshal(result); err == nil {
		if err := o.cache.Set(cache.CategoryExpansion, expansionKey, data); err != nil {
			log.WithError(err).Warn("expansion cache write failed")
		}
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// factChecks extracts and verifies claims, reading through the facts
// cache. Claims are request-scoped; only verdicts are cached.
func (o *Orchestrator) factChecks(ctx context.Context, article *model.Article) ([]model.Verdict, error) {
	key := cache.Key("facts", article.ID)
	if data, ok := o.cache.Get(cache.CategoryFacts, key); ok {
		var verdicts []model.Verdict
		if err := json.Unmarshal(data, &verdicts); err == nil {
			return verdicts, nil
		}
	}

	claims := o.extractor.Extract(article.Body)
	verdicts := o.verifier.VerifyAll(ctx, claims)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(verdicts); err == nil {
		_ = o.cache.Set(cache.CategoryFacts, key, data)
	}
	return verdicts, nil
}

func (o *Orchestrator) recommendations(ctx context.Context, article *model.Article) ([]model.RecommendationCandidate, error) {
	key := cache.Key("recommendations", article.ID)
	if data, ok := o.cache.Get(cache.CategoryRecommendations, key); ok {
		var candidates []model.RecommendationCandidate
		if err := json.Unmarshal(data, &candidates); err == nil {
			return candidates, nil
		}
	}

	candidates, err := o.recommender.Recommend(ctx, article.Topics)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(candidates); err == nil {
		_ = o.cache.Set(cache.CategoryRecommendations, key, data)
	}
	return candidates, nil
}

func (o *Orchestrator) relatedArticles(ctx context.Context, article *model.Article) ([]model.RelatedArticleLink, error) {
	key := cache.Key("related", article.ID)
	if data, ok := o.cache.Get(cache.CategoryRelated, key); ok {
		var links []model.RelatedArticleLink
		if err := json.Unmarshal(data, &links); err == nil {
			return links, nil
		}
	}

	links, err := o.finder.Find(ctx, article.Topics)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(links); err == nil {
		_ = o.cache.Set(cache.CategoryRelated, key, data)
	}
	return links, nil
}

// runStage executes one enrichment stage under its own deadline. A stage
// that errors or outlives its deadline contributes nothing; its eventual
// result is discarded.
func runStage[T any](ctx context.Context, timeout time.Duration, name string, log *logrus.Entry, fn func(context.Context) (T, error)) (T, model.SectionStatus) {
	var zero T

	stageCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)

	go func() {
		value, err := fn(stageCtx)
		ch <- outcome{value, err}
	}()

	select {
	case out := <-ch:
		if out.err != nil {
			log.WithError(out.err).WithField("stage", name).Warn("enrichment stage degraded")
			return zero, model.SectionStatus{State: model.SectionDegraded, Detail: out.err.Error()}
		}
		return out.value, sectionState(out.value)
	case <-stageCtx.Done():
		log.WithField("stage", name).Warn("enrichment stage timed out")
		return zero, model.SectionStatus{State: model.SectionDegraded, Detail: "stage timed out"}
	}
}

// sectionState reports ok or empty depending on the payload length.
func sectionState[T any](value T) model.SectionStatus {
	switch v := any(value).(type) {
	case []model.Verdict:
		if len(v) == 0 {
			return model.SectionStatus{State: model.SectionEmpty}
		}
	case []model.RecommendationCandidate:
		if len(v) == 0 {
			return model.SectionStatus{State: model.SectionEmpty}
		}
	case []model.RelatedArticleLink:
		if len(v) == 0 {
			return model.SectionStatus{State: model.SectionEmpty}
		}
	}
	return model.SectionStatus{State: model.SectionOK}
}

// aggregateCredibility folds the verdicts into one article-level score.
// True verdicts contribute their confidence, False verdicts the inverse,
// Mixed and Unverified sit at the midpoint.
func aggregateCredibility(verdicts []model.Verdict) float64 {
	if len(verdicts) == 0 {
		return 0
	}

	var sum float64
	for _, v := range verdicts {
		switch v.Label {
		case model.VerdictTrue:
			sum += v.Confidence
		case model.VerdictFalse:
			sum += 1 - v.Confidence
		default:
			sum += 0.5
		}
	}
	return sum / float64(len(verdicts))
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
