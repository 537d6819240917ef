// Package aggregator fans out to every feed source, rates and scores the
// collected articles, and returns the top of the ranking.
package aggregator

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"tickernews/internal/model"
	"tickernews/internal/ranking"
	"tickernews/pkg/llm"
	"tickernews/pkg/news"
)

const (
	DefaultLimit       = 20
	DefaultCallTimeout = 10 * time.Second
	DefaultImportance  = 5
)

type Options struct {
	Rater       llm.Rater
	Paraphraser llm.Paraphraser
	Reputation  ranking.Reputation
	// CallTimeout bounds each outbound call on its own.
	CallTimeout time.Duration
	// RateConcurrency caps in-flight LLM calls. Zero issues them all at once.
	RateConcurrency int
	Limit           int
	Now             func() time.Time
}

type Aggregator struct {
	sources         []news.Source
	rater           llm.Rater
	paraphraser     llm.Paraphraser
	reputation      ranking.Reputation
	callTimeout     time.Duration
	rateConcurrency int
	limit           int
	now             func() time.Time
}

func New(sources []news.Source, opts Options) *Aggregator {
	a := &Aggregator{
		sources:         sources,
		rater:           opts.Rater,
		paraphraser:     opts.Paraphraser,
		reputation:      opts.Reputation,
		callTimeout:     opts.CallTimeout,
		rateConcurrency: opts.RateConcurrency,
		limit:           opts.Limit,
		now:             opts.Now,
	}

	if a.reputation == nil {
		a.reputation = ranking.DefaultReputationTable
	}
	if a.callTimeout <= 0 {
		a.callTimeout = DefaultCallTimeout
	}
	if a.limit <= 0 {
		a.limit = DefaultLimit
	}
	if a.now == nil {
		a.now = time.Now
	}

	return a
}

func (a *Aggregator) Sources() []news.Source {
	return a.sources
}

// Limit is the resolved cap on returned articles.
func (a *Aggregator) Limit() int {
	return a.limit
}

// Run executes the whole pipeline. Source and rating failures degrade to
// empty or default values; an error means no response can be produced.
func (a *Aggregator) Run(ctx context.Context) ([]model.Article, error) {
	raw := a.Collect(ctx)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collecting articles: %w", err)
	}

	scored := a.Score(ctx, raw)
	ranked := Rank(scored, a.limit)

	articles := a.Present(ctx, ranked)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scoring articles: %w", err)
	}

	slog.Info("news pipeline finished",
		"sources", len(a.sources),
		"candidates", len(raw),
		"returned", len(articles),
	)

	return articles, nil
}

// Collect fetches every source concurrently and flattens the results in
// source order. Articles without a headline are dropped.
func (a *Aggregator) Collect(ctx context.Context) []model.RawArticle {
	results := make([][]model.RawArticle, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src news.Source) {
			defer wg.Done()
			results[i] = a.fetchSource(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var total int
	for _, r := range results {
		total += len(r)
	}

	articles := make([]model.RawArticle, 0, total)
	for _, r := range results {
		for _, article := range r {
			if strings.TrimSpace(article.Headline) == "" {
				continue
			}
			articles = append(articles, article)
		}
	}

	return articles
}

func (a *Aggregator) fetchSource(ctx context.Context, src news.Source) (articles []model.RawArticle) {
	name := src.Name()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic fetching source", "source", name, "error", r)
			articles = nil
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	start := time.Now()
	articles, err := src.Fetch(ctx)
	if err != nil {
		slog.Error("error fetching source", "source", name, "error", err)
		return nil
	}

	slog.Debug("source fetched", "source", name, "articles", len(articles), "duration", time.Since(start))
	return articles
}

// Score rates every article concurrently and computes its composite score.
func (a *Aggregator) Score(ctx context.Context, raw []model.RawArticle) []model.ScoredArticle {
	now := a.now()
	scored := make([]model.ScoredArticle, len(raw))
	sem := a.callSlots()

	var wg sync.WaitGroup
	for i := range raw {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			article := raw[i]
			recency := ranking.RecencyScore(article.PublishedAt, now)
			importance := a.importance(ctx, article)
			source := a.reputation.Lookup(article.Source)

			scored[i] = model.ScoredArticle{
				RawArticle: article,
				Recency:    recency,
				Importance: importance,
				SourceRep:  source,
				Score:      ranking.FinalScore(recency, importance, source),
			}
		}(i)
	}
	wg.Wait()

	return scored
}

// callSlots returns a semaphore for LLM calls, or nil when they are
// unbounded.
func (a *Aggregator) callSlots() chan struct{} {
	if a.rateConcurrency <= 0 {
		return nil
	}
	return make(chan struct{}, a.rateConcurrency)
}

func (a *Aggregator) importance(ctx context.Context, article model.RawArticle) (score int) {
	if a.rater == nil {
		return DefaultImportance
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic rating article", "headline", article.Headline, "error", r)
			score = DefaultImportance
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	score, err := a.rater.Rate(ctx, llm.RateInput{
		Headline: article.Headline,
		Summary:  CleanSummary(article.RawSummary),
		Source:   article.Source,
	})
	if err != nil {
		slog.Warn("error rating article, using default", "headline", article.Headline, "source", article.Source, "error", err)
		return DefaultImportance
	}

	return min(max(score, llm.MinImportance), llm.MaxImportance)
}

// Rank sorts by score, highest first, keeping input order on ties, and
// keeps at most limit articles.
func Rank(scored []model.ScoredArticle, limit int) []model.ScoredArticle {
	ranked := slices.Clone(scored)
	slices.SortStableFunc(ranked, func(x, y model.ScoredArticle) int {
		return cmp.Compare(y.Score, x.Score)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
