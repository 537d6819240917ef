// Package app wires configuration into the pipeline and its cache.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"tickernews/db"
	"tickernews/internal/aggregator"
	"tickernews/internal/cache"
	"tickernews/internal/config"
	"tickernews/internal/model"
	"tickernews/pkg/llm"
	"tickernews/pkg/news"
)

func SetupLogging(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

func NewAggregator(cfg *config.Config) (*aggregator.Aggregator, error) {
	client, err := llm.New(cfg.LLMProvider, cfg.AnthropicKey, cfg.OpenAIKey)
	if err != nil {
		return nil, fmt.Errorf("configuring llm: %w", err)
	}

	opts := aggregator.Options{
		CallTimeout:     cfg.FetchTimeout,
		RateConcurrency: cfg.RateConcurrency,
		Limit:           cfg.ArticleLimit,
	}

	if client == nil {
		slog.Warn("no LLM API key configured, every article gets the default importance")
	} else {
		opts.Rater = client
		if cfg.Paraphrase {
			opts.Paraphraser = client
		}
	}

	if cfg.RSS2JSONKey == "" {
		slog.Warn("RSS2JSON_API_KEY not set, rss2json sources use the anonymous quota")
	}

	sources := news.NewSources(cfg.Feeds, cfg.SourceOptions())
	return aggregator.New(sources, opts), nil
}

// NewCache returns a Redis-backed store when REDIS_URL is set and reachable,
// otherwise an in-process one. The returned func releases the connection.
func NewCache(cfg *config.Config) (cache.Store[[]model.Article], func()) {
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			slog.Error("error connecting to Redis, falling back to memory cache", "error", err)
			db.CloseRedis()
		} else {
			return cache.NewRedis[[]model.Article](db.Redis), db.CloseRedis
		}
	}

	return cache.NewMemory[[]model.Article](cfg.CacheTTL), func() {}
}
