package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tickernews/db"
	"tickernews/internal/cache"
	"tickernews/internal/model"
)

const (
	cacheHeader = "X-Cache"

	// Entries outlive their TTL so a failed refresh can still serve the
	// last good list.
	staleRetention = time.Hour
)

var errNoArticles = errors.New("pipeline returned no articles")

type Pipeline interface {
	Run(ctx context.Context) ([]model.Article, error)
}

type NewsHandler struct {
	pipeline Pipeline
	store    cache.Store[[]model.Article]
	ttl      time.Duration
	now      func() time.Time

	refreshMu sync.Mutex
}

// NewNewsHandler serves the ranked article list. A nil store or a
// non-positive ttl disables caching.
func NewNewsHandler(pipeline Pipeline, store cache.Store[[]model.Article], ttl time.Duration) *NewsHandler {
	return &NewsHandler{
		pipeline: pipeline,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	ctx := c.Request.Context()

	if entry, ok := h.fresh(ctx); ok {
		c.Header(cacheHeader, "hit")
		c.JSON(http.StatusOK, NewsResponse{Articles: entry.Value})
		return
	}

	articles, status, err := h.load(ctx)
	if err != nil {
		slog.Error("error running news pipeline", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header(cacheHeader, status)
	c.JSON(http.StatusOK, NewsResponse{Articles: articles})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	cacheKind := "none"
	if h.caching() {
		cacheKind = h.store.Kind()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"cache":  cacheKind,
	})
}

// Refresh runs the pipeline and replaces the cached list.
func (h *NewsHandler) Refresh(ctx context.Context) error {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	_, err := h.runAndStore(ctx)
	return err
}

func (h *NewsHandler) load(ctx context.Context) ([]model.Article, string, error) {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	// Another request may have refreshed while this one waited.
	if entry, ok := h.fresh(ctx); ok {
		return entry.Value, "hit", nil
	}

	articles, err := h.runAndStore(ctx)
	if err == nil {
		return articles, "miss", nil
	}

	if entry, getErr := h.get(ctx); getErr == nil {
		slog.Warn("serving stale news after pipeline failure", "error", err, "fetched_at", entry.FetchedAt)
		return entry.Value, "stale", nil
	}

	return nil, "", err
}

func (h *NewsHandler) runAndStore(ctx context.Context) ([]model.Article, error) {
	articles, err := h.pipeline.Run(ctx)
	if err != nil {
		return nil, err
	}

	// An empty run never replaces a list that still has articles.
	if len(articles) == 0 {
		if entry, getErr := h.get(ctx); getErr == nil && len(entry.Value) > 0 {
			return nil, errNoArticles
		}
	}

	if h.caching() {
		entry := cache.Entry[[]model.Article]{Value: articles, FetchedAt: h.now()}
		if err := h.store.Set(ctx, db.NewsCacheKey, entry, h.ttl+staleRetention); err != nil {
			slog.Warn("error caching news", "error", err)
		}
	}

	return articles, nil
}

func (h *NewsHandler) fresh(ctx context.Context) (cache.Entry[[]model.Article], bool) {
	entry, err := h.get(ctx)
	if err != nil {
		return entry, false
	}
	return entry, entry.Fresh(h.ttl, h.now())
}

func (h *NewsHandler) get(ctx context.Context) (cache.Entry[[]model.Article], error) {
	if !h.caching() {
		return cache.Entry[[]model.Article]{}, cache.ErrMiss
	}

	entry, err := h.store.Get(ctx, db.NewsCacheKey)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		slog.Warn("error reading news cache", "error", err)
	}
	return entry, err
}

func (h *NewsHandler) caching() bool {
	return h.store != nil && h.ttl > 0
}
