package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"tickernews/db"
	"tickernews/internal/cache"
	"tickernews/internal/model"
)

type fakePipeline struct {
	articles []model.Article
	err      error
	panics   bool
	calls    int
}

func (f *fakePipeline) Run(ctx context.Context) ([]model.Article, error) {
	f.calls++
	if f.panics {
		panic("unexpected nil feed")
	}
	return f.articles, f.err
}

func newTestRouter(h *NewsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(h)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Origin", "https://widget.example.com")
	r.ServeHTTP(w, req)
	return w
}

func TestGetNews_ReturnsArticles(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{
		{Headline: "Fed raises rates", Source: "Bloomberg", TimeAgo: "30 min ago"},
	}}
	r := newTestRouter(NewNewsHandler(pipeline, nil, 0))

	w := get(r, "/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "Fed raises rates", res.Articles[0].Headline)
	assert.Equal(t, "30 min ago", res.Articles[0].TimeAgo)
}

func TestGetNews_EmptyIsNotAnError(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{}}
	r := newTestRouter(NewNewsHandler(pipeline, nil, 0))

	w := get(r, "/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"articles":[]}`, w.Body.String())
}

func TestGetNews_PipelineError(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("collecting articles: context canceled")}
	r := newTestRouter(NewNewsHandler(pipeline, nil, 0))

	w := get(r, "/news")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "collecting articles: context canceled", res["error"])
}

func TestGetNews_Panic(t *testing.T) {
	pipeline := &fakePipeline{panics: true}
	r := newTestRouter(NewNewsHandler(pipeline, nil, 0))

	w := get(r, "/news")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "unexpected nil feed", res["error"])
}

func TestGetNews_CacheHit(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{{Headline: "A"}}}
	h := NewNewsHandler(pipeline, cache.NewMemory[[]model.Article](time.Minute), time.Minute)
	r := newTestRouter(h)

	first := get(r, "/news")
	second := get(r, "/news")

	assert.Equal(t, 1, pipeline.calls)
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetNews_ExpiredEntryRefreshes(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{{Headline: "A"}}}
	h := NewNewsHandler(pipeline, cache.NewMemory[[]model.Article](time.Minute), time.Minute)
	now := time.Now()
	h.now = func() time.Time { return now }
	r := newTestRouter(h)

	get(r, "/news")
	now = now.Add(2 * time.Minute)
	w := get(r, "/news")

	assert.Equal(t, 2, pipeline.calls)
	assert.Equal(t, "miss", w.Header().Get("X-Cache"))
}

func TestGetNews_StaleOnFailure(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{{Headline: "A"}}}
	h := NewNewsHandler(pipeline, cache.NewMemory[[]model.Article](time.Minute), time.Minute)
	now := time.Now()
	h.now = func() time.Time { return now }
	r := newTestRouter(h)

	get(r, "/news")
	now = now.Add(2 * time.Minute)
	pipeline.err = errors.New("boom")
	w := get(r, "/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stale", w.Header().Get("X-Cache"))

	var res NewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "A", res.Articles[0].Headline)
}

func TestGetNews_EmptyRunKeepsCachedList(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{{Headline: "A"}}}
	store := cache.NewMemory[[]model.Article](time.Minute)
	h := NewNewsHandler(pipeline, store, time.Minute)
	now := time.Now()
	h.now = func() time.Time { return now }
	r := newTestRouter(h)

	get(r, "/news")
	now = now.Add(2 * time.Minute)
	pipeline.articles = []model.Article{}

	for i := 0; i < 2; i++ {
		w := get(r, "/news")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "stale", w.Header().Get("X-Cache"))

		var res NewsResponse
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, 1, len(res.Articles))
		assert.Equal(t, "A", res.Articles[0].Headline)
	}

	entry, err := store.Get(context.Background(), db.NewsCacheKey)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(entry.Value))
	assert.Equal(t, 3, pipeline.calls)
}

func TestRefresh(t *testing.T) {
	pipeline := &fakePipeline{articles: []model.Article{{Headline: "Warm"}}}
	store := cache.NewMemory[[]model.Article](time.Minute)
	h := NewNewsHandler(pipeline, store, time.Minute)

	err := h.Refresh(context.Background())
	assert.Equal(t, nil, err)

	w := get(newTestRouter(h), "/news")
	assert.Equal(t, "hit", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, pipeline.calls)
}

func TestGetHealth(t *testing.T) {
	h := NewNewsHandler(&fakePipeline{}, cache.NewMemory[[]model.Article](time.Minute), time.Minute)
	w := get(newTestRouter(h), "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
	assert.Equal(t, "memory", res["cache"])
}

func TestGetHealth_NoCache(t *testing.T) {
	w := get(newTestRouter(NewNewsHandler(&fakePipeline{}, nil, time.Minute)), "/health")

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "none", res["cache"])
}
