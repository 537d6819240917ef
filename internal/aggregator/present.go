package aggregator

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"tickernews/internal/model"
)

const MaxSummaryRunes = 300

var htmlStripper = bluemonday.StrictPolicy()

// Present turns ranked articles into the response shape, dropping scores.
func (a *Aggregator) Present(ctx context.Context, ranked []model.ScoredArticle) []model.Article {
	now := a.now()
	summaries := a.summaries(ctx, ranked)

	articles := make([]model.Article, 0, len(ranked))
	for i, s := range ranked {
		articles = append(articles, model.Article{
			Headline: s.Headline,
			Summary:  summaries[i],
			Source:   s.Source,
			Link:     s.Link,
			Date:     displayDate(s.RawArticle),
			TimeAgo:  TimeAgo(s.PublishedAt, now),
		})
	}
	return articles
}

func (a *Aggregator) summaries(ctx context.Context, ranked []model.ScoredArticle) []string {
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = CleanSummary(s.RawSummary)
	}

	if a.paraphraser == nil {
		return out
	}

	sem := a.callSlots()
	var wg sync.WaitGroup
	for i := range out {
		if out[i] == "" {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			out[i] = a.paraphrase(ctx, out[i])
		}(i)
	}
	wg.Wait()

	return out
}

func (a *Aggregator) paraphrase(ctx context.Context, text string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic paraphrasing summary", "error", r)
			result = text
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	paraphrased, err := a.paraphraser.Paraphrase(ctx, text)
	if err != nil {
		slog.Warn("error paraphrasing summary, keeping original", "error", err)
		return text
	}
	return truncate(strings.TrimSpace(paraphrased), MaxSummaryRunes)
}

// CleanSummary strips markup, decodes entities, collapses whitespace and
// bounds the length.
func CleanSummary(raw string) string {
	s := htmlStripper.Sanitize(raw)
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, MaxSummaryRunes)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func displayDate(a model.RawArticle) string {
	if a.PublishedRaw != "" {
		return a.PublishedRaw
	}
	if !a.PublishedAt.IsZero() {
		return a.PublishedAt.UTC().Format(time.RFC3339)
	}
	return ""
}

// TimeAgo renders the age of published relative to now. Unknown dates
// render as an empty string.
func TimeAgo(published, now time.Time) string {
	if published.IsZero() {
		return ""
	}

	seconds := int64(now.Sub(published) / time.Second)
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%d min ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	default:
		return fmt.Sprintf("%d days ago", seconds/86400)
	}
}
