package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"tickernews/internal/model"
)

// RSSClient reads an RSS or Atom feed directly, without a conversion API.
type RSSClient struct {
	source model.FeedSource
	limit  int
	parser *gofeed.Parser
}

func NewRSSClient(source model.FeedSource, limit int, timeout time.Duration) *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient(timeout)
	return &RSSClient{
		source: source,
		limit:  limit,
		parser: parser,
	}
}

func (c *RSSClient) Name() string {
	return c.source.Name
}

func (c *RSSClient) Fetch(ctx context.Context) ([]model.RawArticle, error) {
	feed, err := c.parser.ParseURLWithContext(c.source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", c.source.Name, err)
	}

	return convertFeed(feed, c.source.Name, c.limit), nil
}

func convertFeed(feed *gofeed.Feed, sourceName string, limit int) []model.RawArticle {
	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]model.RawArticle, 0, len(items))
	for _, item := range items {
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		published := item.Published
		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = item.Updated
			publishedAt = *item.UpdatedParsed
		} else {
			publishedAt = ParseDate(published)
		}

		articles = append(articles, model.RawArticle{
			Headline:     strings.TrimSpace(item.Title),
			RawSummary:   desc,
			Source:       sourceName,
			Link:         item.Link,
			PublishedRaw: published,
			PublishedAt:  publishedAt,
		})
	}
	return articles
}
