package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tickernews/internal/model"
)

const alphaVantageTimeLayout = "20060102T150405"

type AlphaVantageClient struct {
	apiKey     string
	limit      int
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string, limit int, timeout time.Duration) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		limit:      limit,
		httpClient: newHTTPClient(timeout),
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

func (c *AlphaVantageClient) Fetch(ctx context.Context) ([]model.RawArticle, error) {
	url := fmt.Sprintf(
		"https://www.alphavantage.co/query?function=NEWS_SENTIMENT&limit=%d&sort=LATEST&apikey=%s",
		c.limit, c.apiKey,
	)

	var raw avResponse
	if err := getJSON(ctx, c.httpClient, url, &raw); err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}

	// The API reports quota and key problems in a 200 body without a feed.
	if raw.Feed == nil {
		if raw.Information != "" {
			return nil, fmt.Errorf("alphavantage: %s", raw.Information)
		}
		return nil, fmt.Errorf("alphavantage: missing feed")
	}

	articles := make([]model.RawArticle, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		var publishedRaw string
		publishedAt, err := time.Parse(alphaVantageTimeLayout, item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		} else {
			publishedRaw = publishedAt.Format(time.RFC3339)
		}

		articles = append(articles, model.RawArticle{
			Headline:     item.Title,
			RawSummary:   item.Summary,
			Source:       publisherOr(item.Source, c.Name()),
			Link:         item.URL,
			PublishedRaw: publishedRaw,
			PublishedAt:  publishedAt,
		})
	}

	return articles, nil
}

func publisherOr(publisher, fallback string) string {
	if publisher != "" {
		return publisher
	}
	return fallback
}

type avResponse struct {
	Feed        []avFeedItem `json:"feed"`
	Information string       `json:"Information"`
}

type avFeedItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
