package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"tickernews/internal/model"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
	limit  int
}

func NewFinnHubClient(apiKey string, limit int, timeout time.Duration) *FinnHubClient {
	return newFinnHubClient(apiKey, limit, newHTTPClient(timeout))
}

func newFinnHubClient(apiKey string, limit int, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client, limit: limit}
}

func (c *FinnHubClient) Fetch(ctx context.Context) ([]model.RawArticle, error) {
	res, _, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	if c.limit > 0 && len(res) > c.limit {
		res = res[:c.limit]
	}

	articles := make([]model.RawArticle, 0, len(res))
	for _, news := range res {
		a := model.RawArticle{
			Source: c.Name(),
		}

		if news.Headline != nil {
			a.Headline = *news.Headline
		}

		if news.Summary != nil {
			a.RawSummary = *news.Summary
		}

		if news.Url != nil {
			a.Link = *news.Url
		}

		if news.Datetime != nil && *news.Datetime > 0 {
			a.PublishedAt = time.Unix(*news.Datetime, 0).UTC()
			a.PublishedRaw = a.PublishedAt.Format(time.RFC3339)
		}

		if news.Source != nil {
			a.Source = publisherOr(*news.Source, c.Name())
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
