package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tickernews/internal/model"
)

type MassiveClient struct {
	apiKey     string
	limit      int
	httpClient *http.Client
}

func NewMassiveClient(apiKey string, limit int, timeout time.Duration) *MassiveClient {
	return &MassiveClient{
		apiKey:     apiKey,
		limit:      limit,
		httpClient: newHTTPClient(timeout),
	}
}

func (c *MassiveClient) Name() string {
	return "Massive"
}

func (c *MassiveClient) Fetch(ctx context.Context) ([]model.RawArticle, error) {
	url := fmt.Sprintf(
		"https://api.massive.com/v2/reference/news?limit=%d&order=desc&sort=published_utc&apiKey=%s",
		c.limit, c.apiKey,
	)

	var raw massiveResponse
	if err := getJSON(ctx, c.httpClient, url, &raw); err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}

	articles := make([]model.RawArticle, 0, len(raw.Results))
	for _, item := range raw.Results {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedUTC)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, model.RawArticle{
			Headline:     item.Title,
			RawSummary:   item.Description,
			Source:       publisherOr(item.Publisher.Name, c.Name()),
			Link:         item.ArticleURL,
			PublishedRaw: item.PublishedUTC,
			PublishedAt:  publishedAt,
		})
	}

	return articles, nil
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Publisher    massivePublisher `json:"publisher"`
}

type massivePublisher struct {
	Name string `json:"name"`
}
