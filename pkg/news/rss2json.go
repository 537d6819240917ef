package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tickernews/internal/model"
)

const rss2jsonBaseURL = "https://api.rss2json.com/v1/api.json"

// RSS2JSONClient retrieves one feed through the rss2json conversion API.
type RSS2JSONClient struct {
	source     model.FeedSource
	apiKey     string
	count      int
	baseURL    string
	httpClient *http.Client
}

func NewRSS2JSONClient(source model.FeedSource, apiKey string, count int, timeout time.Duration) *RSS2JSONClient {
	return &RSS2JSONClient{
		source:     source,
		apiKey:     apiKey,
		count:      count,
		baseURL:    rss2jsonBaseURL,
		httpClient: newHTTPClient(timeout),
	}
}

func (c *RSS2JSONClient) Name() string {
	return c.source.Name
}

func (c *RSS2JSONClient) Fetch(ctx context.Context) ([]model.RawArticle, error) {
	q := url.Values{}
	q.Set("rss_url", c.source.URL)
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	if c.count > 0 {
		q.Set("count", strconv.Itoa(c.count))
	}

	body, err := getBody(ctx, c.httpClient, c.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("rss2json fetch %s: %w", c.source.Name, err)
	}

	result := parseRSS2JSON(body, c.source.Name)
	if !result.OK() {
		return nil, fmt.Errorf("rss2json parse %s: %s", c.source.Name, result.Reason)
	}

	return result.Articles, nil
}

// ParseResult is either a parsed article list or the reason parsing failed.
type ParseResult struct {
	Articles []model.RawArticle
	Reason   string
}

func (r ParseResult) OK() bool {
	return r.Reason == ""
}

func parseOK(articles []model.RawArticle) ParseResult {
	return ParseResult{Articles: articles}
}

func parseFailed(format string, args ...any) ParseResult {
	return ParseResult{Reason: fmt.Sprintf(format, args...)}
}

type rss2jsonResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Items   *[]rss2jsonItem `json:"items"`
}

type rss2jsonItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
}

func parseRSS2JSON(body []byte, sourceName string) ParseResult {
	var raw rss2jsonResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return parseFailed("malformed payload: %v", err)
	}

	if raw.Status != "ok" {
		if raw.Message != "" {
			return parseFailed("status %q: %s", raw.Status, raw.Message)
		}
		return parseFailed("status %q", raw.Status)
	}

	if raw.Items == nil {
		return parseFailed("missing items")
	}

	articles := make([]model.RawArticle, 0, len(*raw.Items))
	for _, item := range *raw.Items {
		articles = append(articles, model.RawArticle{
			Headline:     strings.TrimSpace(item.Title),
			RawSummary:   item.Description,
			Source:       sourceName,
			Link:         strings.TrimSpace(item.Link),
			PublishedRaw: item.PubDate,
			PublishedAt:  ParseDate(item.PubDate),
		})
	}

	return parseOK(articles)
}
