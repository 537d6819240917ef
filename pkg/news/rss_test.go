package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/mmcdole/gofeed"

	"tickernews/internal/model"
)

const sampleRSS = `<?xml version="1.0"?>
<rss version="2.0">
<channel>
<title>Business</title>
<item>
  <title><![CDATA[Oil prices climb]]></title>
  <link>https://example.com/oil</link>
  <description><![CDATA[<p>Brent rose 2%.</p>]]></description>
  <pubDate>Mon, 19 Oct 2026 08:30:00 GMT</pubDate>
</item>
<item>
  <title>Stocks mixed</title>
  <link>https://example.com/stocks</link>
  <description>Indexes ended flat.</description>
</item>
<item>
  <title>Third</title>
  <link>https://example.com/third</link>
</item>
</channel>
</rss>`

func TestConvertFeed(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(sampleRSS)
	assert.Equal(t, nil, err)

	articles := convertFeed(feed, "Reuters", 2)

	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Oil prices climb", articles[0].Headline)
	assert.Equal(t, "<p>Brent rose 2%.</p>", articles[0].RawSummary)
	assert.Equal(t, "Reuters", articles[0].Source)
	assert.Equal(t, "https://example.com/oil", articles[0].Link)
	assert.Equal(t, 2026, articles[0].PublishedAt.Year())
	assert.Equal(t, true, articles[1].PublishedAt.IsZero())
}

func TestRSSFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleRSS)
	}))
	defer srv.Close()

	client := NewRSSClient(model.FeedSource{Name: "Reuters", URL: srv.URL, Kind: model.KindRSS}, 0, time.Second)

	articles, err := client.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
}

func TestNewSources(t *testing.T) {
	feeds := []model.FeedSource{
		{Name: "A", URL: "https://a", Kind: model.KindRSS2JSON},
		{Name: "B", URL: "https://b", Kind: model.KindRSS},
		{Name: "C", URL: "https://c"},
	}

	sources := NewSources(feeds, Options{MassiveKey: "k", ItemCount: 5})

	assert.Equal(t, 4, len(sources))
	assert.Equal(t, "A", sources[0].Name())
	assert.Equal(t, "B", sources[1].Name())
	assert.Equal(t, "Massive", sources[3].Name())

	_, isRSS := sources[1].(*RSSClient)
	assert.Equal(t, true, isRSS)
	_, isRSS2JSON := sources[2].(*RSS2JSONClient)
	assert.Equal(t, true, isRSS2JSON)
}
