package news

import (
	"time"

	"tickernews/internal/model"
)

// DefaultFeeds is the fixed source list used when no sources file is configured.
var DefaultFeeds = []model.FeedSource{
	{Name: "Bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss", Kind: model.KindRSS2JSON},
	{Name: "BBC Business", URL: "http://feeds.bbci.co.uk/news/business/rss.xml", Kind: model.KindRSS2JSON},
	{Name: "CNBC", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Kind: model.KindRSS2JSON},
	{Name: "MarketWatch", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories", Kind: model.KindRSS2JSON},
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex", Kind: model.KindRSS2JSON},
	{Name: "Financial Times", URL: "https://www.ft.com/markets?format=rss", Kind: model.KindRSS2JSON},
}

type Options struct {
	RSS2JSONKey     string
	FinnHubKey      string
	AlphaVantageKey string
	MassiveKey      string
	ItemCount       int
	Timeout         time.Duration
}

// NewSources builds one Source per feed, plus one per market-news API whose
// key is set.
func NewSources(feeds []model.FeedSource, opts Options) []Source {
	sources := make([]Source, 0, len(feeds)+3)

	for _, f := range feeds {
		switch f.Kind {
		case model.KindRSS:
			sources = append(sources, NewRSSClient(f, opts.ItemCount, opts.Timeout))
		default:
			sources = append(sources, NewRSS2JSONClient(f, opts.RSS2JSONKey, opts.ItemCount, opts.Timeout))
		}
	}

	if opts.FinnHubKey != "" {
		sources = append(sources, NewFinnHubClient(opts.FinnHubKey, opts.ItemCount, opts.Timeout))
	}
	if opts.AlphaVantageKey != "" {
		sources = append(sources, NewAlphaVantageClient(opts.AlphaVantageKey, opts.ItemCount, opts.Timeout))
	}
	if opts.MassiveKey != "" {
		sources = append(sources, NewMassiveClient(opts.MassiveKey, opts.ItemCount, opts.Timeout))
	}

	return sources
}
