package model

import "time"

const (
	KindRSS2JSON = "rss2json"
	KindRSS      = "rss"
)

type FeedSource struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// RawArticle is one item as parsed from a feed, before scoring.
type RawArticle struct {
	Headline     string
	RawSummary   string
	Source       string
	Link         string
	PublishedRaw string
	PublishedAt  time.Time
}

type ScoredArticle struct {
	RawArticle
	Recency    int
	Importance int
	SourceRep  int
	Score      float64
}

// Article is the shape served to the ticker widget.
type Article struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	Link     string `json:"link"`
	Date     string `json:"date"`
	TimeAgo  string `json:"timeAgo"`
}
