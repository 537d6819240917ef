package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tickernews/internal/model"
	"tickernews/pkg/news"
)

type Config struct {
	Port string

	RSS2JSONKey     string
	AnthropicKey    string
	OpenAIKey       string
	LLMProvider     string
	FinnHubKey      string
	AlphaVantageKey string
	MassiveKey      string

	RedisURL string
	CacheTTL time.Duration

	FetchTimeout    time.Duration
	RateConcurrency int
	ArticleLimit    int
	FeedItemCount   int
	Paraphrase      bool

	SourcesFile string
	Feeds       []model.FeedSource

	RefreshCron string
	LogLevel    slog.Level
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		RSS2JSONKey:     os.Getenv("RSS2JSON_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		LLMProvider:     strings.ToLower(os.Getenv("LLM_PROVIDER")),
		FinnHubKey:      os.Getenv("FINNHUB_API_KEY"),
		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		MassiveKey:      os.Getenv("MASSIVE_API_KEY"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SourcesFile:     os.Getenv("SOURCES_FILE"),
		RefreshCron:     os.Getenv("REFRESH_CRON"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getDuration("FETCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateConcurrency, err = getInt("RATE_CONCURRENCY", 0); err != nil {
		return nil, err
	}
	if cfg.ArticleLimit, err = getInt("ARTICLE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.FeedItemCount, err = getInt("FEED_ITEM_COUNT", 10); err != nil {
		return nil, err
	}
	if cfg.Paraphrase, err = getBool("PARAPHRASE_SUMMARIES", false); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.Feeds = news.DefaultFeeds
	if cfg.SourcesFile != "" {
		feeds, err := LoadFeeds(cfg.SourcesFile)
		if err != nil {
			return nil, err
		}
		cfg.Feeds = feeds
	}

	return cfg, nil
}

func (c *Config) SourceOptions() news.Options {
	return news.Options{
		RSS2JSONKey:     c.RSS2JSONKey,
		FinnHubKey:      c.FinnHubKey,
		AlphaVantageKey: c.AlphaVantageKey,
		MassiveKey:      c.MassiveKey,
		ItemCount:       c.FeedItemCount,
		Timeout:         c.FetchTimeout,
	}
}

type feedsFile struct {
	Sources []model.FeedSource `yaml:"sources"`
}

// LoadFeeds reads a YAML list of feed sources.
func LoadFeeds(path string) ([]model.FeedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var f feedsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}

	for i := range f.Sources {
		s := &f.Sources[i]
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("source %d: name and url are required", i)
		}
		switch s.Kind {
		case "":
			s.Kind = model.KindRSS2JSON
		case model.KindRSS, model.KindRSS2JSON:
		default:
			return nil, fmt.Errorf("source %q: unknown kind %q (valid: rss, rss2json)", s.Name, s.Kind)
		}
	}

	return f.Sources, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
