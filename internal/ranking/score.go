// Package ranking holds the pure scoring rules used to order articles.
package ranking

import "time"

const (
	WeightRecency    = 0.5
	WeightImportance = 0.3
	WeightSource     = 0.2

	DefaultReputation = 5
)

// RecencyScore is a step function of article age. A zero published time
// scores 0. Timestamps in the future count as brand new.
func RecencyScore(published, now time.Time) int {
	if published.IsZero() {
		return 0
	}

	age := now.Sub(published)
	switch {
	case age < time.Hour:
		return 10
	case age < 3*time.Hour:
		return 8
	case age < 6*time.Hour:
		return 6
	case age < 12*time.Hour:
		return 4
	case age < 24*time.Hour:
		return 2
	default:
		return 0
	}
}

func FinalScore(recency, importance, source int) float64 {
	return float64(recency)*WeightRecency +
		float64(importance)*WeightImportance +
		float64(source)*WeightSource
}

// Reputation maps a publisher name to a 1-10 credibility weight.
type Reputation map[string]int

func (r Reputation) Lookup(source string) int {
	if v, ok := r[source]; ok {
		return v
	}
	return DefaultReputation
}

var DefaultReputationTable = Reputation{
	"Bloomberg":           10,
	"Reuters":             10,
	"Wall Street Journal": 9,
	"Financial Times":     9,
	"BBC Business":        8,
	"CNBC":                7,
	"MarketWatch":         7,
	"Barron's":            7,
	"Yahoo Finance":       6,
	"Benzinga":            5,
	"Seeking Alpha":       4,
}
