package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestRecencyScore(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"half hour", 30 * time.Minute, 10},
		{"exactly 1h", time.Hour, 8},
		{"2h59m", 3*time.Hour - time.Minute, 8},
		{"exactly 3h", 3 * time.Hour, 6},
		{"exactly 6h", 6 * time.Hour, 4},
		{"11h", 11 * time.Hour, 4},
		{"exactly 12h", 12 * time.Hour, 2},
		{"23h59m", 24*time.Hour - time.Minute, 2},
		{"exactly 24h", 24 * time.Hour, 0},
		{"25h", 25 * time.Hour, 0},
		{"future", -2 * time.Hour, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecencyScore(now.Add(-tt.age), now))
		})
	}
}

func TestRecencyScore_ZeroTime(t *testing.T) {
	assert.Equal(t, 0, RecencyScore(time.Time{}, time.Now()))
}

func TestRecencyScore_Monotonic(t *testing.T) {
	now := time.Now()
	prev := RecencyScore(now, now)
	for age := time.Duration(0); age <= 48*time.Hour; age += 7 * time.Minute {
		got := RecencyScore(now.Add(-age), now)
		if got > prev {
			t.Fatalf("recency increased at age %v: %d > %d", age, got, prev)
		}
		prev = got
	}
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		recency, importance, source int
		want                        float64
	}{
		{10, 9, 10, 9.7},
		{0, 5, 5, 2.5},
		{8, 1, 5, 5.3},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		got := FinalScore(tt.recency, tt.importance, tt.source)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FinalScore(%d, %d, %d) = %v, want %v", tt.recency, tt.importance, tt.source, got, tt.want)
		}
	}
}

func TestReputationLookup(t *testing.T) {
	assert.Equal(t, 10, DefaultReputationTable.Lookup("Bloomberg"))
	assert.Equal(t, DefaultReputation, DefaultReputationTable.Lookup("Some Blog"))

	var empty Reputation
	assert.Equal(t, DefaultReputation, empty.Lookup("Bloomberg"))
}
