package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinImportance = 1
	MaxImportance = 10

	maxPromptSummaryChars = 500
)

var ErrNoScore = errors.New("no integer in rating response")

const rateSystemPrompt = `You are a financial markets editor. Rate how market-moving a news story is on a scale from 1 to 10, where 10 means it will move major indices and 1 means it has no market relevance.

Respond with a single integer only, no other text.`

const paraphraseSystemPrompt = `You are a financial news editor. Paraphrase the news description into 1-2 concise sentences. Keep it factual and neutral. Remove any HTML tags.

Respond with the paraphrased text only.`

func formatRatePrompt(input RateInput) string {
	return fmt.Sprintf("Headline: %s\nSummary: %s\nSource: %s",
		input.Headline, truncate(input.Summary, maxPromptSummaryChars), input.Source)
}

var integerPattern = regexp.MustCompile(`\d+`)

// ParseImportance returns the first integer in a completion, clamped to
// [MinImportance, MaxImportance].
func ParseImportance(text string) (int, error) {
	match := integerPattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoScore, text)
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		// Only overflow gets here.
		return MaxImportance, nil
	}

	if n < MinImportance {
		return MinImportance, nil
	}
	if n > MaxImportance {
		return MaxImportance, nil
	}
	return n, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func cleanText(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
