package llm

import (
	"context"
	"fmt"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type RateInput struct {
	Headline string
	Summary  string
	Source   string
}

// Rater scores how market-moving a story is, from 1 to 10.
type Rater interface {
	Rate(ctx context.Context, input RateInput) (int, error)
}

type Paraphraser interface {
	Paraphrase(ctx context.Context, text string) (string, error)
}

type LLMClient interface {
	Rater
	Paraphraser
}

// New picks a client for provider. An empty provider selects the first
// provider with a key, Anthropic first. It returns nil, nil when no key is set.
func New(provider, anthropicKey, openAIKey string) (LLMClient, error) {
	if provider == "" {
		switch {
		case anthropicKey != "":
			provider = ProviderAnthropic
		case openAIKey != "":
			provider = ProviderOpenAI
		default:
			return nil, nil
		}
	}

	switch provider {
	case ProviderAnthropic:
		if anthropicKey == "" {
			return nil, fmt.Errorf("llm provider %q requires ANTHROPIC_API_KEY", provider)
		}
		return NewAnthropicClient(anthropicKey), nil
	case ProviderOpenAI:
		if openAIKey == "" {
			return nil, fmt.Errorf("llm provider %q requires OPENAI_API_KEY", provider)
		}
		return NewOpenAIClient(openAIKey), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q (valid: anthropic, openai)", provider)
	}
}
