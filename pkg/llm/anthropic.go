package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	// Failures fall back to defaults upstream, so the SDK must not retry.
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client: &client,
		model:  anthropic.ModelClaudeHaiku4_5,
	}
}

func (c *AnthropicClient) Rate(ctx context.Context, input RateInput) (int, error) {
	content, err := c.complete(ctx, rateSystemPrompt, formatRatePrompt(input), 10)
	if err != nil {
		return 0, err
	}
	return ParseImportance(content)
}

func (c *AnthropicClient) Paraphrase(ctx context.Context, text string) (string, error) {
	content, err := c.complete(ctx, paraphraseSystemPrompt, truncate(text, maxPromptSummaryChars), 150)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("empty paraphrase from anthropic")
	}
	return content, nil
}

func (c *AnthropicClient) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return cleanText(resp.Content[0].Text), nil
}
