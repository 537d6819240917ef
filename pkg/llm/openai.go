package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	// Failures fall back to defaults upstream, so the SDK must not retry.
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

func (c *OpenAIClient) Rate(ctx context.Context, input RateInput) (int, error) {
	content, err := c.complete(ctx, rateSystemPrompt, formatRatePrompt(input))
	if err != nil {
		return 0, err
	}
	return ParseImportance(content)
}

func (c *OpenAIClient) Paraphrase(ctx context.Context, text string) (string, error) {
	content, err := c.complete(ctx, paraphraseSystemPrompt, truncate(text, maxPromptSummaryChars))
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("empty paraphrase from openai")
	}
	return content, nil
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return cleanText(resp.Choices[0].Message.Content), nil
}
