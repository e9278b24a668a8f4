package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAIBackend sends chat completions through the official SDK.
type openAIBackend struct {
	client openai.Client
}

// NewOpenAIClient creates an LLMClient for the OpenAI chat completions API.
// The SDK's own retries are disabled; LLMConfig.MaxRetries governs them.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w (set TIMETABLER_LLM_API_KEY or OPENAI_API_KEY)", ErrMissingAPIKey)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := cfg.BaseURL(); base != "" {
		opts = append(opts, option.WithBaseURL(base+"/"))
	}
	return newClient(cfg, &openAIBackend{client: openai.NewClient(opts...)}, observer), nil
}

func (b *openAIBackend) call(ctx context.Context, p callParams) (string, string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.Prompt),
		},
		Temperature: openai.Float(p.Temperature),
	}
	if p.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(p.MaxTokens))
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", "", err
	}
	if len(resp.Choices) == 0 {
		return "", resp.Model, nil
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (b *openAIBackend) available(ctx context.Context) bool {
	_, err := b.client.Models.List(ctx)
	return err == nil
}
