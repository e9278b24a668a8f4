package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiBackend calls Gemini through the Google GenAI SDK.
type geminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates an LLMClient for the Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w (set TIMETABLER_LLM_API_KEY or GEMINI_API_KEY)", ErrMissingAPIKey)
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := cfg.BaseURL(); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base + "/"}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newClient(cfg, &geminiBackend{client: gc, model: cfg.ModelName()}, observer), nil
}

func (b *geminiBackend) call(ctx context.Context, p callParams) (string, string, error) {
	gcfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(float32(p.Temperature)),
	}
	if p.MaxTokens > 0 {
		gcfg.MaxOutputTokens = int32(p.MaxTokens)
	}

	res, err := b.client.Models.GenerateContent(ctx, p.Model, genai.Text(p.Prompt), gcfg)
	if err != nil {
		return "", "", err
	}
	return res.Text(), res.ModelVersion, nil
}

func (b *geminiBackend) available(ctx context.Context) bool {
	_, err := b.client.Models.Get(ctx, b.model, nil)
	return err == nil
}
