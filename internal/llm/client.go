package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model service is reachable.
	Available(ctx context.Context) bool
}

// callParams is what a backend needs for one attempt.
type callParams struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// backend speaks one provider's protocol. The shared client handles
// timeouts, retries and observation around it.
type backend interface {
	call(ctx context.Context, p callParams) (text, model string, err error)
	available(ctx context.Context) bool
}

type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

func newClient(cfg LLMConfig, b backend, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, backend: b, observer: observer}
}

// NewClient creates the LLMClient for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(cfg, observer)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: %q (want openai, gemini or ollama)", ErrUnknownProvider, cfg.Provider)
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	params := callParams{
		Model:       c.cfg.ModelName(),
		System:      req.SystemPrompt,
		Prompt:      req.UserPrompt,
		Temperature: temp,
		MaxTokens:   maxTok,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	made := 0

	for i := 0; i < attempts; i++ {
		made++
		text, model, err := c.backend.call(ctx, params)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  c.cfg.Provider,
				Model:     params.Model,
				LatencyMs: latency,
				Attempts:  made,
				Success:   true,
			})
			if model == "" {
				model = params.Model
			}
			return &GenerateResponse{
				Text:      text,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	var result error
	switch {
	case ctx.Err() != nil:
		result = ErrTimeout
	case isConnectionError(lastErr):
		result = ErrUnavailable
	case errors.Is(lastErr, ErrEmptyResponse):
		result = ErrEmptyResponse
	default:
		result = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.cfg.Provider,
		Model:     params.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  made,
		Success:   false,
		ErrorCode: errorCode(result),
	})
	return nil, result
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.backend.available(ctx)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return false
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// Unconfigured returns a client whose every call fails with err. main uses
// it when NewClient fails so commands that never reach the model still run.
func Unconfigured(err error) LLMClient {
	return unconfiguredClient{err: err}
}

type unconfiguredClient struct{ err error }

func (c unconfiguredClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, c.err
}

func (unconfiguredClient) Available(context.Context) bool { return false }
