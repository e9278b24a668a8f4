package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Endpoint = endpoint
	return cfg
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 0.7, req.Options.Temperature)
		assert.Equal(t, 2000, req.Options.NumPredict)

		resp := ollamaResponse{
			Model:    "llama3.2",
			Response: "| Day | 8:45-9:45 |\n|---|---|\n| Mon | BREAK |",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskTimetable,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Contains(t, resp.Text, "| Mon | BREAK |")
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_RequestOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.1, req.Options.Temperature)
		assert.Equal(t, 64, req.Options.NumPredict)
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	temp, maxTok := 0.1, 64
	client := NewOllamaClient(testConfig(srv.URL), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskTimetable,
		UserPrompt:  "test",
		Temperature: &temp,
		MaxTokens:   &maxTok,
	})
	require.NoError(t, err)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskTimetable: {Temperature: 0.7, MaxTokens: 2000, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskTimetable,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.TimeoutMs = 1000

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskTimetable,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaClient_Generate_NoRetryByDefault(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskTimetable,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_RetryOnTransientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskTimetable,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "  \n"})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskTimetable,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(srv.URL), nil).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig("http://127.0.0.1:1"), nil).Available(context.Background()))
}

func TestClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskTimetable,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, TaskTimetable, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llama3.2", captured.Model)
	assert.Equal(t, 1, captured.Attempts)
	assert.True(t, captured.Success)
}

func TestClient_ObserverTimeoutErrorCode(t *testing.T) {
	b := &stubBackend{fn: func(ctx context.Context, _ callParams) (string, string, error) {
		<-ctx.Done()
		return "", "", ctx.Err()
	}}

	cfg := DefaultConfig()
	cfg.TimeoutMs = 20

	var captured LLMCallEvent
	c := newClient(cfg, b, &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskTimetable, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

func TestClient_BackendErrorWrapped(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := newClient(DefaultConfig(), &stubBackend{fn: func(context.Context, callParams) (string, string, error) {
		return "", "", boom
	}}, nil)

	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskTimetable, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewClient_Providers(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	c, err := NewClient(ctx, cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)

	cfg.Provider = ProviderOpenAI
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg.Provider = ProviderGemini
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg.Provider = "claude"
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

type stubBackend struct {
	fn func(ctx context.Context, p callParams) (string, string, error)
}

func (s *stubBackend) available(context.Context) bool { return true }

func (s *stubBackend) call(ctx context.Context, p callParams) (string, string, error) {
	return s.fn(ctx, p)
}

func TestUnconfigured(t *testing.T) {
	c := Unconfigured(ErrMissingAPIKey)

	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskTimetable, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, c.Available(context.Background()))
}
