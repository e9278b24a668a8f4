package llm

import (
	"os"
	"strconv"
	"strings"
)

// Provider names the hosted or local model service to talk to.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskTimetable TaskType = "timetable"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   Provider
	LogCalls   bool
	Endpoint   string // empty uses the provider default
	Model      string // empty uses the provider default
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig for OpenAI gpt-4o at temperature 0.7
// with a 2000 token cap. Failed calls are not retried.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOpenAI,
		LogCalls:   true,
		TimeoutMs:  120000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskTimetable: {Temperature: 0.7, MaxTokens: 2000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMETABLER_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("TIMETABLER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMETABLER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TIMETABLER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = os.Getenv("TIMETABLER_LLM_API_KEY")
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if v := os.Getenv("TIMETABLER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TIMETABLER_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	tc := cfg.Tasks[TaskTimetable]
	if v := os.Getenv("TIMETABLER_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			tc.Temperature = f
		}
	}
	if v := os.Getenv("TIMETABLER_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc.MaxTokens = n
		}
	}
	cfg.Tasks[TaskTimetable] = tc

	return cfg
}

// ModelName returns the configured model or the provider default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return "gemini-2.5-pro"
	case ProviderOllama:
		return "llama3.2"
	default:
		return "gpt-4o"
	}
}

// BaseURL returns the configured endpoint or the provider default.
// An empty result lets the provider SDK pick its own.
func (c LLMConfig) BaseURL() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	if c.Provider == ProviderOllama {
		return "http://localhost:11434"
	}
	return ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
