package llm

import "errors"

var (
	// ErrUnavailable indicates the model service is unreachable.
	ErrUnavailable = errors.New("llm service unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrEmptyResponse indicates the model answered with no text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrMissingAPIKey indicates a hosted provider was selected without a key.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrUnknownProvider indicates TIMETABLER_LLM_PROVIDER names no known provider.
	ErrUnknownProvider = errors.New("unknown llm provider")
)
