package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/timetabler/internal/llm"
)

// FakeLLM is an llm.LLMClient that answers from a script. Responses are
// keyed by a substring of the user prompt; Default answers everything else.
type FakeLLM struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Default   string
	Calls     []llm.GenerateRequest
	Down      bool
}

// NewFakeLLM returns a fake that answers every prompt with SampleTable.
func NewFakeLLM() *FakeLLM {
	return &FakeLLM{
		Responses: map[string]string{},
		Errors:    map[string]error{},
		Default:   SampleTable,
	}
}

func (f *FakeLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, llm.ErrTimeout
	}
	for key, err := range f.Errors {
		if strings.Contains(req.UserPrompt, key) {
			return nil, err
		}
	}
	for key, text := range f.Responses {
		if strings.Contains(req.UserPrompt, key) {
			return &llm.GenerateResponse{Text: text, Model: "fake"}, nil
		}
	}
	return &llm.GenerateResponse{Text: f.Default, Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return !f.Down }

// CallCount returns the number of Generate calls so far.
func (f *FakeLLM) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
