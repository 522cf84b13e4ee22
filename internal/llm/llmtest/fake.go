// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"career-backend/internal/llm"
)

// Fake returns scripted replies in order and records every request.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Requests  []llm.Request
}

// NewFake builds a Fake that replies with responses in order. The last reply repeats.
func NewFake(responses ...string) *Fake {
	return &Fake{Responses: responses}
}

// Complete implements llm.Client.
func (f *Fake) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return "", f.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	out := f.Responses[0]
	if len(f.Responses) > 1 {
		f.Responses = f.Responses[1:]
	}
	return out, nil
}

// Calls returns the number of requests seen.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastRequest returns the most recent request.
func (f *Fake) LastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return llm.Request{}
	}
	return f.Requests[len(f.Requests)-1]
}

var _ llm.Client = (*Fake)(nil)
