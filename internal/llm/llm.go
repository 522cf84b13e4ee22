package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// Format selects how the provider should shape its reply.
type Format int

const (
	// FormatText asks for free text.
	FormatText Format = iota
	// FormatJSON asks for a single JSON document.
	FormatJSON
)

// Request is one prompt sent to a model.
type Request struct {
	Feature string
	System  string
	Prompt  string
	Format  Format
}

// Client abstracts LLM providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is used when no provider credentials are present.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	return "", ErrNotConfigured
}

type observed struct {
	next     Client
	provider string
}

// Observe wraps a client with per-feature metrics and a log line per call.
func Observe(next Client, provider string) Client {
	return &observed{next: next, provider: provider}
}

func (o *observed) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := o.next.Complete(ctx, req)
	elapsed := time.Since(start)
	metrics.ObserveAI(req.Feature, elapsed, err)

	fields := map[string]any{
		"provider":    o.provider,
		"feature":     req.Feature,
		"duration_ms": elapsed.Milliseconds(),
		"prompt_len":  len(req.Prompt),
		"output_len":  len(out),
	}
	if err != nil {
		fields["error"] = err
		telemetry.Error("llm.complete_failed", fields)
		return "", err
	}
	telemetry.Info("llm.complete", fields)
	return out, nil
}

// StripCodeFence removes a surrounding markdown code fence from a model reply.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
