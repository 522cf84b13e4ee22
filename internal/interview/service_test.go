package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"career-backend/internal/llm"
	"career-backend/internal/llm/llmtest"
)

func TestStartSendsTextPrompt(t *testing.T) {
	fake := llmtest.NewFake("<question>Tell me about a project.</question><context>Q1 project</context>")
	svc := NewService(fake)

	out, err := svc.Start(context.Background(), " Backend Engineer ", "senior")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if out.Question != "Tell me about a project." || out.InterviewContext != "Q1 project" || out.Feedback != "" {
		t.Fatalf("unexpected output %+v", out)
	}

	req := fake.LastRequest()
	if req.Format != llm.FormatText || req.Feature != "interview" {
		t.Fatalf("unexpected request %+v", req)
	}
	if !strings.Contains(req.Prompt, "Backend Engineer (Senior-level)") {
		t.Fatalf("expected normalized role and level in prompt:\n%s", req.Prompt)
	}
}

func TestTurnRoundTripsContext(t *testing.T) {
	fake := llmtest.NewFake(
		"<question>Q1?</question><context>ctx-1</context>",
		"<feedback>Nice.</feedback><question>Q2?</question><context>ctx-2</context>",
	)
	svc := NewService(fake)
	ctx := context.Background()

	first, err := svc.Start(ctx, "SRE", "Mid-level")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	second, err := svc.Turn(ctx, TurnInput{
		JobRole:         "SRE",
		ExperienceLevel: "Mid-level",
		PreviousContext: first.InterviewContext,
		UserResponse:    "I'd check the dashboards.",
	})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if second.Feedback != "Nice." || second.Question != "Q2?" || second.InterviewContext != "ctx-2" {
		t.Fatalf("unexpected output %+v", second)
	}
	if !strings.Contains(fake.LastRequest().Prompt, "Previous Context:\nctx-1") {
		t.Fatalf("expected previous context in second prompt")
	}
}

func TestTurnWithoutContextIsOpening(t *testing.T) {
	fake := llmtest.NewFake("<question>First question?</question><context>Q1</context>")
	svc := NewService(fake)

	out, err := svc.Turn(context.Background(), TurnInput{
		JobRole:         "SRE",
		ExperienceLevel: "Mid-level",
		UserResponse:    "stray answer",
	})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if out.Feedback != "" {
		t.Fatalf("opening turn must not carry feedback, got %q", out.Feedback)
	}
	prompt := fake.LastRequest().Prompt
	if strings.Contains(prompt, "stray answer") || !strings.Contains(prompt, "This is the beginning of the interview.") {
		t.Fatalf("expected opening prompt without the response:\n%s", prompt)
	}
}

func TestTurnValidation(t *testing.T) {
	fake := llmtest.NewFake("<question>Q</question>")
	svc := NewService(fake)

	tests := []struct {
		name string
		in   TurnInput
	}{
		{name: "missing role", in: TurnInput{ExperienceLevel: "Mid-level"}},
		{name: "missing level", in: TurnInput{JobRole: "SRE", ExperienceLevel: "  "}},
		{name: "continuation without response", in: TurnInput{JobRole: "SRE", ExperienceLevel: "Mid-level", PreviousContext: "ctx"}},
		{name: "role too long", in: TurnInput{JobRole: strings.Repeat("r", 201), ExperienceLevel: "Mid-level"}},
		{name: "response too long", in: TurnInput{JobRole: "SRE", ExperienceLevel: "Mid-level", UserResponse: strings.Repeat("a", 8001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Turn(context.Background(), tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if fake.Calls() != 0 {
		t.Fatalf("invalid input must not reach the model")
	}
}

func TestTurnProviderErrorIsNotRetried(t *testing.T) {
	fake := llmtest.NewFake()
	fake.Err = errors.New("upstream 500")
	svc := NewService(fake)

	_, err := svc.Start(context.Background(), "SRE", "Mid-level")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
	if fake.Calls() != 1 {
		t.Fatalf("expected exactly one model call, got %d", fake.Calls())
	}
}

func TestTurnCapsIncomingContext(t *testing.T) {
	fake := llmtest.NewFake("no tags at all")
	svc := NewService(fake)
	long := strings.Repeat("line of context\n", 2000)

	out, err := svc.Turn(context.Background(), TurnInput{
		JobRole:         "SRE",
		ExperienceLevel: "Mid-level",
		PreviousContext: long,
		UserResponse:    "answer",
	})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if len([]rune(out.InterviewContext)) > MaxContextChars {
		t.Fatalf("fallback context exceeded cap")
	}
	if out.Question != FallbackQuestion || out.Feedback != FallbackFeedback {
		t.Fatalf("expected fallbacks, got %+v", out)
	}
}
