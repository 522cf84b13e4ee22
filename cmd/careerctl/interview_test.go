package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"career-backend/internal/interview"
	"career-backend/internal/llm/llmtest"
)

func TestRunInterviewLoop(t *testing.T) {
	fake := llmtest.NewFake(
		"<question>Why Go?</question><context>Q1 why go</context>",
		"<feedback>Clear answer.</feedback><question>Describe a bug you fixed.</question><context>Q1 why go\nQ2 bug</context>",
	)
	in := strings.NewReader("\nBecause it is simple.\nquit\n")
	var out bytes.Buffer

	transcript, err := runInterview(context.Background(), interview.NewService(fake), in, &out, "Backend Engineer", "mid")
	if err != nil {
		t.Fatalf("runInterview: %v", err)
	}
	if len(transcript) != 3 || transcript[1].Content != "Because it is simple." || transcript[2].Feedback != "Clear answer." {
		t.Fatalf("unexpected transcript %+v", transcript)
	}

	got := out.String()
	for _, want := range []string{
		"Interviewer: Why Go?",
		"Feedback: Clear answer.",
		"Interviewer: Describe a bug you fixed.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if fake.Calls() != 2 {
		t.Fatalf("expected 2 llm calls, got %d", fake.Calls())
	}
	if !strings.Contains(fake.LastRequest().Prompt, "Q1 why go") {
		t.Fatalf("expected previous context in prompt: %q", fake.LastRequest().Prompt)
	}
}

func TestRunInterviewEndsOnEOF(t *testing.T) {
	fake := llmtest.NewFake("<question>First?</question>")
	var out bytes.Buffer
	if _, err := runInterview(context.Background(), interview.NewService(fake), strings.NewReader(""), &out, "Designer", "entry"); err != nil {
		t.Fatalf("runInterview: %v", err)
	}
	if fake.Calls() != 1 {
		t.Fatalf("expected only the opening call, got %d", fake.Calls())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "careerctl dev" {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
