package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"career-backend/internal/llm"
)

// Service runs stateless interview turns against a language model.
type Service struct {
	LLM llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Start opens an interview for role and level.
func (s *Service) Start(ctx context.Context, jobRole, experienceLevel string) (TurnOutput, error) {
	return s.Turn(ctx, TurnInput{JobRole: jobRole, ExperienceLevel: experienceLevel})
}

// Turn validates the input, asks the model once and parses its reply. There is no retry:
// a malformed reply degrades to fallbacks and a provider error is returned as ErrProvider.
func (s *Service) Turn(ctx context.Context, in TurnInput) (TurnOutput, error) {
	if s == nil || s.LLM == nil {
		return TurnOutput{}, errors.New("interview service not configured")
	}
	in, err := normalize(in)
	if err != nil {
		return TurnOutput{}, err
	}

	raw, err := s.LLM.Complete(ctx, llm.Request{
		Feature: "interview",
		System:  systemInstruction,
		Prompt:  BuildPrompt(in),
		Format:  llm.FormatText,
	})
	if err != nil {
		return TurnOutput{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return ParseReply(raw, in), nil
}

func normalize(in TurnInput) (TurnInput, error) {
	in.JobRole = strings.TrimSpace(in.JobRole)
	in.ExperienceLevel = NormalizeLevel(in.ExperienceLevel)
	in.UserResponse = strings.TrimSpace(in.UserResponse)
	in.PreviousContext = strings.TrimSpace(in.PreviousContext)

	switch {
	case in.JobRole == "" || in.ExperienceLevel == "":
		return in, fmt.Errorf("%w: job role and experience level are required", ErrInvalidInput)
	case utf8.RuneCountInString(in.JobRole) > maxJobRoleChars:
		return in, fmt.Errorf("%w: job role is too long", ErrInvalidInput)
	case utf8.RuneCountInString(in.ExperienceLevel) > maxLevelChars:
		return in, fmt.Errorf("%w: experience level is too long", ErrInvalidInput)
	case in.PreviousContext != "" && in.UserResponse == "":
		return in, fmt.Errorf("%w: a response is required to continue the interview", ErrInvalidInput)
	case utf8.RuneCountInString(in.UserResponse) > maxResponseChars:
		return in, fmt.Errorf("%w: response is too long", ErrInvalidInput)
	}

	// Without a context there is no question to answer yet.
	if in.Opening() {
		in.UserResponse = ""
	}
	in.PreviousContext = CapContext(in.PreviousContext, MaxContextChars)
	return in, nil
}
