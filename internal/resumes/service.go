package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"career-backend/internal/extract"
	"career-backend/internal/llm"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
)

// ProfileWriter is the part of the profiles service the analyzer writes to.
type ProfileWriter interface {
	ApplyResume(ctx context.Context, id profiles.Identity, skills []string, experience string) (profiles.Profile, error)
	SetATSScore(ctx context.Context, id profiles.Identity, score int) (profiles.Profile, error)
}

// Service stores uploaded resumes, extracts their text and asks a model to analyze it.
type Service struct {
	Store    object.ObjectStore
	LLM      llm.Client
	Profiles ProfileWriter
}

func NewService(store object.ObjectStore, client llm.Client, writer ProfileWriter) *Service {
	return &Service{Store: store, LLM: client, Profiles: writer}
}

// AnalyzeInput is one uploaded resume.
type AnalyzeInput struct {
	UserID   string
	Name     string
	Email    string
	FileName string
	Action   Action
	Body     io.Reader
}

func (in AnalyzeInput) identity() profiles.Identity {
	return profiles.Identity{UserID: in.UserID, Name: in.Name, Email: in.Email}
}

// Analyze stores the upload, analyzes it and applies the action to the caller's profile.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (Result, error) {
	if s == nil || s.Store == nil || s.LLM == nil {
		return Result{}, errors.New("resume service not configured")
	}
	in.FileName = strings.TrimSpace(in.FileName)
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return Result{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case in.FileName == "" || in.Body == nil:
		return Result{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	case in.Action != ActionUpdate && in.Action != ActionScore:
		return Result{}, fmt.Errorf("%w: action must be update or score", ErrInvalidInput)
	case !extract.SupportedExtension(in.FileName):
		return Result{}, fmt.Errorf("%w: use a .pdf, .docx or .txt file", ErrUnsupported)
	}

	key, size, mimeType, err := s.Store.Save(ctx, in.UserID, in.FileName, in.Body)
	if err != nil {
		return Result{}, fmt.Errorf("store resume: %w", err)
	}
	telemetry.Info("resume.stored", map[string]any{
		"user_id":    in.UserID,
		"size_bytes": size,
		"mime_type":  mimeType,
	})

	text, err := extract.ExtractText(ctx, s.Store, key, mimeType, in.FileName)
	if err != nil {
		s.discard(ctx, in.UserID, key)
		return Result{}, mapExtractError(err)
	}

	analysis, err := s.AnalyzeText(ctx, text, in.Action == ActionScore)
	if err != nil {
		s.discard(ctx, in.UserID, key)
		return Result{}, err
	}

	res := Result{Action: in.Action, Analysis: analysis, StorageKey: key}
	if s.Profiles == nil {
		return res, nil
	}

	var updated profiles.Profile
	switch in.Action {
	case ActionUpdate:
		if len(analysis.Skills) == 0 && analysis.Experience == "" {
			return res, nil
		}
		updated, err = s.Profiles.ApplyResume(ctx, in.identity(), analysis.Skills, analysis.Experience)
	case ActionScore:
		if analysis.ATSScore == nil || *analysis.ATSScore <= 0 {
			return res, nil
		}
		updated, err = s.Profiles.SetATSScore(ctx, in.identity(), *analysis.ATSScore)
	}
	if err != nil {
		s.discard(ctx, in.UserID, key)
		return Result{}, fmt.Errorf("update profile: %w", err)
	}
	res.ProfileUpdated = true
	res.Profile = &updated
	return res, nil
}

// discard removes an upload whose analysis failed.
func (s *Service) discard(ctx context.Context, userID, key string) {
	if err := s.Store.Delete(context.WithoutCancel(ctx), key); err != nil {
		telemetry.Warn("resume.discard_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

// AnalyzeText runs the model over already extracted resume text.
func (s *Service) AnalyzeText(ctx context.Context, text string, score bool) (Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Analysis{}, ErrUnreadable
	}
	raw, err := s.LLM.Complete(ctx, llm.Request{
		Feature: "resume",
		System:  systemInstruction,
		Prompt:  BuildPrompt(text, score),
		Format:  llm.FormatJSON,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return ParseAnalysis(raw, score)
}

func mapExtractError(err error) error {
	switch {
	case errors.Is(err, extract.ErrUnsupported):
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	case errors.Is(err, extract.ErrNoText):
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
}
