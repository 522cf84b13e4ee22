package careers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"career-backend/internal/llm"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/cache"
	"career-backend/internal/shared/telemetry"
)

const cacheNamespace = "careers:v1"

// Cache is the subset of cache.Redis the service uses.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ProfileLoader reads the caller's stored profile.
type ProfileLoader interface {
	Load(ctx context.Context, userID string) (profiles.Profile, error)
}

type Service struct {
	LLM      llm.Client
	Profiles ProfileLoader
	Cache    Cache
	TTL      time.Duration
}

func NewService(client llm.Client, loader ProfileLoader, c Cache, ttl time.Duration) *Service {
	return &Service{LLM: client, Profiles: loader, Cache: c, TTL: ttl}
}

// Recommend builds recommendations from the caller's stored profile.
func (s *Service) Recommend(ctx context.Context, userID string, considerTechnologies bool) (Result, error) {
	if s == nil || s.Profiles == nil {
		return Result{}, errors.New("careers service not configured")
	}
	p, err := s.Profiles.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return Result{}, ErrProfileIncomplete
		}
		return Result{}, fmt.Errorf("load profile: %w", err)
	}
	if !p.Complete() {
		return Result{}, ErrProfileIncomplete
	}
	return s.RecommendFor(ctx, Input{
		Skills:               p.Skills,
		Experience:           p.Experience,
		Interests:            p.Interests,
		ConsiderTechnologies: considerTechnologies,
	})
}

// RecommendFor asks the model for career paths, consulting the cache first.
func (s *Service) RecommendFor(ctx context.Context, in Input) (Result, error) {
	if s == nil || s.LLM == nil {
		return Result{}, errors.New("careers service not configured")
	}
	in.Skills = strings.TrimSpace(in.Skills)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Interests = strings.TrimSpace(in.Interests)
	if in.Skills == "" || in.Experience == "" || in.Interests == "" {
		return Result{}, fmt.Errorf("%w: skills, experience and interests are required", ErrInvalidInput)
	}

	key := cache.Key(cacheNamespace, in.Skills, in.Experience, in.Interests, strconv.FormatBool(in.ConsiderTechnologies))
	if s.Cache != nil {
		var cached []CareerPath
		hit, err := s.Cache.GetJSON(ctx, key, &cached)
		if err == nil && hit && len(cached) > 0 {
			telemetry.Info("careers.cache_hit", map[string]any{"paths": len(cached)})
			return Result{CareerPaths: cached, Cached: true}, nil
		}
	}

	raw, err := s.LLM.Complete(ctx, llm.Request{
		Feature: "careers",
		System:  systemInstruction,
		Prompt:  BuildPrompt(in),
		Format:  llm.FormatJSON,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	paths, err := ParsePaths(raw)
	if err != nil {
		return Result{}, err
	}
	if len(paths) < minPaths {
		telemetry.Warn("careers.few_paths", map[string]any{"paths": len(paths)})
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, paths, s.TTL); err != nil {
			telemetry.Warn("careers.cache_set_failed", map[string]any{"error": err})
		}
	}
	return Result{CareerPaths: paths}, nil
}
