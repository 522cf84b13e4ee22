package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "LLM_PROVIDER", "LLM_MODEL", "CACHE_TTL", "OBJECT_STORE", "AI_RATE_BURST"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected gemini provider, got %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.LLMModel)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected cache ttl %s", cfg.CacheTTL)
	}
	if cfg.AIRateBurst != 5 {
		t.Fatalf("unexpected burst %d", cfg.AIRateBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("CACHE_TTL", "90")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test, ,http://b.test ")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "openai" || cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("unexpected provider/model %q/%q", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("unexpected cache ttl %s", cfg.CacheTTL)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
}

func TestIsDevLike(t *testing.T) {
	if !IsDevLike(" Local ") || !IsDevLike("dev") {
		t.Fatalf("expected dev-like")
	}
	if IsDevLike("production") {
		t.Fatalf("production must not be dev-like")
	}
}
