package careers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm/llmtest"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/server/middleware"
)

func newRouter(fake *llmtest.Fake, prof *profiles.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: "u1"})
		c.Next()
	})
	NewHandler(NewService(fake, prof, nil, 0)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func call(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/careers/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRecommendationsEndpoint(t *testing.T) {
	fake := llmtest.NewFake(threePaths)
	prof := profiles.NewService(profiles.NewMemoryRepo())
	r := newRouter(fake, prof)

	resp := call(r, "")
	if resp.Code != http.StatusUnprocessableEntity || !strings.Contains(resp.Body.String(), "profile_incomplete") {
		t.Fatalf("expected profile_incomplete, got %d: %s", resp.Code, resp.Body.String())
	}

	completeProfile(t, prof, "u1")
	resp = call(r, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out Result
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || len(out.CareerPaths) != 3 {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if !strings.Contains(fake.LastRequest().Prompt, "Consider Technologies: Yes") {
		t.Fatalf("considerTechnologies should default to true")
	}

	resp = call(r, `{"considerTechnologies":false}`)
	if resp.Code != http.StatusOK || !strings.Contains(fake.LastRequest().Prompt, "Consider Technologies: No") {
		t.Fatalf("expected considerTechnologies=false to be honored, got %d", resp.Code)
	}

	if resp := call(r, `{"considerTechnologies":`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", resp.Code)
	}

	fake.Responses = []string{"sorry"}
	if resp := call(r, `{"considerTechnologies":true}`); resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}
