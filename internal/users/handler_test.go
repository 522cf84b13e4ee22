package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
)

func newRouter(svc *Service, identity middleware.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if identity.UserID != "" {
			middleware.SetIdentity(c, identity)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestMeReturnsStoredUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	user, err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1", Email: "g@b.co", FullName: "G"})
	if err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	r := newRouter(svc, middleware.Identity{UserID: user.ID})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["email"] != "g@b.co" || body["provider"] != ProviderGoogle {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMeFallsBackToTokenClaims(t *testing.T) {
	r := newRouter(NewService(NewMemoryRepo()), middleware.Identity{UserID: "u-9", Email: "t@b.co", Name: "T"})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["id"] != "u-9" || body["fullName"] != "T" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMeRequiresIdentity(t *testing.T) {
	r := newRouter(NewService(NewMemoryRepo()), middleware.Identity{})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
