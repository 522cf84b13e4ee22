package insights

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/profiles"
	"career-backend/internal/shared/server/middleware"
)

func TestInsightsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: "u1", Name: "Jane", Email: "jane@example.com"})
		c.Next()
	})
	NewHandler(NewService(d, profiles.NewService(profiles.NewMemoryRepo()))).RegisterRoutes(r.Group("/api/v1"))

	for _, path := range []string{"/api/v1/dashboard", "/api/v1/insights/trends", "/api/v1/progress", "/api/v1/roadmap"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["welcomeName"] != "Jane" || body["completionPercent"] != float64(40) {
		t.Fatalf("unexpected dashboard body %v", body)
	}
	if _, ok := body["atsScore"]; !ok {
		t.Fatalf("atsScore should be present (null) on the dashboard")
	}
}
