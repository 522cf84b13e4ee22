package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService()
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSignupAndLoginEndpoints(t *testing.T) {
	r := newAuthRouter()

	resp := postJSON(r, "/api/v1/auth/signup", `{"name":"Jane","email":"jane@example.com","password":"secret1!x"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var session Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil || session.Token == "" {
		t.Fatalf("expected token in %s", resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "passwordHash") || strings.Contains(resp.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked: %s", resp.Body.String())
	}

	resp = postJSON(r, "/api/v1/auth/signup", `{"name":"Jane","email":"JANE@example.com","password":"secret1!x"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate signup expected 409, got %d", resp.Code)
	}

	resp = postJSON(r, "/api/v1/auth/login", `{"email":"jane@example.com","password":"secret1!x"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login expected 200, got %d", resp.Code)
	}

	resp = postJSON(r, "/api/v1/auth/login", `{"email":"jane@example.com","password":"nope1!xyz"}`)
	if resp.Code != http.StatusUnauthorized || !strings.Contains(resp.Body.String(), "invalid_credentials") {
		t.Fatalf("bad password expected 401, got %d", resp.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	r := newAuthRouter()
	cases := map[string]string{
		"missing name":   `{"email":"a@b.co","password":"secret1!x"}`,
		"bad email":      `{"name":"A","email":"not-an-email","password":"secret1!x"}`,
		"weak password":  `{"name":"A","email":"a@b.co","password":"password"}`,
		"short password": `{"name":"A","email":"a@b.co","password":"a1!"}`,
		"bad character":  `{"name":"A","email":"a@b.co","password":"secret1!x#"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if resp := postJSON(r, "/api/v1/auth/signup", body); resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}
