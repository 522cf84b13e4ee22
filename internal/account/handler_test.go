package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/profiles"
	"career-backend/internal/shared/server/middleware"
	localstore "career-backend/internal/shared/storage/object/local"
	"career-backend/internal/users"
)

func TestDeleteAccountRemovesEverything(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	userRepo := users.NewMemoryRepo()
	profileRepo := profiles.NewMemoryRepo()
	store := localstore.New(t.TempDir())
	svc := NewService(userRepo, profileRepo, store)

	if err := userRepo.Create(ctx, users.User{ID: "user-1", Email: "jane@example.com", Provider: users.ProviderLocal}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := profileRepo.Update(ctx, "user-1", func(p *profiles.Profile) error {
		p.Name = "Jane"
		return nil
	}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	for _, name := range []string{"a.txt", "b.pdf"} {
		if _, _, _, err := store.Save(ctx, "user-1", name, strings.NewReader("resume")); err != nil {
			t.Fatalf("save object: %v", err)
		}
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: "user-1"})
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out DeleteResult
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Deleted || out.DeletedObjects != 2 {
		t.Fatalf("unexpected result %+v", out)
	}

	if _, err := userRepo.GetByID(ctx, "user-1"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	if _, err := profileRepo.Get(ctx, "user-1"); !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("profile should be gone, got %v", err)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("repeat delete should succeed, got %d", resp.Code)
	}
}

func TestDeleteAccountRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(users.NewMemoryRepo(), profiles.NewMemoryRepo(), nil)).RegisterRoutes(router.Group("/api/v1"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

type failingStore struct{ *localstore.Store }

func (failingStore) DeleteUser(ctx context.Context, userID string) (int, error) {
	return 0, errors.New("bucket unavailable")
}

func TestDeleteAccountKeepsRecordsWhenStorageFails(t *testing.T) {
	ctx := context.Background()
	userRepo := users.NewMemoryRepo()
	if err := userRepo.Create(ctx, users.User{ID: "user-1", Email: "a@b.co"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	svc := NewService(userRepo, profiles.NewMemoryRepo(), failingStore{localstore.New(t.TempDir())})

	if _, err := svc.Delete(ctx, "user-1"); err == nil {
		t.Fatalf("expected storage error")
	}
	if _, err := userRepo.GetByID(ctx, "user-1"); err != nil {
		t.Fatalf("user must survive a storage failure: %v", err)
	}
}
