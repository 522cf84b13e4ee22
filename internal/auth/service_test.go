package auth

import (
	"context"
	"errors"
	"testing"

	"career-backend/internal/profiles"
	sharedauth "career-backend/internal/shared/auth"
	"career-backend/internal/users"
)

func newTestService() (*Service, *profiles.Service) {
	prof := profiles.NewService(profiles.NewMemoryRepo())
	return NewService(users.NewService(users.NewMemoryRepo()), prof), prof
}

func TestSignupCreatesProfileAndToken(t *testing.T) {
	svc, prof := newTestService()
	ctx := context.Background()

	session, err := svc.Signup(ctx, users.SignupInput{Name: "Jane Doe", Email: "Jane@Example.com", Password: "secret1!x"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	claims, err := sharedauth.VerifyJWT(session.Token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != session.User.ID || claims.Email != "jane@example.com" || claims.Name != "Jane Doe" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	p, err := prof.Load(ctx, session.User.ID)
	if err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if p.Name != "Jane Doe" || p.Email != "jane@example.com" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, users.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "secret1!x"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	session, err := svc.Login(ctx, "jane@example.com", "secret1!x")
	if err != nil || session.Token == "" {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.Login(ctx, "jane@example.com", "wrong1!xx"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1!x"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestCompleteOAuthKeepsExistingProfile(t *testing.T) {
	svc, prof := newTestService()
	ctx := context.Background()

	local, err := svc.Signup(ctx, users.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "secret1!x"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	skills := "Go"
	if _, err := prof.Save(ctx, profiles.Identity{UserID: local.User.ID, Email: "jane@example.com"}, profiles.Patch{Skills: &skills}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	session, err := svc.CompleteOAuth(ctx, users.User{ID: "google:123", Email: "jane@example.com", FullName: "Jane G", Provider: users.ProviderGoogle})
	if err != nil {
		t.Fatalf("CompleteOAuth: %v", err)
	}
	if session.User.ID != local.User.ID {
		t.Fatalf("expected Google sign-in to link to the existing account")
	}
	p, err := prof.Load(ctx, local.User.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Skills != "Go" || p.Name != "Jane" {
		t.Fatalf("existing profile must be kept, got %+v", p)
	}
}
