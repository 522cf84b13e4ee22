package auth

import (
	"context"
	"errors"
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"career-backend/internal/profiles"
	sharedauth "career-backend/internal/shared/auth"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// ProfileCreator seeds a profile for a new account.
type ProfileCreator interface {
	Create(ctx context.Context, id profiles.Identity) (profiles.Profile, error)
}

// Service turns sign-ins into sessions: a user record, a seeded profile and a JWT.
type Service struct {
	Users    *users.Service
	Profiles ProfileCreator
}

func NewService(userSvc *users.Service, creator ProfileCreator) *Service {
	return &Service{Users: userSvc, Profiles: creator}
}

// Session is what a successful sign-in returns to the client.
type Session struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// Signup creates a local account and its profile.
func (s *Service) Signup(ctx context.Context, in users.SignupInput) (Session, error) {
	if s == nil || s.Users == nil {
		return Session{}, errors.New("auth service not configured")
	}
	user, err := s.Users.Signup(ctx, in)
	if err != nil {
		return Session{}, err
	}
	if err := s.seedProfile(ctx, user); err != nil {
		return Session{}, err
	}
	telemetry.Info("auth.signup", map[string]any{"user_id": user.ID, "provider": user.Provider})
	return s.session(user)
}

// Login checks a local password.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if s == nil || s.Users == nil {
		return Session{}, errors.New("auth service not configured")
	}
	user, err := s.Users.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.session(user)
}

// CompleteOAuth stores a provider identity and makes sure it has a profile.
func (s *Service) CompleteOAuth(ctx context.Context, identity users.User) (Session, error) {
	if s == nil || s.Users == nil {
		return Session{}, errors.New("auth service not configured")
	}
	user, err := s.Users.UpsertFromAuth(ctx, identity)
	if err != nil {
		return Session{}, err
	}
	if err := s.seedProfile(ctx, user); err != nil {
		return Session{}, err
	}
	telemetry.Info("auth.oauth_login", map[string]any{"user_id": user.ID, "provider": identity.Provider})
	return s.session(user)
}

func (s *Service) seedProfile(ctx context.Context, user users.User) error {
	if s.Profiles == nil {
		return nil
	}
	_, err := s.Profiles.Create(ctx, profiles.Identity{UserID: user.ID, Name: user.FullName, Email: user.Email})
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *Service) session(user users.User) (Session, error) {
	token, err := IssueToken(user)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}

// IssueToken signs a session JWT whose subject is the user id.
func IssueToken(user users.User) (string, error) {
	return sharedauth.SignJWT(sharedauth.Claims{
		Email:            user.Email,
		Name:             user.FullName,
		Picture:          user.PictureURL,
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: user.ID},
	})
}
