package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/shared/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// SignupInput carries the email/password registration form.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return nil
}

// Signup validates the form, hashes the password and creates a local account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return User{}, err
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		Provider:     ProviderLocal,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Login checks the password for email. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if err := s.Repo.TouchLogin(ctx, user.ID); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpsertFromAuth persists an identity returned by an OAuth provider. When a local account
// already owns the email, that account is returned so both sign-in methods share one user.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return User{}, errors.New("user id and email are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil && existing.ID != user.ID:
		if existing.PictureURL == "" && user.PictureURL != "" {
			existing.PictureURL = user.PictureURL
			if err := s.Repo.Upsert(ctx, existing); err != nil {
				return User{}, err
			}
		}
		user = existing
	case err == nil || errors.Is(err, ErrNotFound):
		if user.Provider == "" {
			user.Provider = ProviderGoogle
		}
		if err := s.Repo.Upsert(ctx, user); err != nil {
			return User{}, err
		}
	default:
		return User{}, err
	}

	if err := s.Repo.TouchLogin(ctx, user.ID); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Delete removes the account. A missing user is not an error.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return email, nil
}
