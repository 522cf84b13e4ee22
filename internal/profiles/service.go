package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// Identity is the authenticated caller as far as profiles care.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// View is a profile plus whether it has been saved before.
type View struct {
	Profile Profile `json:"profile"`
	Exists  bool    `json:"exists"`
}

// NotificationsPatch is a partial update of NotificationSettings.
type NotificationsPatch struct {
	WeeklySummary *bool `json:"weeklySummary"`
	JobAlerts     *bool `json:"jobAlerts"`
}

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ready(userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("profiles service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return nil
}

// Get returns the stored profile, or an unsaved profile prefilled from the identity.
func (s *Service) Get(ctx context.Context, id Identity) (View, error) {
	if err := s.ready(id.UserID); err != nil {
		return View{}, err
	}
	p, err := s.Repo.Get(ctx, id.UserID)
	if err == nil {
		return View{Profile: p, Exists: true}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return View{}, err
	}
	return View{
		Profile: Profile{UserID: id.UserID, Name: id.Name, Email: id.Email},
		Exists:  false,
	}, nil
}

// Load returns the stored profile or ErrNotFound.
func (s *Service) Load(ctx context.Context, userID string) (Profile, error) {
	if err := s.ready(userID); err != nil {
		return Profile{}, err
	}
	return s.Repo.Get(ctx, userID)
}

// Create stores a profile seeded from the identity when none exists yet.
func (s *Service) Create(ctx context.Context, id Identity) (Profile, error) {
	if err := s.ready(id.UserID); err != nil {
		return Profile{}, err
	}
	return s.Repo.Update(ctx, id.UserID, func(p *Profile) error {
		seed(p, id)
		return nil
	})
}

// Save merges patch into the caller's profile. Email always comes from the identity.
func (s *Service) Save(ctx context.Context, id Identity, patch Patch) (Profile, error) {
	if err := s.ready(id.UserID); err != nil {
		return Profile{}, err
	}
	if patch.empty() {
		return Profile{}, fmt.Errorf("%w: no profile fields supplied", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, id.UserID, func(p *Profile) error {
		seed(p, id)
		patch.apply(p)
		return nil
	})
}

// UpdateNotifications merges the notification block only.
func (s *Service) UpdateNotifications(ctx context.Context, id Identity, patch NotificationsPatch) (Profile, error) {
	if err := s.ready(id.UserID); err != nil {
		return Profile{}, err
	}
	if patch.WeeklySummary == nil && patch.JobAlerts == nil {
		return Profile{}, fmt.Errorf("%w: no notification settings supplied", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, id.UserID, func(p *Profile) error {
		seed(p, id)
		if patch.WeeklySummary != nil {
			p.Notifications.WeeklySummary = *patch.WeeklySummary
		}
		if patch.JobAlerts != nil {
			p.Notifications.JobAlerts = *patch.JobAlerts
		}
		return nil
	})
}

// SetATSScore stores the latest resume ATS score.
func (s *Service) SetATSScore(ctx context.Context, id Identity, score int) (Profile, error) {
	if err := s.ready(id.UserID); err != nil {
		return Profile{}, err
	}
	if score < 0 || score > 100 {
		return Profile{}, fmt.Errorf("%w: ats score must be between 0 and 100", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, id.UserID, func(p *Profile) error {
		seed(p, id)
		p.ATSScore = &score
		return nil
	})
}

// ApplyResume overwrites skills and experience with values extracted from a resume.
// Empty values leave the stored field unchanged.
func (s *Service) ApplyResume(ctx context.Context, id Identity, skills []string, experience string) (Profile, error) {
	if err := s.ready(id.UserID); err != nil {
		return Profile{}, err
	}
	joined := JoinSkills(skills)
	experience = strings.TrimSpace(experience)
	return s.Repo.Update(ctx, id.UserID, func(p *Profile) error {
		seed(p, id)
		if joined != "" {
			p.Skills = joined
		}
		if experience != "" {
			p.Experience = experience
		}
		return nil
	})
}

// Delete removes the profile. A missing profile is not an error.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.ready(userID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func seed(p *Profile, id Identity) {
	if strings.TrimSpace(id.Email) != "" {
		p.Email = strings.TrimSpace(id.Email)
	}
	if p.Name == "" {
		p.Name = strings.TrimSpace(id.Name)
	}
}
