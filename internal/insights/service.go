package insights

import (
	"context"
	"errors"
	"strings"

	"career-backend/internal/profiles"
)

// ProfileViewer reads the caller's profile, saved or not.
type ProfileViewer interface {
	Get(ctx context.Context, id profiles.Identity) (profiles.View, error)
}

type Service struct {
	Data     Dataset
	Profiles ProfileViewer
}

func NewService(data Dataset, viewer ProfileViewer) *Service {
	return &Service{Data: data, Profiles: viewer}
}

// Dashboard is the landing page payload.
type Dashboard struct {
	WelcomeName string `json:"welcomeName"`
	profiles.Summary
	JobTrends  []Count      `json:"jobTrends"`
	ActionPlan []ActionItem `json:"actionPlan"`
}

// Trends is the market insights payload.
type Trends struct {
	TargetRole      string       `json:"targetRole"`
	InDemandSkills  []Metric     `json:"inDemandSkills"`
	HiringCompanies []Count      `json:"hiringCompanies"`
	SalaryBands     []SalaryBand `json:"salaryBands"`
}

// Dashboard combines the caller's profile summary with demo trends and an action plan.
func (s *Service) Dashboard(ctx context.Context, id profiles.Identity) (Dashboard, error) {
	if s == nil || s.Profiles == nil {
		return Dashboard{}, errors.New("insights service not configured")
	}
	view, err := s.Profiles.Get(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}
	p := view.Profile
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "User"
	}
	return Dashboard{
		WelcomeName: name,
		Summary:     profiles.Summarize(p),
		JobTrends:   s.Data.JobTrends,
		ActionPlan:  ActionPlanFor(s.Data.ActionPlan, p),
	}, nil
}

func (s *Service) Trends() Trends {
	return Trends{
		TargetRole:      s.Data.TargetRole,
		InDemandSkills:  s.Data.InDemandSkills,
		HiringCompanies: s.Data.HiringCompanies,
		SalaryBands:     s.Data.SalaryBands,
	}
}

func (s *Service) Progress() Progress { return s.Data.Progress }

func (s *Service) Roadmap() Roadmap { return s.Data.Roadmap }

// ActionPlanFor keeps the items whose condition holds for p.
func ActionPlanFor(items []ActionItem, p profiles.Profile) []ActionItem {
	out := make([]ActionItem, 0, len(items))
	for _, item := range items {
		var keep bool
		switch item.When {
		case WhenAlways:
			keep = true
		case WhenProfileIncomplete:
			keep = !p.Complete()
		case WhenProfileComplete:
			keep = p.Complete()
		case WhenNoATSScore:
			keep = p.ATSScore == nil
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
