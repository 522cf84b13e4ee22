package careers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"career-backend/internal/llm"
)

type rawPath struct {
	CareerPath                      looseText   `json:"careerPath"`
	JobGrowthPercentage             looseNumber `json:"jobGrowthPercentage"`
	AverageSalary                   looseNumber `json:"averageSalary"`
	DemandRating                    looseText   `json:"demandRating"`
	MissingSkills                   looseText   `json:"missingSkills"`
	SuggestedProjects               looseText   `json:"suggestedProjects"`
	RelevantNetworkingOpportunities looseText   `json:"relevantNetworkingOpportunities"`
}

// ParsePaths accepts a bare JSON array or an object wrapping careerPaths.
// Entries without a name are dropped and at most five are kept.
func ParsePaths(raw string) ([]CareerPath, error) {
	body := []byte(llm.StripCodeFence(raw))
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty reply", ErrInvalidOutput)
	}

	var items []rawPath
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	case '{':
		var wrapped struct {
			CareerPaths []rawPath `json:"careerPaths"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		items = wrapped.CareerPaths
	default:
		return nil, fmt.Errorf("%w: reply is not JSON", ErrInvalidOutput)
	}

	out := make([]CareerPath, 0, maxPaths)
	for _, item := range items {
		name := strings.TrimSpace(string(item.CareerPath))
		if name == "" {
			continue
		}
		out = append(out, CareerPath{
			CareerPath:                      name,
			JobGrowthPercentage:             float64(item.JobGrowthPercentage),
			AverageSalary:                   float64(item.AverageSalary),
			DemandRating:                    strings.TrimSpace(string(item.DemandRating)),
			MissingSkills:                   strings.TrimSpace(string(item.MissingSkills)),
			SuggestedProjects:               strings.TrimSpace(string(item.SuggestedProjects)),
			RelevantNetworkingOpportunities: strings.TrimSpace(string(item.RelevantNetworkingOpportunities)),
		})
		if len(out) == maxPaths {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no career paths", ErrInvalidOutput)
	}
	return out, nil
}
