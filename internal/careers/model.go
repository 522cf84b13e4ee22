package careers

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	minPaths = 3
	maxPaths = 5
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrProvider          = errors.New("career recommendation provider failed")
	ErrInvalidOutput     = errors.New("career recommendation returned invalid output")
)

// Input is what the recommendation is based on.
type Input struct {
	Skills               string
	Experience           string
	Interests            string
	ConsiderTechnologies bool
}

// CareerPath is one recommended path with its roadmap.
type CareerPath struct {
	CareerPath                      string  `json:"careerPath"`
	JobGrowthPercentage             float64 `json:"jobGrowthPercentage"`
	AverageSalary                   float64 `json:"averageSalary"`
	DemandRating                    string  `json:"demandRating"`
	MissingSkills                   string  `json:"missingSkills"`
	SuggestedProjects               string  `json:"suggestedProjects"`
	RelevantNetworkingOpportunities string  `json:"relevantNetworkingOpportunities"`
}

// Result is the recommendation response.
type Result struct {
	CareerPaths []CareerPath `json:"careerPaths"`
	Cached      bool         `json:"cached"`
}

// looseNumber accepts 12, 12.5, "12%", "$95,000" or null.
type looseNumber float64

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = looseNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*n = 0
		return nil
	}
	m := numberPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		*n = 0
		return nil
	}
	f, _ = strconv.ParseFloat(m, 64)
	lower := strings.ToLower(s)
	if strings.HasSuffix(strings.TrimSpace(lower), "k") {
		f *= 1000
	}
	*n = looseNumber(f)
	return nil
}

// looseText accepts a string or a list of strings.
type looseText string

func (t *looseText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = looseText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = looseText(strings.Join(list, "\n"))
		return nil
	}
	*t = ""
	return nil
}
