package insights

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/insights.yaml
var defaultDataset []byte

type Count struct {
	Name string `yaml:"name" json:"name"`
	Jobs int    `yaml:"jobs" json:"jobs"`
}

type Metric struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
}

type SalaryBand struct {
	Level string `yaml:"level" json:"level"`
	Min   int    `yaml:"min" json:"min"`
	Max   int    `yaml:"max" json:"max"`
}

type SkillMastery struct {
	Name    string `yaml:"name" json:"name"`
	Mastery int    `yaml:"mastery" json:"mastery"`
}

type MonthlyReadiness struct {
	Month     string `yaml:"month" json:"month"`
	Readiness int    `yaml:"readiness" json:"readiness"`
}

type Progress struct {
	Readiness    int                `yaml:"readiness" json:"readiness"`
	SkillMastery []SkillMastery     `yaml:"skillMastery" json:"skillMastery"`
	Monthly      []MonthlyReadiness `yaml:"monthly" json:"monthly"`
}

type RoadmapItem struct {
	Title  string `yaml:"title" json:"title"`
	Source string `yaml:"source" json:"source"`
	Type   string `yaml:"type" json:"type"`
}

type RoadmapPhase struct {
	Title string        `yaml:"title" json:"title"`
	Items []RoadmapItem `yaml:"items" json:"items"`
}

type Roadmap struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	Phases      []RoadmapPhase `yaml:"phases" json:"phases"`
}

// Conditions for action plan items.
const (
	WhenAlways            = "always"
	WhenProfileIncomplete = "profile_incomplete"
	WhenProfileComplete   = "profile_complete"
	WhenNoATSScore        = "no_ats_score"
)

type ActionItem struct {
	Title  string `yaml:"title" json:"title"`
	Detail string `yaml:"detail" json:"detail"`
	Link   string `yaml:"link" json:"link"`
	When   string `yaml:"when" json:"-"`
}

// Dataset is the static market and learning data behind the dashboards.
type Dataset struct {
	TargetRole      string       `yaml:"targetRole"`
	JobTrends       []Count      `yaml:"jobTrends"`
	InDemandSkills  []Metric     `yaml:"inDemandSkills"`
	HiringCompanies []Count      `yaml:"hiringCompanies"`
	SalaryBands     []SalaryBand `yaml:"salaryBands"`
	Progress        Progress     `yaml:"progress"`
	Roadmap         Roadmap      `yaml:"roadmap"`
	ActionPlan      []ActionItem `yaml:"actionPlan"`
}

// Parse decodes and validates a YAML dataset.
func Parse(raw []byte) (Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Dataset{}, fmt.Errorf("decode insights dataset: %w", err)
	}
	if err := d.validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// Default returns the embedded dataset.
func Default() (Dataset, error) {
	return Parse(defaultDataset)
}

func (d Dataset) validate() error {
	if len(d.JobTrends) == 0 {
		return errors.New("insights dataset: jobTrends is empty")
	}
	for _, b := range d.SalaryBands {
		if b.Min > b.Max {
			return fmt.Errorf("insights dataset: salary band %q has min > max", b.Level)
		}
	}
	if d.Progress.Readiness < 0 || d.Progress.Readiness > 100 {
		return errors.New("insights dataset: readiness must be between 0 and 100")
	}
	for _, a := range d.ActionPlan {
		switch a.When {
		case WhenAlways, WhenProfileIncomplete, WhenProfileComplete, WhenNoATSScore:
		default:
			return fmt.Errorf("insights dataset: unknown action condition %q", a.When)
		}
	}
	return nil
}
