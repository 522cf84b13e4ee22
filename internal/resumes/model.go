package resumes

import (
	"encoding/json"
	"errors"
	"strings"

	"career-backend/internal/profiles"
)

// Action selects what happens to the caller's profile after an analysis.
type Action string

const (
	// ActionUpdate merges extracted skills and experience into the profile.
	ActionUpdate Action = "update"
	// ActionScore computes an ATS score and stores it on the profile.
	ActionScore Action = "score"
)

const (
	MaxUploadBytes = 10 << 20
	// maxPromptChars bounds the resume text sent to the model.
	maxPromptChars = 30000
	maxSkills      = 60
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnsupported   = errors.New("unsupported resume file")
	ErrUnreadable    = errors.New("resume has no readable text")
	ErrProvider      = errors.New("resume analysis provider failed")
	ErrInvalidOutput = errors.New("resume analysis returned invalid output")
)

// ParseAction maps the form value to an Action. Empty means update.
func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ActionUpdate:
		return ActionUpdate, nil
	case ActionScore:
		return ActionScore, nil
	default:
		return "", ErrInvalidInput
	}
}

// Analysis is the validated model output.
type Analysis struct {
	Skills         []string `json:"skills"`
	Experience     string   `json:"experience"`
	Education      string   `json:"education"`
	ATSScore       *int     `json:"atsScore,omitempty"`
	ATSSuggestions string   `json:"atsSuggestions,omitempty"`
}

// Result is returned to the caller of an upload.
type Result struct {
	Action         Action            `json:"action"`
	Analysis       Analysis          `json:"analysis"`
	ProfileUpdated bool              `json:"profileUpdated"`
	Profile        *profiles.Profile `json:"profile,omitempty"`
	StorageKey     string            `json:"-"`
}

// flexText accepts a JSON string, a list of strings or null.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = flexText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = flexText(strings.Join(list, "\n"))
	return nil
}

// flexList accepts a list of strings or a single comma separated string.
type flexList []string

func (l *flexList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = profiles.SplitSkills(s)
	return nil
}
