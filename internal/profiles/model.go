package profiles

import (
	"math"
	"strings"
	"time"
)

// NotificationSettings holds the user's email preferences.
type NotificationSettings struct {
	WeeklySummary bool `json:"weeklySummary"`
	JobAlerts     bool `json:"jobAlerts"`
}

// Profile is the user's self-reported career data.
type Profile struct {
	UserID        string               `json:"userId"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Skills        string               `json:"skills"`
	Experience    string               `json:"experience"`
	Interests     string               `json:"interests"`
	ATSScore      *int                 `json:"atsScore,omitempty"`
	Notifications NotificationSettings `json:"notifications"`
	CreatedAt     time.Time            `json:"createdAt,omitempty"`
	UpdatedAt     time.Time            `json:"updatedAt,omitempty"`
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	Name       *string `json:"name"`
	Skills     *string `json:"skills"`
	Experience *string `json:"experience"`
	Interests  *string `json:"interests"`
}

func (p Patch) empty() bool {
	return p.Name == nil && p.Skills == nil && p.Experience == nil && p.Interests == nil
}

func (p Patch) apply(profile *Profile) {
	if p.Name != nil {
		profile.Name = strings.TrimSpace(*p.Name)
	}
	if p.Skills != nil {
		profile.Skills = strings.TrimSpace(*p.Skills)
	}
	if p.Experience != nil {
		profile.Experience = strings.TrimSpace(*p.Experience)
	}
	if p.Interests != nil {
		profile.Interests = strings.TrimSpace(*p.Interests)
	}
}

// Summary is the dashboard view of a profile.
type Summary struct {
	CompletionPercent int  `json:"completionPercent"`
	SkillCount        int  `json:"skillCount"`
	ATSScore          *int `json:"atsScore"`
}

// Summarize computes completion over name, email, skills, experience and interests.
func Summarize(p Profile) Summary {
	fields := []string{p.Name, p.Email, p.Skills, p.Experience, p.Interests}
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	return Summary{
		CompletionPercent: int(math.Round(float64(filled) / float64(len(fields)) * 100)),
		SkillCount:        len(SplitSkills(p.Skills)),
		ATSScore:          p.ATSScore,
	}
}

// SplitSkills returns the non-blank entries of a comma separated skills list.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinSkills renders skills in the stored comma separated form.
func JoinSkills(skills []string) string {
	clean := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	return strings.Join(clean, ", ")
}

// Complete reports whether skills, experience and interests are all filled.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.Skills) != "" &&
		strings.TrimSpace(p.Experience) != "" &&
		strings.TrimSpace(p.Interests) != ""
}
