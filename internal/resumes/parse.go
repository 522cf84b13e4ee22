package resumes

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"career-backend/internal/llm"
)

type rawAnalysis struct {
	Skills         flexList `json:"skills"`
	Experience     flexText `json:"experience"`
	Education      flexText `json:"education"`
	ATSScore       *float64 `json:"atsScore"`
	ATSSuggestions flexText `json:"atsSuggestions"`
}

// ParseAnalysis validates a model reply. Skills are trimmed and de-duplicated
// case-insensitively, the score is rounded and clamped to 0..100, and ATS
// fields are dropped unless score was requested.
func ParseAnalysis(raw string, score bool) (Analysis, error) {
	body := llm.StripCodeFence(raw)
	if body == "" {
		return Analysis{}, fmt.Errorf("%w: empty reply", ErrInvalidOutput)
	}

	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	out := Analysis{
		Skills:     dedupeSkills(parsed.Skills),
		Experience: strings.TrimSpace(string(parsed.Experience)),
		Education:  strings.TrimSpace(string(parsed.Education)),
	}
	if len(out.Skills) == 0 && out.Experience == "" && out.Education == "" {
		return Analysis{}, fmt.Errorf("%w: no resume fields extracted", ErrInvalidOutput)
	}

	if score {
		if parsed.ATSScore != nil && !math.IsNaN(*parsed.ATSScore) {
			v := int(math.Round(*parsed.ATSScore))
			v = max(0, min(100, v))
			out.ATSScore = &v
		}
		out.ATSSuggestions = strings.TrimSpace(string(parsed.ATSSuggestions))
	}
	return out, nil
}

func dedupeSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
		if len(out) == maxSkills {
			break
		}
	}
	return out
}
