package resumes

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseAnalysisNormalizesFields(t *testing.T) {
	raw := "```json\n" + `{
		"skills": [" Go ", "go", "SQL", "", "Kubernetes"],
		"experience": ["Backend engineer at Acme", "Intern at Beta"],
		"education": "BSc Computer Science",
		"atsScore": 104.6,
		"atsSuggestions": "  Add metrics to bullet points. "
	}` + "\n```"

	got, err := ParseAnalysis(raw, true)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if want := []string{"Go", "SQL", "Kubernetes"}; !reflect.DeepEqual(got.Skills, want) {
		t.Fatalf("skills = %v, want %v", got.Skills, want)
	}
	if got.Experience != "Backend engineer at Acme\nIntern at Beta" {
		t.Fatalf("experience = %q", got.Experience)
	}
	if got.ATSScore == nil || *got.ATSScore != 100 {
		t.Fatalf("expected score clamped to 100, got %v", got.ATSScore)
	}
	if got.ATSSuggestions != "Add metrics to bullet points." {
		t.Fatalf("suggestions = %q", got.ATSSuggestions)
	}
}

func TestParseAnalysisDropsATSFieldsWhenNotScoring(t *testing.T) {
	got, err := ParseAnalysis(`{"skills":"Go, Python","experience":"x","education":"y","atsScore":70,"atsSuggestions":"z"}`, false)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if got.ATSScore != nil || got.ATSSuggestions != "" {
		t.Fatalf("ATS fields should be dropped: %+v", got)
	}
	if !reflect.DeepEqual(got.Skills, []string{"Go", "Python"}) {
		t.Fatalf("expected comma separated skills to be split, got %v", got.Skills)
	}
}

func TestParseAnalysisNegativeScoreClampsToZero(t *testing.T) {
	got, err := ParseAnalysis(`{"skills":["Go"],"atsScore":-5}`, true)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if got.ATSScore == nil || *got.ATSScore != 0 {
		t.Fatalf("expected 0, got %v", got.ATSScore)
	}
}

func TestParseAnalysisRejectsBadOutput(t *testing.T) {
	for _, raw := range []string{
		"",
		"not json",
		`{"skills":[],"experience":"","education":""}`,
		`{"skills":{"a":1}}`,
	} {
		if _, err := ParseAnalysis(raw, false); !errors.Is(err, ErrInvalidOutput) {
			t.Fatalf("ParseAnalysis(%q) err = %v, want ErrInvalidOutput", raw, err)
		}
	}
}

func TestBuildPromptRequestsATSOnlyWhenScoring(t *testing.T) {
	plain := BuildPrompt("resume text", false)
	scored := BuildPrompt("resume text", true)
	if strings.Contains(plain, "atsScore") {
		t.Fatalf("update prompt should not ask for a score")
	}
	if !strings.Contains(scored, "atsScore") || !strings.Contains(scored, "Applicant Tracking System") {
		t.Fatalf("score prompt missing ATS instructions")
	}
	long := BuildPrompt(strings.Repeat("a", maxPromptChars+500), false)
	if strings.Count(long, "a") > maxPromptChars+200 {
		t.Fatalf("resume text was not truncated")
	}
}

func TestParseAction(t *testing.T) {
	if a, err := ParseAction(""); err != nil || a != ActionUpdate {
		t.Fatalf("empty action = %v, %v", a, err)
	}
	if a, err := ParseAction(" SCORE "); err != nil || a != ActionScore {
		t.Fatalf("score action = %v, %v", a, err)
	}
	if _, err := ParseAction("delete"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
