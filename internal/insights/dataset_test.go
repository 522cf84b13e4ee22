package insights

import (
	"strings"
	"testing"
)

func TestDefaultDataset(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d.TargetRole != "Software Engineer" {
		t.Fatalf("target role = %q", d.TargetRole)
	}
	if len(d.JobTrends) != 5 || d.JobTrends[0].Name != "AI Engineer" || d.JobTrends[0].Jobs != 1200 {
		t.Fatalf("unexpected job trends %+v", d.JobTrends)
	}
	if len(d.SalaryBands) != 4 || d.SalaryBands[3].Max != 220000 {
		t.Fatalf("unexpected salary bands %+v", d.SalaryBands)
	}
	if d.Progress.Readiness != 78 || len(d.Progress.Monthly) != 6 {
		t.Fatalf("unexpected progress %+v", d.Progress)
	}
	if len(d.Roadmap.Phases) != 3 || len(d.Roadmap.Phases[2].Items) != 2 {
		t.Fatalf("unexpected roadmap %+v", d.Roadmap)
	}
}

func TestParseRejectsInvalidDatasets(t *testing.T) {
	cases := map[string]string{
		"bad yaml":        "jobTrends: [",
		"no trends":       "targetRole: x\n",
		"inverted salary": "jobTrends: [{name: a, jobs: 1}]\nsalaryBands: [{level: Entry, min: 10, max: 5}]\n",
		"bad readiness":   "jobTrends: [{name: a, jobs: 1}]\nprogress: {readiness: 140}\n",
		"unknown when":    "jobTrends: [{name: a, jobs: 1}]\nactionPlan: [{title: t, when: sometimes}]\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			} else if !strings.Contains(err.Error(), "insights dataset") {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}
