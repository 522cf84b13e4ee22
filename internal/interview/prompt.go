package interview

import (
	"fmt"
	"strings"
)

const systemInstruction = "You are an AI interviewer running a realistic mock job interview. " +
	"Reply only with the three tagged sections you are asked for."

var levelAliases = map[string]string{
	"entry":        "Entry-level",
	"entry-level":  "Entry-level",
	"entry level":  "Entry-level",
	"junior":       "Entry-level",
	"mid":          "Mid-level",
	"mid-level":    "Mid-level",
	"mid level":    "Mid-level",
	"intermediate": "Mid-level",
	"senior":       "Senior-level",
	"senior-level": "Senior-level",
	"senior level": "Senior-level",
}

// NormalizeLevel maps common spellings to Entry-level, Mid-level or Senior-level.
// Unknown values are returned trimmed but otherwise unchanged.
func NormalizeLevel(level string) string {
	level = strings.TrimSpace(level)
	if mapped, ok := levelAliases[strings.ToLower(level)]; ok {
		return mapped
	}
	return level
}

// BuildPrompt renders the interviewer prompt for one turn.
func BuildPrompt(in TurnInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI interviewer conducting a mock interview for the role of %s (%s).\n\n", in.JobRole, in.ExperienceLevel)
	b.WriteString("Your goal is to ask relevant interview questions and provide constructive feedback.\n\n")
	b.WriteString("Follow this process:\n")
	b.WriteString("1. Ask one question at a time.\n")
	b.WriteString("2. If the candidate provides a response, give feedback on that response.\n")
	b.WriteString("3. After giving feedback (or if it's the first turn), ask the next question.\n")
	b.WriteString("4. Maintain a running context of the interview (questions asked, topics covered, how the candidate did).\n\n")

	b.WriteString("Interview State:\n\n")
	if strings.TrimSpace(in.PreviousContext) != "" {
		b.WriteString("Previous Context:\n")
		b.WriteString(in.PreviousContext)
		b.WriteString("\n\n")
	} else {
		b.WriteString("This is the beginning of the interview. Ask your first question.\n\n")
	}
	if strings.TrimSpace(in.UserResponse) != "" {
		b.WriteString("Candidate's Response:\n")
		b.WriteString(in.UserResponse)
		b.WriteString("\n\n")
	}

	b.WriteString("Format your reply exactly like this:\n")
	if strings.TrimSpace(in.UserResponse) != "" {
		b.WriteString("<feedback>feedback on the candidate's response</feedback>\n")
	}
	b.WriteString("<question>the next interview question</question>\n")
	b.WriteString("<context>the updated running context of the interview</context>\n")
	return b.String()
}
