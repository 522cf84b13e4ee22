package interview

import (
	"regexp"
	"strings"
)

var tagPatterns = map[string]*regexp.Regexp{
	"feedback": tagPattern("feedback"),
	"question": tagPattern("question"),
	"context":  tagPattern("context"),
}

// tagPattern matches <tag>body</tag>. A missing closing tag ends at the next known tag or the end.
func tagPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + tag + `>(.*?)(?:</` + tag + `>|<(?:feedback|question|context)>|\z)`)
}

func extractTag(raw, tag string) string {
	m := tagPatterns[tag].FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ParseReply pulls question, feedback and context out of a model reply and fills the gaps.
func ParseReply(raw string, in TurnInput) TurnOutput {
	out := TurnOutput{
		Question:         extractTag(raw, "question"),
		Feedback:         extractTag(raw, "feedback"),
		InterviewContext: extractTag(raw, "context"),
	}

	if out.Question == "" {
		out.Question = FallbackQuestion
	}
	if out.InterviewContext == "" {
		out.InterviewContext = in.PreviousContext
		if strings.TrimSpace(out.InterviewContext) == "" {
			out.InterviewContext = FallbackContext
		}
	}
	if strings.TrimSpace(in.UserResponse) == "" {
		out.Feedback = ""
	} else if out.Feedback == "" {
		out.Feedback = FallbackFeedback
	}

	out.InterviewContext = CapContext(out.InterviewContext, MaxContextChars)
	return out
}

// CapContext keeps the most recent max characters of ctx, starting on a line boundary when one exists.
func CapContext(ctx string, max int) string {
	if max <= 0 {
		return ctx
	}
	runes := []rune(ctx)
	if len(runes) <= max {
		return ctx
	}
	tail := string(runes[len(runes)-max:])
	if i := strings.IndexByte(tail, '\n'); i >= 0 && i < len(tail)-1 {
		tail = tail[i+1:]
	}
	return tail
}
