package resumes

import (
	"strings"
	"unicode/utf8"
)

const systemInstruction = "You are an expert resume analyzer and career coach. Reply with a single JSON object and nothing else."

// BuildPrompt renders the analysis prompt for resume text. ATS fields are requested only when score is set.
func BuildPrompt(resumeText string, score bool) string {
	var b strings.Builder
	b.WriteString("Your job is to extract the skills, experience, and education from a resume.\n\n")
	b.WriteString("Here is the resume:\n\"\"\"\n")
	b.WriteString(truncate(resumeText, maxPromptChars))
	b.WriteString("\n\"\"\"\n\n")
	b.WriteString("1. Extract the skills, experience, and education.\n")
	if score {
		b.WriteString("2. Calculate an Applicant Tracking System (ATS) score for this resume out of 100. ")
		b.WriteString("The score should reflect keyword optimization, formatting, and clarity.\n")
		b.WriteString("3. Provide concrete suggestions for how to improve the ATS score.\n")
	}
	b.WriteString("\nFormat the output as a valid JSON object with the keys:\n")
	b.WriteString("- skills: array of strings\n")
	b.WriteString("- experience: string summary of the work experience\n")
	b.WriteString("- education: string summary of the education\n")
	if score {
		b.WriteString("- atsScore: integer from 0 to 100\n")
		b.WriteString("- atsSuggestions: string\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
