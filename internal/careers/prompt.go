package careers

import "strings"

const systemInstruction = "You are an expert career counselor specializing in recommending career paths based on skills, experience, and interests. Reply with JSON only."

// BuildPrompt renders the recommendation prompt.
func BuildPrompt(in Input) string {
	consider := "No"
	if in.ConsiderTechnologies {
		consider = "Yes"
	}

	var b strings.Builder
	b.WriteString("You will use this information to recommend 3-5 career paths that align with the user's profile. ")
	b.WriteString("For each career path, provide a roadmap including missing skills, suggested projects, and relevant networking opportunities.\n\n")
	b.WriteString("Skills: " + in.Skills + "\n")
	b.WriteString("Experience: " + in.Experience + "\n")
	b.WriteString("Interests: " + in.Interests + "\n")
	b.WriteString("Consider Technologies: " + consider + "\n\n")
	b.WriteString(`Format the response as a JSON object {"careerPaths": [...]}. Each career path should include:
- careerPath: The name of the career path.
- jobGrowthPercentage: The job growth percentage of the career path, as a number.
- averageSalary: The average yearly salary in USD, as a number.
- demandRating: The demand rating of the career path (e.g., High, Medium, Low).
- missingSkills: The missing skills for the career path and how to learn them.
- suggestedProjects: The suggested projects for the career path.
- relevantNetworkingOpportunities: The relevant networking opportunities for the career path.
`)
	return b.String()
}
