package analysis

import (
	_ "embed"
	"strings"

	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/profiles"
)

//go:embed prompts/system_rubric.txt
var systemRubric string

const fallbackRole = "your target role"

// CompilePrompt renders the rubric system block and the user dossier block.
// The render is deterministic: identical inputs yield identical prompts.
func CompilePrompt(profile profiles.Profile, req AnalysisRequest) llm.GenerateInput {
	tone := resolveTone(req.ToneOverride, profile.PreferredTone)
	role := resolveRole(req.TargetRoleOverride, profile.TargetRole)

	var b strings.Builder
	b.WriteString("CANDIDATE\n")
	if name := strings.TrimSpace(profile.FullName); name != "" {
		b.WriteString("Name: ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	if loc := strings.TrimSpace(profile.Location); loc != "" {
		b.WriteString("Location: ")
		b.WriteString(loc)
		b.WriteString("\n")
	}
	b.WriteString("Target role: ")
	b.WriteString(role)
	b.WriteString("\n\nRESUME\n")
	b.WriteString(strings.TrimSpace(profile.ResumeText))
	b.WriteString("\n\nJOB DESCRIPTION\n")
	b.WriteString(strings.TrimSpace(req.JobDescription))
	b.WriteString("\n\nCOVER LETTER TONE: ")
	b.WriteString(tone)
	b.WriteString("\n")

	return llm.GenerateInput{
		System:    systemRubric,
		User:      b.String(),
		ForceJSON: true,
	}
}

func resolveTone(override, preference string) string {
	if profiles.ValidTone(override) {
		return strings.ToLower(strings.TrimSpace(override))
	}
	if profiles.ValidTone(preference) {
		return strings.ToLower(strings.TrimSpace(preference))
	}
	return profiles.ToneNeutral
}

func resolveRole(override, preference string) string {
	if role := strings.TrimSpace(override); role != "" {
		return role
	}
	if role := strings.TrimSpace(preference); role != "" {
		return role
	}
	return fallbackRole
}
