package analysis

import (
	"strings"

	"jobfit-backend/internal/profiles"
	"jobfit-backend/internal/shared/server/respond"
)

const minJobDescriptionChars = 30

// AnalysisRequest is the extension's analyze payload.
type AnalysisRequest struct {
	JobDescription     string `json:"jobDescription"`
	ToneOverride       string `json:"toneOverride,omitempty"`
	TargetRoleOverride string `json:"targetRoleOverride,omitempty"`
}

// Validate returns per-field issues. A nil slice means the request is well formed.
func (r AnalysisRequest) Validate() []respond.FieldIssue {
	var issues []respond.FieldIssue
	if len(strings.TrimSpace(r.JobDescription)) < minJobDescriptionChars {
		issues = append(issues, respond.FieldIssue{
			Field: "jobDescription",
			Issue: "must be at least 30 characters",
		})
	}
	if r.ToneOverride != "" && !profiles.ValidTone(r.ToneOverride) {
		issues = append(issues, respond.FieldIssue{
			Field: "toneOverride",
			Issue: "must be one of neutral, warm, formal",
		})
	}
	return issues
}

// Fit labels the model is allowed to emit.
const (
	LabelStrong = "Strong"
	LabelMedium = "Medium"
	LabelWeak   = "Weak"
)

// Decision helper values the model is allowed to emit.
const (
	DecisionApply  = "Apply Immediately"
	DecisionTailor = "Tailor & Apply"
	DecisionSkip   = "Skip for Now"
)

const maxFlags = 5

const minCoverLetterChars = 50

// FitAssessment is the structured verdict section of the model output.
type FitAssessment struct {
	Label              string   `json:"label"`
	MatchScore         int      `json:"match_score"`
	ATSMatchPercentage int      `json:"ats_match_percentage"`
	GreenFlags         []string `json:"green_flags"`
	RedFlags           []string `json:"red_flags"`
	DecisionHelper     string   `json:"decision_helper"`
}

// AnalysisResponse is the full validated model output returned to the caller.
type AnalysisResponse struct {
	FitAssessment   FitAssessment `json:"fit_assessment"`
	CoverLetterText string        `json:"cover_letter_text"`
}
