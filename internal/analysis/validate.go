package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidateOutput checks the raw model output against the response contract.
// It distinguishes output that is not JSON at all from a parsed object that
// violates the schema, and never coerces values into range.
func ValidateOutput(raw json.RawMessage) (AnalysisResponse, error) {
	if !json.Valid(raw) {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputNotJSON,
			Detail: "output is not valid JSON",
		}
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("output does not match schema: %v", err),
		}
	}

	fa := resp.FitAssessment
	switch fa.Label {
	case LabelStrong, LabelMedium, LabelWeak:
	default:
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("label %q is not one of Strong, Medium, Weak", fa.Label),
		}
	}
	if fa.MatchScore < 0 || fa.MatchScore > 100 {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("match_score %d outside [0,100]", fa.MatchScore),
		}
	}
	if fa.ATSMatchPercentage < 0 || fa.ATSMatchPercentage > 100 {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("ats_match_percentage %d outside [0,100]", fa.ATSMatchPercentage),
		}
	}
	if len(fa.GreenFlags) > maxFlags {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("green_flags has %d entries, max %d", len(fa.GreenFlags), maxFlags),
		}
	}
	if len(fa.RedFlags) > maxFlags {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("red_flags has %d entries, max %d", len(fa.RedFlags), maxFlags),
		}
	}
	switch fa.DecisionHelper {
	case DecisionApply, DecisionTailor, DecisionSkip:
	default:
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: fmt.Sprintf("decision_helper %q is not a known value", fa.DecisionHelper),
		}
	}
	if len(strings.TrimSpace(resp.CoverLetterText)) < minCoverLetterChars {
		return AnalysisResponse{}, &OutputError{
			Kind:   OutputContract,
			Detail: "cover_letter_text missing or shorter than 50 characters",
		}
	}

	return resp, nil
}
