package analysis

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validOutput() map[string]any {
	return map[string]any{
		"fit_assessment": map[string]any{
			"label":                "Strong",
			"match_score":          85,
			"ats_match_percentage": 60,
			"green_flags":          []string{"8 years Go", "Postgres at scale"},
			"red_flags":            []string{},
			"decision_helper":      "Apply Immediately",
		},
		"cover_letter_text": strings.Repeat("I am a strong match for this role. ", 3),
	}
}

func marshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestValidateOutputAccepts(t *testing.T) {
	resp, err := ValidateOutput(marshal(t, validOutput()))
	if err != nil {
		t.Fatalf("ValidateOutput: %v", err)
	}
	if resp.FitAssessment.Label != LabelStrong {
		t.Fatalf("expected Strong, got %q", resp.FitAssessment.Label)
	}
	if resp.FitAssessment.MatchScore != 85 {
		t.Fatalf("expected score 85, got %d", resp.FitAssessment.MatchScore)
	}
}

func TestValidateOutputRejections(t *testing.T) {
	sixFlags := validOutput()
	sixFlags["fit_assessment"].(map[string]any)["green_flags"] = []string{"a", "b", "c", "d", "e", "f"}

	over := validOutput()
	over["fit_assessment"].(map[string]any)["match_score"] = 101

	under := validOutput()
	under["fit_assessment"].(map[string]any)["ats_match_percentage"] = -1

	badLabel := validOutput()
	badLabel["fit_assessment"].(map[string]any)["label"] = "Excellent"

	badDecision := validOutput()
	badDecision["fit_assessment"].(map[string]any)["decision_helper"] = "Maybe"

	shortLetter := validOutput()
	shortLetter["cover_letter_text"] = "too short"

	noLetter := validOutput()
	delete(noLetter, "cover_letter_text")

	cases := []struct {
		name       string
		raw        json.RawMessage
		wantKind   string
		wantDetail string
	}{
		{"not json", json.RawMessage("The candidate looks great!"), OutputNotJSON, "not valid JSON"},
		{"wrong value type", json.RawMessage(`{"fit_assessment":{"match_score":"85"}}`), OutputContract, "schema"},
		{"score 101", marshal(t, over), OutputContract, "match_score 101"},
		{"ats -1", marshal(t, under), OutputContract, "ats_match_percentage -1"},
		{"six green flags", marshal(t, sixFlags), OutputContract, "green_flags has 6"},
		{"label Excellent", marshal(t, badLabel), OutputContract, `label "Excellent"`},
		{"unknown decision", marshal(t, badDecision), OutputContract, "decision_helper"},
		{"short cover letter", marshal(t, shortLetter), OutputContract, "cover_letter_text"},
		{"missing cover letter", marshal(t, noLetter), OutputContract, "cover_letter_text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateOutput(tc.raw)
			var oErr *OutputError
			if !errors.As(err, &oErr) {
				t.Fatalf("expected OutputError, got %v", err)
			}
			if oErr.Kind != tc.wantKind {
				t.Fatalf("expected kind %s, got %s (%s)", tc.wantKind, oErr.Kind, oErr.Detail)
			}
			if !strings.Contains(oErr.Detail, tc.wantDetail) {
				t.Fatalf("expected detail containing %q, got %q", tc.wantDetail, oErr.Detail)
			}
		})
	}
}

func TestValidateOutputNoCoercion(t *testing.T) {
	raw := json.RawMessage(`{"fit_assessment":{"label":"Medium","match_score":55.5,"ats_match_percentage":40,"green_flags":[],"red_flags":[],"decision_helper":"Tailor & Apply"},"cover_letter_text":"` + strings.Repeat("x", 60) + `"}`)

	_, err := ValidateOutput(raw)
	var oErr *OutputError
	if !errors.As(err, &oErr) || oErr.Kind != OutputContract {
		t.Fatalf("expected contract violation for fractional score, got %v", err)
	}
}
