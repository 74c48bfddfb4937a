package analysis

import (
	"strings"
	"testing"

	"jobfit-backend/internal/profiles"
)

func TestCompilePromptDeterministic(t *testing.T) {
	profile := profiles.Profile{
		FullName:      "Jane Doe",
		ResumeText:    "8 years of Go, Postgres, Kubernetes",
		PreferredTone: profiles.ToneWarm,
		TargetRole:    "Backend Engineer",
		Location:      "Berlin",
	}
	req := AnalysisRequest{JobDescription: "We are hiring a senior backend engineer for our payments team."}

	a := CompilePrompt(profile, req)
	b := CompilePrompt(profile, req)
	if a != b {
		t.Fatalf("expected identical prompts for identical inputs")
	}
	if !a.ForceJSON {
		t.Fatalf("expected ForceJSON set")
	}
	if !strings.Contains(a.System, "single") || !strings.Contains(a.System, "JSON") {
		t.Fatalf("expected JSON-only instruction in system block")
	}
	for _, want := range []string{"Jane Doe", "Berlin", "Backend Engineer", "payments team", "COVER LETTER TONE: warm"} {
		if !strings.Contains(a.User, want) {
			t.Fatalf("expected user block to contain %q\n%s", want, a.User)
		}
	}
}

func TestCompilePromptToneResolution(t *testing.T) {
	profile := profiles.Profile{ResumeText: "resume", PreferredTone: profiles.ToneFormal}

	got := CompilePrompt(profile, AnalysisRequest{JobDescription: "jd", ToneOverride: "warm"})
	if !strings.Contains(got.User, "COVER LETTER TONE: warm") {
		t.Fatalf("expected override tone, got\n%s", got.User)
	}

	got = CompilePrompt(profile, AnalysisRequest{JobDescription: "jd"})
	if !strings.Contains(got.User, "COVER LETTER TONE: formal") {
		t.Fatalf("expected profile tone, got\n%s", got.User)
	}

	got = CompilePrompt(profiles.Profile{ResumeText: "resume"}, AnalysisRequest{JobDescription: "jd"})
	if !strings.Contains(got.User, "COVER LETTER TONE: neutral") {
		t.Fatalf("expected neutral fallback, got\n%s", got.User)
	}
}

func TestCompilePromptRoleResolution(t *testing.T) {
	profile := profiles.Profile{ResumeText: "resume", TargetRole: "SRE"}

	got := CompilePrompt(profile, AnalysisRequest{JobDescription: "jd", TargetRoleOverride: "Platform Engineer"})
	if !strings.Contains(got.User, "Target role: Platform Engineer") {
		t.Fatalf("expected override role, got\n%s", got.User)
	}

	got = CompilePrompt(profiles.Profile{ResumeText: "resume"}, AnalysisRequest{JobDescription: "jd"})
	if !strings.Contains(got.User, "Target role: "+fallbackRole) {
		t.Fatalf("expected fallback role, got\n%s", got.User)
	}
}

func TestAnalysisRequestValidate(t *testing.T) {
	longJD := strings.Repeat("senior backend engineer ", 3)

	if issues := (AnalysisRequest{JobDescription: longJD}).Validate(); len(issues) != 0 {
		t.Fatalf("expected valid request, got %v", issues)
	}
	if issues := (AnalysisRequest{JobDescription: strings.Repeat("x", 29)}).Validate(); len(issues) != 1 || issues[0].Field != "jobDescription" {
		t.Fatalf("expected jobDescription issue, got %v", issues)
	}
	if issues := (AnalysisRequest{JobDescription: longJD, ToneOverride: "sarcastic"}).Validate(); len(issues) != 1 || issues[0].Field != "toneOverride" {
		t.Fatalf("expected toneOverride issue, got %v", issues)
	}

	// Whitespace padding does not satisfy the minimum length.
	padded := "  " + strings.Repeat("x", 29) + strings.Repeat(" ", 10)
	if issues := (AnalysisRequest{JobDescription: padded}).Validate(); len(issues) != 1 {
		t.Fatalf("expected padded jobDescription rejected, got %v", issues)
	}
}
