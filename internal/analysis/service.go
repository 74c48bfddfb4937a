package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobfit-backend/internal/identity"
	"jobfit-backend/internal/llm"
	"jobfit-backend/internal/plan"
	"jobfit-backend/internal/profiles"
	"jobfit-backend/internal/shared/metrics"
	"jobfit-backend/internal/shared/telemetry"
	"jobfit-backend/internal/usage"
)

// Service runs the analyze pipeline: validate, read profile, gate on quota,
// compile prompt, call the model, validate the output.
type Service struct {
	Profiles profiles.Repo
	Ledger   usage.Ledger
	Plans    *plan.Resolver
	LLM      llm.Client

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewService constructs a Service.
func NewService(repo profiles.Repo, ledger usage.Ledger, plans *plan.Resolver, client llm.Client) *Service {
	return &Service{Profiles: repo, Ledger: ledger, Plans: plans, LLM: client, Now: time.Now}
}

// Result bundles the validated response with the plan state the handler needs
// for the telemetry headers.
type Result struct {
	Response  AnalysisResponse
	Policy    plan.Policy
	Remaining int
}

// Analyze runs the full pipeline for one request. The quota is consumed only
// after the request and profile checks pass, and only for limited tiers; a
// denied or failed consume never reaches the model.
func (s *Service) Analyze(ctx context.Context, id identity.Identity, req AnalysisRequest) (Result, error) {
	if issues := req.Validate(); len(issues) > 0 {
		return Result{}, &ValidationError{Issues: issues}
	}

	profile, err := s.Profiles.GetByUserID(ctx, id.UserID)
	if errors.Is(err, profiles.ErrNotFound) {
		return Result{}, ErrNoResume
	}
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(profile.ResumeText) == "" {
		return Result{}, ErrNoResume
	}

	policy := s.Plans.Resolve(id)
	now := s.Now().UTC()

	remaining := 0
	if policy.Limited() {
		cons, err := s.Ledger.TryConsume(ctx, id.UserID, usage.Day(now), *policy.Limit)
		if err != nil {
			return Result{}, &LedgerError{Err: err}
		}
		if !cons.Allowed {
			metrics.IncQuotaDenied()
			return Result{}, &QuotaError{Policy: policy, ResetAt: usage.NextReset(now)}
		}
		remaining = cons.Remaining
	}

	metrics.IncAnalysisStarted()
	start := time.Now()

	prompt := CompilePrompt(profile, req)
	raw, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Result{}, &UpstreamError{Err: err}
	}

	resp, err := ValidateOutput(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.output_rejected", map[string]any{
			"user_id": id.UserID,
			"reason":  err.Error(),
		})
		return Result{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("analysis.complete", map[string]any{
		"user_id":     id.UserID,
		"plan":        string(policy.Tier),
		"label":       resp.FitAssessment.Label,
		"match_score": resp.FitAssessment.MatchScore,
	})

	return Result{Response: resp, Policy: policy, Remaining: remaining}, nil
}
