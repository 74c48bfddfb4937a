package analysis

import (
	"errors"
	"fmt"
	"time"

	"jobfit-backend/internal/plan"
	"jobfit-backend/internal/shared/server/respond"
)

// ErrNoResume is returned when the caller has no stored resume text.
var ErrNoResume = errors.New("profile has no resume text")

// ValidationError carries per-field issues for a malformed request.
type ValidationError struct {
	Issues []respond.FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed (%d issues)", len(e.Issues))
}

// QuotaError is returned when the daily limit is exhausted.
type QuotaError struct {
	Policy  plan.Policy
	ResetAt time.Time
}

func (e *QuotaError) Error() string {
	return "daily analysis quota exceeded"
}

// LedgerError wraps a quota-storage failure. The gate fails closed: the caller
// gets a 500, never a free pass.
type LedgerError struct {
	Err error
}

func (e *LedgerError) Error() string { return "usage ledger failure: " + e.Err.Error() }

func (e *LedgerError) Unwrap() error { return e.Err }

// UpstreamError wraps a provider failure (transport, HTTP error, empty
// output). The caller maps it to a 502.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "analysis provider failure: " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Output contract failure kinds.
const (
	OutputNotJSON  = "not_json"
	OutputContract = "contract_violation"
)

// OutputError is returned when the model produced something other than the
// contracted JSON object. Kind distinguishes unparseable output from a parsed
// object that breaks the schema.
type OutputError struct {
	Kind   string
	Detail string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("model output rejected (%s): %s", e.Kind, e.Detail)
}
