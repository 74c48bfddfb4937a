package plan

import (
	"strings"

	"jobfit-backend/internal/identity"
)

// Tier is a user's subscription class.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// DefaultFreeDailyLimit is the number of analyses a free user gets per UTC day.
const DefaultFreeDailyLimit = 5

// Policy is the resolved usage policy for one request. Limit is nil for
// unlimited tiers.
type Policy struct {
	Tier  Tier
	Limit *int
}

// Limited reports whether the policy carries a daily cap.
func (p Policy) Limited() bool {
	return p.Limit != nil
}

// Resolver derives usage policies from identity metadata.
type Resolver struct {
	FreeDailyLimit int
}

// NewResolver builds a Resolver with the given free-tier daily limit.
// A non-positive limit falls back to the default.
func NewResolver(freeDailyLimit int) *Resolver {
	if freeDailyLimit <= 0 {
		freeDailyLimit = DefaultFreeDailyLimit
	}
	return &Resolver{FreeDailyLimit: freeDailyLimit}
}

// Resolve maps an identity to a usage policy. It is total: any metadata shape,
// including absent or malformed fields, resolves to exactly one tier. Tier may
// be written by different upstream systems under different key conventions, so
// candidates are scanned in a fixed priority order and the first recognized
// value wins; everything else defaults to free.
func (r *Resolver) Resolve(id identity.Identity) Policy {
	tier := resolveTier(id)
	if tier == TierPremium {
		return Policy{Tier: TierPremium}
	}
	limit := r.FreeDailyLimit
	return Policy{Tier: TierFree, Limit: &limit}
}

func resolveTier(id identity.Identity) Tier {
	candidates := []any{
		metadataValue(id.AppMetadata, "planTier"),
		metadataValue(id.AppMetadata, "plan_tier"),
		metadataValue(id.UserMetadata, "planTier"),
		metadataValue(id.UserMetadata, "plan_tier"),
	}
	for _, candidate := range candidates {
		raw, ok := candidate.(string)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "premium":
			return TierPremium
		case "free":
			return TierFree
		}
	}
	return TierFree
}

func metadataValue(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}
