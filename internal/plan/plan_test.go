package plan

import (
	"testing"

	"jobfit-backend/internal/identity"
)

func TestResolveTierPriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		id   identity.Identity
		want Tier
	}{
		{
			name: "no metadata defaults to free",
			id:   identity.Identity{UserID: "u1"},
			want: TierFree,
		},
		{
			name: "app metadata camel wins",
			id: identity.Identity{
				UserID:       "u1",
				AppMetadata:  map[string]any{"planTier": "premium"},
				UserMetadata: map[string]any{"planTier": "free"},
			},
			want: TierPremium,
		},
		{
			name: "app metadata snake case",
			id: identity.Identity{
				UserID:      "u1",
				AppMetadata: map[string]any{"plan_tier": "premium"},
			},
			want: TierPremium,
		},
		{
			name: "user metadata camel case",
			id: identity.Identity{
				UserID:       "u1",
				UserMetadata: map[string]any{"planTier": "premium"},
			},
			want: TierPremium,
		},
		{
			name: "user metadata snake case",
			id: identity.Identity{
				UserID:       "u1",
				UserMetadata: map[string]any{"plan_tier": "premium"},
			},
			want: TierPremium,
		},
		{
			name: "value comparison is case-insensitive",
			id: identity.Identity{
				UserID:      "u1",
				AppMetadata: map[string]any{"planTier": "  Premium "},
			},
			want: TierPremium,
		},
		{
			name: "unrecognized value falls through to next candidate",
			id: identity.Identity{
				UserID:       "u1",
				AppMetadata:  map[string]any{"planTier": "enterprise"},
				UserMetadata: map[string]any{"plan_tier": "premium"},
			},
			want: TierPremium,
		},
		{
			name: "explicit free in higher-priority field wins over premium below",
			id: identity.Identity{
				UserID:       "u1",
				AppMetadata:  map[string]any{"planTier": "free"},
				UserMetadata: map[string]any{"planTier": "premium"},
			},
			want: TierFree,
		},
		{
			name: "non-string metadata value is skipped",
			id: identity.Identity{
				UserID:      "u1",
				AppMetadata: map[string]any{"planTier": 42},
			},
			want: TierFree,
		},
		{
			name: "unrecognized everywhere defaults to free",
			id: identity.Identity{
				UserID:      "u1",
				AppMetadata: map[string]any{"planTier": "gold"},
			},
			want: TierFree,
		},
	}

	r := NewResolver(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.id)
			if got.Tier != tt.want {
				t.Fatalf("expected tier %s, got %s", tt.want, got.Tier)
			}
		})
	}
}

func TestResolveLimits(t *testing.T) {
	r := NewResolver(5)

	free := r.Resolve(identity.Identity{UserID: "u1"})
	if !free.Limited() {
		t.Fatalf("expected free policy to be limited")
	}
	if *free.Limit != 5 {
		t.Fatalf("expected free limit 5, got %d", *free.Limit)
	}

	premium := r.Resolve(identity.Identity{
		UserID:      "u2",
		AppMetadata: map[string]any{"planTier": "premium"},
	})
	if premium.Limited() {
		t.Fatalf("expected premium policy to be unlimited")
	}
}

func TestNewResolverRejectsNonPositiveLimit(t *testing.T) {
	r := NewResolver(0)
	if r.FreeDailyLimit != DefaultFreeDailyLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultFreeDailyLimit, r.FreeDailyLimit)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver(5)
	id := identity.Identity{
		UserID:       "u1",
		AppMetadata:  map[string]any{"plan_tier": "premium"},
		UserMetadata: map[string]any{"planTier": "free"},
	}
	first := r.Resolve(id)
	for i := 0; i < 10; i++ {
		if got := r.Resolve(id); got.Tier != first.Tier {
			t.Fatalf("resolution not deterministic: %s vs %s", got.Tier, first.Tier)
		}
	}
}
