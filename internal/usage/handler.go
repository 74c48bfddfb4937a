package usage

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/plan"
	"jobfit-backend/internal/shared/server/middleware"
	"jobfit-backend/internal/shared/server/respond"
)

// Telemetry headers attached to metered responses.
const (
	HeaderUsagePlan          = "X-Usage-Plan"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

// SetPlanHeaders writes the plan header and, for limited tiers, the rate-limit pair.
func SetPlanHeaders(c *gin.Context, policy plan.Policy, remaining int) {
	c.Header(HeaderUsagePlan, string(policy.Tier))
	c.Set("usagePlan", string(policy.Tier))
	if policy.Limited() {
		if remaining < 0 {
			remaining = 0
		}
		c.Header(HeaderRateLimitLimit, strconv.Itoa(*policy.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(remaining))
	}
}

// Handler exposes usage telemetry endpoints.
type Handler struct {
	Ledger Ledger
	Plans  *plan.Resolver

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(ledger Ledger, plans *plan.Resolver) *Handler {
	return &Handler{Ledger: ledger, Plans: plans, Now: time.Now}
}

// RegisterRoutes attaches usage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
}

// RegisterDevRoutes attaches dev-only usage routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/usage/reset", h.resetUsage)
}

func (h *Handler) getUsage(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if !id.Valid() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	policy := h.Plans.Resolve(id)
	now := h.Now().UTC()
	resetAt := NextReset(now)

	if !policy.Limited() {
		SetPlanHeaders(c, policy, 0)
		respond.JSON(c, http.StatusOK, gin.H{
			"plan":           policy.Tier,
			"limit":          nil,
			"usedToday":      0,
			"remainingToday": nil,
			"resetAt":        resetAt.Format(time.RFC3339),
		})
		return
	}

	used, err := h.Ledger.UsedOn(c.Request.Context(), id.UserID, Day(now))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch usage", nil)
		}
		return
	}

	remaining := *policy.Limit - used
	if remaining < 0 {
		remaining = 0
	}

	SetPlanHeaders(c, policy, remaining)
	respond.JSON(c, http.StatusOK, gin.H{
		"plan":           policy.Tier,
		"limit":          *policy.Limit,
		"usedToday":      used,
		"remainingToday": remaining,
		"resetAt":        resetAt.Format(time.RFC3339),
	})
}

func (h *Handler) resetUsage(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if !id.Valid() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	if err := h.Ledger.Reset(c.Request.Context(), id.UserID, Day(h.Now().UTC())); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset usage", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}
