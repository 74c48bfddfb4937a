package analysis

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/shared/server/middleware"
	"jobfit-backend/internal/shared/server/respond"
	"jobfit-backend/internal/usage"
)

// Handler exposes the analyze endpoint.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if !id.Valid() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	result, err := h.Service.Analyze(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	usage.SetPlanHeaders(c, result.Policy, result.Remaining)
	respond.JSON(c, http.StatusOK, result.Response)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request validation failed", vErr.Issues)
		return
	}

	if errors.Is(err, ErrNoResume) {
		respond.Error(c, http.StatusBadRequest, "no_resume", "save a resume to your profile before analyzing", nil)
		return
	}

	var qErr *QuotaError
	if errors.As(err, &qErr) {
		usage.SetPlanHeaders(c, qErr.Policy, 0)
		respond.Error(c, http.StatusTooManyRequests, "quota_exceeded", "daily analysis limit reached", gin.H{
			"resetAt": qErr.ResetAt.Format(time.RFC3339),
		})
		return
	}

	var lErr *LedgerError
	if errors.As(err, &lErr) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "usage tracking unavailable", nil)
		return
	}

	var oErr *OutputError
	if errors.As(err, &oErr) {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "model returned an invalid assessment", nil)
		return
	}

	var uErr *UpstreamError
	if errors.As(err, &uErr) {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "analysis provider unavailable", nil)
		return
	}

	respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
}
