package profiles

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/extract"
	"jobfit-backend/internal/shared/server/middleware"
	"jobfit-backend/internal/shared/server/respond"
	"jobfit-backend/internal/shared/storage/object"
	"jobfit-backend/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20

// Handler exposes the profile read/write endpoints.
type Handler struct {
	Repo  Repo
	Store object.ObjectStore

	// MaxUploadBytes caps resume uploads; zero means the 10 MiB default.
	MaxUploadBytes int64
}

func NewHandler(repo Repo, store object.ObjectStore) *Handler {
	return &Handler{Repo: repo, Store: store}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.putProfile)
	rg.POST("/profile/resume", h.uploadResume)
}

func (h *Handler) getProfile(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if !id.Valid() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	p, err := h.Repo.GetByUserID(c.Request.Context(), id.UserID)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}

	respond.JSON(c, http.StatusOK, p)
}

type putProfileRequest struct {
	FullName      string `json:"fullName"`
	ResumeText    string `json:"resumeText"`
	PreferredTone string `json:"preferredTone"`
	TargetRole    string `json:"targetRole"`
	Location      string `json:"location"`
}

func (h *Handler) putProfile(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if !id.Valid() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	var req putProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	var issues []respond.FieldIssue
	if req.PreferredTone != "" && !ValidTone(req.PreferredTone) {
		issues = append(issues, respond.FieldIssue{
			Field: "preferredTone",
			Issue: "must be one of neutral, warm, formal",
		})
	}
	if len(issues) > 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "profile validation failed", issues)
		return
	}

	existing, err := h.Repo.GetByUserID(c.Request.Context(), id.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}

	p := Profile{
		UserID:        id.UserID,
		FullName:      strings.TrimSpace(req.FullName),
		ResumeText:    req.ResumeText,
		ResumeFileKey: existing.ResumeFileKey,
		PreferredTone: strings.ToLower(strings.TrimSpace(req.PreferredTone)),
		TargetRole:    strings.TrimSpace(req.TargetRole),
		Location:      strings.TrimSpace(req.Location),
	}
	if err := h.Repo.Upsert(c.Request.Context(), p); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	saved, err := h.Repo.GetByUserID(c.Request.Context(), id.UserID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, saved)
}

func (h *Handler) uploadResume(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if !id.Valid() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
		return
	}

	maxBytes := h.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing file field", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "unreadable upload", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "unreadable upload", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := extract.ResumeText(c.Request.Context(), data, mimeType, fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not extract text from resume", []respond.FieldIssue{
			{Field: "file", Issue: err.Error()},
		})
		return
	}

	var fileKey string
	if h.Store != nil {
		key, size, _, err := h.Store.Save(c.Request.Context(), id.UserID, fileHeader.Filename, bytes.NewReader(data))
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume file", nil)
			return
		}
		fileKey = key
		telemetry.Info("resume.stored", map[string]any{
			"user_id":    id.UserID,
			"key":        key,
			"size_bytes": size,
		})
	}

	existing, err := h.Repo.GetByUserID(c.Request.Context(), id.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	existing.UserID = id.UserID
	existing.ResumeText = text
	existing.ResumeFileKey = fileKey

	if err := h.Repo.Upsert(c.Request.Context(), existing); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"resumeChars": len(text),
		"fileName":    fileHeader.Filename,
	})
}
