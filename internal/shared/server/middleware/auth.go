package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/identity"
	"jobfit-backend/internal/shared/auth"
	"jobfit-backend/internal/shared/server/respond"
)

const identityKey = "identity"

// Auth validates JWTs or guest headers and stores the resolved identity in the
// gin context. Handlers pass that identity explicitly into services; nothing
// downstream reads auth state ambiently.
func Auth(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/google/") || strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/metrics") {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			setIdentity(c, identity.Identity{
				UserID:       claims.Sub,
				Email:        claims.Email,
				Name:         claims.Name,
				AppMetadata:  claims.AppMetadata,
				UserMetadata: claims.UserMetadata,
			})
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		setIdentity(c, identity.Identity{
			UserID: "guest:" + guestID,
			Guest:  true,
		})
		c.Next()
	}
}

func setIdentity(c *gin.Context, id identity.Identity) {
	c.Set(identityKey, id)
	c.Set("userId", id.UserID)
	c.Set("isGuest", id.Guest)
}

// IdentityFromContext fetches the identity stored by the Auth middleware.
// The zero Identity is returned when the request was not authenticated.
func IdentityFromContext(c *gin.Context) identity.Identity {
	if c == nil {
		return identity.Identity{}
	}
	val, _ := c.Get(identityKey)
	if id, ok := val.(identity.Identity); ok {
		return id
	}
	return identity.Identity{}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return IdentityFromContext(c).UserID
}
