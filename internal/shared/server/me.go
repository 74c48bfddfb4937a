package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobfit-backend/internal/plan"
	"jobfit-backend/internal/shared/server/middleware"
	"jobfit-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup, plans *plan.Resolver) {
	rg.GET("/me", func(c *gin.Context) {
		id := middleware.IdentityFromContext(c)
		if !id.Valid() {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		response := gin.H{
			"userId": id.UserID,
			"plan":   plans.Resolve(id).Tier,
		}
		if id.Email != "" {
			response["email"] = id.Email
		}
		if id.Name != "" {
			response["name"] = id.Name
		}
		if id.Guest {
			response["guest"] = true
		}

		respond.JSON(c, http.StatusOK, response)
	})
}
