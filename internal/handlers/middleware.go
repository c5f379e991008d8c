package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

const (
	adminKeyHeader         = "X-Admin-Key"
	contextKeyProjectScope = "project_scope"
)

// AdminKeyMiddleware authenticates admin requests by the X-Admin-Key header.
// The configured super key resolves to a nil scope (all projects); a
// per-project key resolves to that project's id. CORS preflights pass
// through unauthenticated.
func AdminKeyMiddleware(auth services.AuthService, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := c.GetHeader(adminKeyHeader)
		scope, err := auth.ResolveAdminKey(c.Request.Context(), key)
		if err != nil {
			if services.IsUnauthorized(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
					Message: "Invalid or missing admin key",
				})
				return
			}
			logger.LogError(err, "admin key resolution failed", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal server error",
			})
			return
		}

		c.Set(contextKeyProjectScope, scope)
		c.Next()
	}
}
