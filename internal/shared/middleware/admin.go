package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/auth"
	"library-backend/internal/shared/response"
)

// AdminMiddleware rejects requests whose principal is not an admin. Must be
// registered after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.FromContext(c)
		if !ok || !principal.IsAdmin() {
			response.Error(c, http.StatusForbidden, "Access denied: admin role required", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
