package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/domain/user"
)

// RequireRole gates a route on a minimum role. Higher roles pass: an
// admin clears a manager check.
func (m *AuthMiddleware) RequireRole(required user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok || role == "" {
			abortUnauthorized(c, "Missing identity context")
			return
		}
		if !role.AtLeast(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": string(required) + " role required",
				},
			})
			return
		}
		c.Next()
	}
}
