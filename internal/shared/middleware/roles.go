package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/response"
)

// RequireRoles lets the request through when the principal holds any of roles.
// Must run after AuthMiddleware.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		if !principal.HasAnyRole(roles...) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient role")
			return
		}

		c.Next()
	}
}
