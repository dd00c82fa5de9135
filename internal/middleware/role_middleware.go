package middleware

import (
	"net/http"

	"go-gym/internal/identity"
	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireRole restricts a route to an explicit role allowlist. It runs
// after AuthMiddleware and complements the resource policy for routes
// that are simply off-limits to some roles regardless of branch.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := identity.FromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		if _, ok := allowed[p.Role]; !ok {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Your role does not allow this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
