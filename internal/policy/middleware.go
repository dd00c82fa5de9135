package policy

import (
	"net/http"

	"go-gym/internal/identity"
	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const decisionContextKey = "policy_decision"

// Authorize gates a route on the policy engine. It resolves the
// Principal attached by the auth middleware, evaluates the decision
// and stores it on the context for the handler to scope its queries.
func Authorize(engine *Engine, resource Resource, action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := identity.FromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
			c.Abort()
			return
		}

		requestedBranch := c.Query("branchId")
		if requestedBranch == "" {
			requestedBranch = c.Param("branchId")
		}

		decision := engine.Authorize(p, resource, action, requestedBranch)
		if !decision.Allowed {
			code := apperror.CodeForbidden
			message := "You do not have permission to access this resource"
			if decision.Reason == ReasonBranchIsolation {
				code = apperror.CodeBranchIsolation
				message = "Access denied: branch isolation enforced"
			}
			response.Error(c, http.StatusForbidden, code, message, gin.H{
				"required": string(resource) + ":" + string(action),
			})
			c.Abort()
			return
		}

		c.Set(decisionContextKey, decision)
		c.Next()
	}
}

// SetDecision attaches a decision directly, bypassing the engine.
func SetDecision(c *gin.Context, d Decision) {
	c.Set(decisionContextKey, d)
}

// DecisionFromContext returns the decision stored by Authorize.
func DecisionFromContext(c *gin.Context) (Decision, bool) {
	v, ok := c.Get(decisionContextKey)
	if !ok {
		return Decision{}, false
	}
	d, ok := v.(Decision)
	return d, ok
}
