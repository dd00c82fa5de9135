package branch

import (
	"go-gym/internal/identity"
	"go-gym/internal/middleware"
	"go-gym/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, engine *policy.Engine) {
	branches := r.Group("/branches")
	branches.Use(middleware.AuthMiddleware())
	{
		branches.GET("",
			policy.Authorize(engine, policy.ResourceBranch, policy.ActionRead),
			h.GetAll,
		)

		// The :branchId param doubles as the isolation check input: a
		// branch-scoped principal asking for another branch is refused
		// by the policy middleware before the handler runs.
		branches.GET("/:branchId",
			policy.Authorize(engine, policy.ResourceBranch, policy.ActionRead),
			h.GetByID,
		)

		branches.POST("",
			middleware.RequireRole(identity.RoleSuperAdmin),
			h.Create,
		)

		branches.PUT("/:branchId",
			policy.Authorize(engine, policy.ResourceBranch, policy.ActionUpdate),
			h.Update,
		)

		branches.DELETE("/:branchId",
			middleware.RequireRole(identity.RoleSuperAdmin),
			h.Deactivate,
		)
	}
}
