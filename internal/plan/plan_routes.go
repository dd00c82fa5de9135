package plan

import (
	"go-gym/internal/middleware"
	"go-gym/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, engine *policy.Engine) {
	plans := r.Group("/plans")
	plans.Use(middleware.AuthMiddleware())
	{
		plans.GET("",
			policy.Authorize(engine, policy.ResourcePlan, policy.ActionRead),
			h.GetAll,
		)
		plans.GET("/:id",
			policy.Authorize(engine, policy.ResourcePlan, policy.ActionRead),
			h.GetByID,
		)
		plans.POST("",
			policy.Authorize(engine, policy.ResourcePlan, policy.ActionCreate),
			h.Create,
		)
		plans.PUT("/:id",
			policy.Authorize(engine, policy.ResourcePlan, policy.ActionUpdate),
			h.Update,
		)
		plans.DELETE("/:id",
			policy.Authorize(engine, policy.ResourcePlan, policy.ActionDelete),
			h.Delete,
		)
	}
}
