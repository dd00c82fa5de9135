package salary

import (
	"go-gym/internal/middleware"
	"go-gym/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	engine *policy.Engine,
	logger *zap.Logger,
) {
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	salaries.Use(middleware.ContextLogger(logger))
	{
		salaries.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceSalary, policy.ActionRead),
			handler.GetAll,
		)

		salaries.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceSalary, policy.ActionRead),
			handler.GetByID,
		)

		salaries.POST("",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceSalary, policy.ActionCreate),
			handler.Create,
		)

		salaries.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceSalary, policy.ActionUpdate),
			handler.Update,
		)

		salaries.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			policy.Authorize(engine, policy.ResourceSalary, policy.ActionDelete),
			handler.Delete,
		)
	}
}
