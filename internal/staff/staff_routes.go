package staff

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
	staff := r.Group("/staff")
	staff.Use(middleware.AuthMiddleware())
	staff.Use(middleware.ContextLogger(logger))
	{
		staff.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceStaff, policy.ActionRead),
			handler.GetAll,
		)

		staff.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceStaff, policy.ActionRead),
			handler.GetByID,
		)

		staff.POST("",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceStaff, policy.ActionCreate),
			handler.Create,
		)

		staff.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceStaff, policy.ActionUpdate),
			handler.Update,
		)

		staff.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			policy.Authorize(engine, policy.ResourceStaff, policy.ActionDelete),
			handler.Delete,
		)
	}
}
