package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceRole, policy.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceRole, policy.ActionRead),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.1, 1),
			policy.Authorize(engine, policy.ResourceRole, policy.ActionCreate),
			handler.Create,
		)

		users.POST("/:id/role",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceRole, policy.ActionUpdate),
			handler.AssignRole,
		)

		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceRole, policy.ActionUpdate),
			handler.ToggleStatus,
		)

		users.POST("/change-password",
			middleware.RateLimitByUser(0.5, 2),
			handler.ChangePassword,
		)

		users.POST("/:id/force-reset-password",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceRole, policy.ActionUpdate),
			handler.ForceResetPassword,
		)
	}
}
