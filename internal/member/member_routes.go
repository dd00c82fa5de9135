package member

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
	members := r.Group("/members")
	members.Use(middleware.AuthMiddleware())
	members.Use(middleware.ContextLogger(logger))
	{
		members.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceMember, policy.ActionRead),
			handler.GetAll,
		)

		members.GET("/options",
			middleware.RateLimitByUser(5, 20),
			policy.Authorize(engine, policy.ResourceMember, policy.ActionRead),
			handler.GetOptions,
		)

		members.GET("/me", handler.Me)

		members.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceMember, policy.ActionRead),
			handler.GetByID,
		)

		members.POST("",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceMember, policy.ActionCreate),
			handler.Register,
		)

		members.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceMember, policy.ActionUpdate),
			handler.Update,
		)

		members.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			policy.Authorize(engine, policy.ResourceMember, policy.ActionDelete),
			handler.Delete,
		)
	}
}
