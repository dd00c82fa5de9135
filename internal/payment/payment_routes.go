package payment

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
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	payments.Use(middleware.ContextLogger(logger))
	{
		payments.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourcePayment, policy.ActionRead),
			handler.GetAll,
		)

		payments.GET("/my", handler.MyPayments)

		payments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourcePayment, policy.ActionRead),
			handler.GetByID,
		)

		payments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourcePayment, policy.ActionCreate),
			handler.Record,
		)
	}
}
