package invoice

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
	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	invoices.Use(middleware.ContextLogger(logger))
	{
		invoices.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceInvoice, policy.ActionRead),
			handler.GetAll,
		)

		invoices.GET("/my", handler.MyInvoices)

		invoices.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceInvoice, policy.ActionRead),
			handler.GetByID,
		)

		invoices.POST("",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceInvoice, policy.ActionCreate),
			handler.Create,
		)

		invoices.POST("/:id/pay",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceInvoice, policy.ActionUpdate),
			handler.MarkPaid,
		)

		invoices.POST("/:id/void",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceInvoice, policy.ActionDelete),
			handler.Void,
		)
	}
}
