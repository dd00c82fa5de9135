package gymclass

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
	classes := r.Group("/classes")
	classes.Use(middleware.AuthMiddleware())
	classes.Use(middleware.ContextLogger(logger))
	{
		classes.GET("",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceClass, policy.ActionRead),
			handler.GetClasses,
		)

		classes.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceClass, policy.ActionRead),
			handler.GetClassByID,
		)

		classes.GET("/:id/bookings",
			middleware.RateLimitByUser(3, 10),
			policy.Authorize(engine, policy.ResourceBooking, policy.ActionRead),
			handler.GetClassBookings,
		)

		classes.POST("",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceClass, policy.ActionCreate),
			handler.CreateClass,
		)

		classes.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			policy.Authorize(engine, policy.ResourceClass, policy.ActionUpdate),
			handler.UpdateClass,
		)

		classes.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			policy.Authorize(engine, policy.ResourceClass, policy.ActionDelete),
			handler.DeleteClass,
		)
	}

	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	bookings.Use(middleware.ContextLogger(logger))
	{
		bookings.POST("",
			middleware.RateLimitByUser(1, 5),
			policy.Authorize(engine, policy.ResourceBooking, policy.ActionCreate),
			handler.BookClass,
		)

		bookings.DELETE("/:bookingId",
			middleware.RateLimitByUser(1, 5),
			policy.Authorize(engine, policy.ResourceBooking, policy.ActionDelete),
			handler.CancelBooking,
		)

		bookings.GET("/my", handler.MyBookings)
	}
}
