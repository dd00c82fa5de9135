package attendance

import (
	"go-gym/internal/identity"
	"go-gym/internal/middleware"
	"go-gym/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	engine *policy.Engine,
	logger *zap.Logger,
) {
	attendances := r.Group("/attendance")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.POST("/checkin",
			middleware.RateLimitByUser(1, 5),
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionCreate),
			h.CheckIn,
		)

		attendances.POST("/checkout",
			middleware.RateLimitByUser(1, 5),
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionUpdate),
			h.CheckOut,
		)

		attendances.POST("/scan-qr",
			middleware.RateLimitByUser(2, 10),
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionScan),
			h.ScanQR,
		)

		attendances.GET("",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.List,
		)

		attendances.GET("/today",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.Today,
		)

		attendances.GET("/statistics",
			middleware.RequireRole(identity.RoleSuperAdmin, identity.RoleAdmin, identity.RoleReceptionist),
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.Statistics,
		)

		attendances.GET("/member/:memberId/history",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.MemberHistory,
		)

		attendances.GET("/member/:memberId/today",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.MemberToday,
		)

		attendances.GET("/status/:memberId",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.Status,
		)

		// Member self-service; no memberId from the client, the
		// principal is the subject.
		attendances.GET("/my-history",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.MyHistory,
		)

		attendances.GET("/my-today",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.MyToday,
		)

		attendances.GET("/my-status",
			policy.Authorize(engine, policy.ResourceAttendance, policy.ActionRead),
			h.MyStatus,
		)

		attendances.GET("/my-qr",
			middleware.RateLimitByUser(2, 10),
			h.MyQRToken,
		)
	}
}
