package policy

import (
	"go-gym/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, engine *Engine) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("", Authorize(engine, ResourceRole, ActionRead), h.ListRoles)
	}

	permissions := r.Group("/permissions")
	permissions.Use(middleware.AuthMiddleware())
	{
		permissions.GET("", Authorize(engine, ResourceRole, ActionRead), h.ListPermissions)
	}
}
