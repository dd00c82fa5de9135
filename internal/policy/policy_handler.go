package policy

import (
	"net/http"

	"go-gym/internal/identity"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler serves the read-only role/permission administration
// endpoints. The matrix is code, so there is nothing to mutate here;
// writes would go through a deploy, not an API call.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles := make([]RoleResponse, 0, len(identity.Roles()))
	for _, role := range identity.Roles() {
		r := RoleResponse{
			Name:       role.String(),
			SuperAdmin: role == identity.RoleSuperAdmin,
		}
		for _, perm := range h.engine.RolePermissions(role) {
			r.Permissions = append(r.Permissions, PermissionResponse{
				Resource: perm[0],
				Action:   perm[1],
			})
		}
		roles = append(roles, r)
	}
	response.Success(c, http.StatusOK, "Roles retrieved", roles, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms := make([]PermissionResponse, 0, len(Resources())*len(Actions()))
	for _, res := range Resources() {
		for _, act := range Actions() {
			perms = append(perms, PermissionResponse{
				Resource: string(res),
				Action:   string(act),
			})
		}
	}
	response.Success(c, http.StatusOK, "Permissions retrieved", perms, nil)
}
