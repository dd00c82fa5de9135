package identity

import (
	"go-gym/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated actor for one request. It is built
// from the credential token on every call and never persisted.
type Principal struct {
	UserID   string
	StaffID  string // set when the user is branch personnel
	MemberID string // set when the user is a gym member
	Role     Role
	BranchID string // empty for superadmin (no affiliation)
	Name     string
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// ResolveFromClaims derives the Principal from verified JWT claims.
// Signature and expiry checks happen before this in the auth
// middleware; here we only validate claim shape.
func ResolveFromClaims(claims jwt.MapClaims) (Principal, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, apperror.ErrUnauthorized
	}

	rawRole, ok := claims["role"].(string)
	if !ok || rawRole == "" {
		return Principal{}, apperror.ErrUnauthorized
	}

	role, err := ParseRole(rawRole)
	if err != nil {
		return Principal{}, apperror.ErrUnauthorized
	}

	p := Principal{
		UserID: userID,
		Role:   role,
	}
	if branchID, ok := claims["branch_id"].(string); ok {
		p.BranchID = branchID
	}
	if staffID, ok := claims["staff_id"].(string); ok {
		p.StaffID = staffID
	}
	if memberID, ok := claims["member_id"].(string); ok {
		p.MemberID = memberID
	}
	if name, ok := claims["name"].(string); ok {
		p.Name = name
	}

	// A superadmin carries no branch affiliation; any branch claim on
	// the token is ignored rather than trusted.
	if p.IsSuperAdmin() {
		p.BranchID = ""
	}

	return p, nil
}

const principalContextKey = "principal"

// SetPrincipal stores the resolved Principal on the gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalContextKey, p)
}

// FromContext returns the Principal attached by the auth middleware.
func FromContext(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalContextKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
