package identity

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRole("manager")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)

	// Casing matters; role claims are stored lowercase.
	_, err = ParseRole("Admin")
	assert.Error(t, err)
}

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, RoleReceptionist.IsStaff())
	assert.True(t, RoleHousekeeping.IsStaff())
	assert.False(t, RoleSuperAdmin.IsStaff())
	assert.False(t, RoleMember.IsStaff())
}

func TestResolveFromClaims(t *testing.T) {
	userID := uuid.New().String()
	branchID := uuid.New().String()
	staffID := uuid.New().String()

	p, err := ResolveFromClaims(jwt.MapClaims{
		"user_id":   userID,
		"role":      "receptionist",
		"branch_id": branchID,
		"staff_id":  staffID,
		"name":      "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, RoleReceptionist, p.Role)
	assert.Equal(t, branchID, p.BranchID)
	assert.Equal(t, staffID, p.StaffID)
	assert.Equal(t, "Jane Doe", p.Name)
}

func TestResolveFromClaims_SuperAdminDropsBranch(t *testing.T) {
	p, err := ResolveFromClaims(jwt.MapClaims{
		"user_id":   uuid.New().String(),
		"role":      "superadmin",
		"branch_id": uuid.New().String(),
	})
	require.NoError(t, err)
	assert.True(t, p.IsSuperAdmin())
	assert.Empty(t, p.BranchID)
}

func TestResolveFromClaims_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user", jwt.MapClaims{"role": "admin"}},
		{"missing role", jwt.MapClaims{"user_id": uuid.New().String()}},
		{"unknown role", jwt.MapClaims{"user_id": uuid.New().String(), "role": "janitor"}},
		{"non-string user", jwt.MapClaims{"user_id": 42, "role": "admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveFromClaims(tc.claims)
			assert.Error(t, err)
		})
	}
}
