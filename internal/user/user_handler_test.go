package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-gym/internal/identity"
	"go-gym/internal/policy"
	"go-gym/internal/user"
	usererrors "go-gym/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getAllFn             func(ctx context.Context, branchID string) ([]user.UserResponse, error)
	getByIDFn            func(ctx context.Context, branchID, id string) (user.UserResponse, error)
	createFn             func(ctx context.Context, branchID string, req user.CreateUserRequest) (user.UserResponse, error)
	assignRoleFn         func(ctx context.Context, branchID, userID, roleName string) (user.UserResponse, error)
	toggleStatusFn       func(ctx context.Context, branchID, id string, isActive bool) error
	changePasswordFn     func(ctx context.Context, userID, currentPassword, newPassword string) error
	forceResetPasswordFn func(ctx context.Context, branchID, userID, newPassword string) error
}

func (f *fakeService) GetAll(ctx context.Context, branchID string) ([]user.UserResponse, error) {
	return f.getAllFn(ctx, branchID)
}
func (f *fakeService) GetByID(ctx context.Context, branchID, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, branchID, id)
}
func (f *fakeService) Create(ctx context.Context, branchID string, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, branchID, req)
}
func (f *fakeService) AssignRole(ctx context.Context, branchID, userID, roleName string) (user.UserResponse, error) {
	return f.assignRoleFn(ctx, branchID, userID, roleName)
}
func (f *fakeService) ToggleStatus(ctx context.Context, branchID, id string, isActive bool) error {
	return f.toggleStatusFn(ctx, branchID, id, isActive)
}
func (f *fakeService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return f.changePasswordFn(ctx, userID, currentPassword, newPassword)
}
func (f *fakeService) ForceResetPassword(ctx context.Context, branchID, userID, newPassword string) error {
	return f.forceResetPasswordFn(ctx, branchID, userID, newPassword)
}

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_Create(t *testing.T) {
	branchID := uuid.New().String()

	svc := &fakeService{
		createFn: func(ctx context.Context, bid string, req user.CreateUserRequest) (user.UserResponse, error) {
			assert.Equal(t, branchID, bid)
			assert.Equal(t, "receptionist", req.Role)
			return user.UserResponse{ID: uuid.New().String(), BranchID: bid, Role: req.Role}, nil
		},
	}
	h := user.NewHandler(svc)

	body := `{"name":"Front Desk","email":"desk@example.com","password":"hunter2hunter2","role":"receptionist"}`
	c, w := newTestContext(t, http.MethodPost, "/users", body)
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleAdmin, BranchID: branchID})
	policy.SetDecision(c, policy.Decision{Allowed: true, BranchFilter: branchID})

	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "receptionist")
}

func TestHandler_Create_ShortPassword(t *testing.T) {
	h := user.NewHandler(&fakeService{})

	body := `{"name":"Front Desk","email":"desk@example.com","password":"short","role":"receptionist"}`
	c, w := newTestContext(t, http.MethodPost, "/users", body)
	policy.SetDecision(c, policy.Decision{Allowed: true})

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_AssignRole_UnknownRole(t *testing.T) {
	branchID := uuid.New().String()

	svc := &fakeService{
		assignRoleFn: func(ctx context.Context, bid, userID, roleName string) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrInvalidRole
		},
	}
	h := user.NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/users/"+uuid.New().String()+"/role", `{"role":"manager"}`)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleAdmin, BranchID: branchID})
	policy.SetDecision(c, policy.Decision{Allowed: true, BranchFilter: branchID})

	h.AssignRole(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ChangePassword_UsesCallerIdentity(t *testing.T) {
	callerID := uuid.New().String()

	svc := &fakeService{
		changePasswordFn: func(ctx context.Context, userID, currentPassword, newPassword string) error {
			// The target account is always the caller's own.
			assert.Equal(t, callerID, userID)
			return nil
		},
	}
	h := user.NewHandler(svc)

	body := `{"currentPassword":"correct-horse","newPassword":"battery-staple-9"}`
	c, w := newTestContext(t, http.MethodPost, "/users/change-password", body)
	identity.SetPrincipal(c, identity.Principal{UserID: callerID, Role: identity.RoleMember})

	h.ChangePassword(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	branchID := uuid.New().String()

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, bid, id string) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		},
	}
	h := user.NewHandler(svc)

	c, w := newTestContext(t, http.MethodGet, "/users/"+uuid.New().String(), "")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleAdmin, BranchID: branchID})
	policy.SetDecision(c, policy.Decision{Allowed: true, BranchFilter: branchID})

	h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
