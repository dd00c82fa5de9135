package user

import (
	"context"
	"testing"

	"go-gym/internal/identity"
	usererrors "go-gym/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, u *User) error
	findByIDFn          func(ctx context.Context, id string) (*User, error)
	findByIDAndBranchFn func(ctx context.Context, branchID, id string) (*User, error)
	findByEmailFn       func(ctx context.Context, email string) (*User, error)
	findAllByBranchFn   func(ctx context.Context, branchID string) ([]User, error)
	updateFn            func(ctx context.Context, u *User) error
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error { return f.createFn(ctx, u) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByIDAndBranch(ctx context.Context, branchID, id string) (*User, error) {
	return f.findByIDAndBranchFn(ctx, branchID, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) FindAllByBranch(ctx context.Context, branchID string) ([]User, error) {
	return f.findAllByBranchFn(ctx, branchID)
}
func (f *fakeRepo) Update(ctx context.Context, u *User) error { return f.updateFn(ctx, u) }

func TestService_Create(t *testing.T) {
	branchID := uuid.New().String()

	var saved User
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) error { saved = *u; return nil },
	}

	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), branchID, CreateUserRequest{
		Name:     "Front Desk",
		Email:    "desk@example.com",
		Password: "hunter2hunter2",
		Role:     "receptionist",
	})
	require.NoError(t, err)
	assert.Equal(t, "receptionist", resp.Role)
	assert.Equal(t, branchID, resp.BranchID)
	assert.True(t, saved.IsActive)

	// Stored password must be a bcrypt hash of the request password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("hunter2hunter2")))
}

func TestService_Create_SuperAdminHasNoBranch(t *testing.T) {
	var saved User
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) error { saved = *u; return nil },
	}

	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), "", CreateUserRequest{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "hunter2hunter2",
		Role:     identity.RoleSuperAdmin.String(),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.BranchID)
	assert.Nil(t, saved.BranchID)
}

func TestService_Create_UnknownRole(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateUserRequest{
		Name:     "Someone",
		Email:    "x@example.com",
		Password: "hunter2hunter2",
		Role:     "manager",
	})
	assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		},
	}

	svc := NewService(repo)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateUserRequest{
		Name:     "Someone",
		Email:    "x@example.com",
		Password: "hunter2hunter2",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
}

func TestService_AssignRole(t *testing.T) {
	branchID := uuid.New()
	existing := User{
		ID:       uuid.New(),
		BranchID: &branchID,
		Email:    "desk@example.com",
		Role:     "receptionist",
		IsActive: true,
	}

	var saved User
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*User, error) {
			row := existing
			return &row, nil
		},
		updateFn: func(ctx context.Context, u *User) error { saved = *u; return nil },
	}

	svc := NewService(repo)

	resp, err := svc.AssignRole(context.Background(), branchID.String(), existing.ID.String(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "admin", saved.Role)
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	existing := User{ID: uuid.New(), Password: string(hashed)}

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*User, error) {
			row := existing
			return &row, nil
		},
	}

	svc := NewService(repo)

	err := svc.ChangePassword(context.Background(), existing.ID.String(), "battery-staple", "new-password-1")
	assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}
