package user

import (
	"context"
	"errors"
	"strings"

	"go-gym/internal/identity"
	"go-gym/internal/shared/contextutil"
	usererrors "go-gym/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	GetAll(ctx context.Context, branchID string) ([]UserResponse, error)
	GetByID(ctx context.Context, branchID, id string) (UserResponse, error)

	Create(ctx context.Context, branchID string, req CreateUserRequest) (UserResponse, error)
	AssignRole(ctx context.Context, branchID, userID, roleName string) (UserResponse, error)
	ToggleStatus(ctx context.Context, branchID, id string, isActive bool) error

	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ForceResetPassword(ctx context.Context, branchID, userID, newPassword string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]UserResponse, error) {
	users, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (UserResponse, error) {
	u, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, branchID string, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	l.Info("creating user",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Role:     role.String(),
		Email:    req.Email,
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Superadmins float above branches; everyone else is pinned.
	if role != identity.RoleSuperAdmin {
		branchUUID, err := uuid.Parse(branchID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidBranchID
		}
		u.BranchID = &branchUUID
	}
	if req.StaffID != "" {
		id := uuid.MustParse(req.StaffID)
		u.StaffID = &id
	}
	if req.MemberID != "" {
		id := uuid.MustParse(req.MemberID)
		u.MemberID = &id
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user created successfully", zap.String("email", u.Email))
	return mapToResponse(*u), nil
}

func (s *service) AssignRole(ctx context.Context, branchID, userID, roleName string) (UserResponse, error) {
	role, err := identity.ParseRole(strings.TrimSpace(roleName))
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	u, err := s.repo.FindByIDAndBranch(ctx, branchID, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Role = role.String()
	if role == identity.RoleSuperAdmin {
		u.BranchID = nil
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, branchID, id string, isActive bool) error {
	l := contextutil.GetLogger(ctx, nil)

	u, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		l.Error("failed to find user", zap.Error(err))
		return mapRepositoryError(err)
	}

	u.IsActive = isActive

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.Error(err))
		return err
	}

	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, nil)

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash new password", zap.Error(err))
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func (s *service) ForceResetPassword(ctx context.Context, branchID, userID, newPassword string) error {
	u, err := s.repo.FindByIDAndBranch(ctx, branchID, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrUserAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return usererrors.ErrUserAlreadyExists
	}

	return err
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.BranchID != nil {
		resp.BranchID = u.BranchID.String()
	}
	if u.StaffID != nil {
		resp.StaffID = u.StaffID.String()
	}
	if u.MemberID != nil {
		resp.MemberID = u.MemberID.String()
	}
	return resp
}
