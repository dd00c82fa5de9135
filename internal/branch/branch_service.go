package branch

import (
	"context"
	"database/sql"
	"errors"

	brancherrors "go-gym/internal/branch/errors"
	"go-gym/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	GetAll(ctx context.Context) ([]BranchResponse, error)
	GetByID(ctx context.Context, id string) (BranchResponse, error)
	Update(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("branch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error) {
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return BranchResponse{}, brancherrors.ErrBranchCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BranchResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b := &Branch{
		ID:       uuid.New(),
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}

	if err := qtx.Create(ctx, b); err != nil {
		return BranchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BranchResponse{}, err
	}

	s.logger.Info("branch created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("branch_id", b.ID.String()),
		zap.String("code", b.Code),
	)

	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]BranchResponse, len(branches))
	for i, b := range branches {
		res[i] = mapToResponse(b)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, brancherrors.ErrBranchNotFound
		}
		return BranchResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBranchRequest) (BranchResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BranchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, brancherrors.ErrBranchNotFound
		}
		return BranchResponse{}, err
	}

	b.Name = req.Name
	b.Address = req.Address
	b.City = req.City
	b.Phone = req.Phone
	b.Email = req.Email
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, b); err != nil {
		return BranchResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BranchResponse{}, err
	}

	return mapToResponse(*b), nil
}

// Deactivate soft-disables a branch. Existing data stays; logins and
// policy checks for the branch keep working so history remains
// readable, but registration flows check IsActive.
func (s *service) Deactivate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return brancherrors.ErrBranchNotFound
		}
		return err
	}

	b.IsActive = false
	if err := qtx.Update(ctx, b); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("branch deactivated", zap.String("branch_id", id))
	return nil
}

func mapToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:       b.ID.String(),
		Name:     b.Name,
		Code:     b.Code,
		Address:  b.Address,
		City:     b.City,
		Phone:    b.Phone,
		Email:    b.Email,
		IsActive: b.IsActive,
	}
}
