package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gym/internal/shared/contextutil"
	"go-gym/internal/shared/counter"
	stafferrors "go-gym/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID string, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context, branchID string) ([]StaffResponse, error)
	GetByID(ctx context.Context, branchID, id string) (StaffResponse, error)
	Update(ctx context.Context, branchID, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, branchID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{db: db, repo: repo, counter: counter, logger: l}
}

func (s *service) Create(ctx context.Context, branchID string, req CreateStaffRequest) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidHireDate
	}
	// For a superadmin the branch comes straight from the query string.
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, branchID, "staff_number")
	if err != nil {
		s.logger.Error("create staff generate number failed", zap.Error(err))
		return StaffResponse{}, err
	}

	row := &Staff{
		ID:          uuid.New(),
		BranchID:    branchUUID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		StaffNumber: fmt.Sprintf("STF-%06d", nextVal),
		Position:    req.Position,
		HireDate:    hireDate,
		Status:      StatusActive,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return StaffResponse{}, err
	}

	s.logger.Info("staff created",
		zap.String("request_id", rid),
		zap.String("staff_id", row.ID.String()),
		zap.String("branch_id", branchID),
		zap.String("position", row.Position),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]StaffResponse, error) {
	rows, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]StaffResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (StaffResponse, error) {
	row, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, branchID, id string, req UpdateStaffRequest) (StaffResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	row.FirstName = req.FirstName
	row.LastName = req.LastName
	row.Email = req.Email
	row.Phone = req.Phone
	row.Position = req.Position
	if req.Status != "" {
		row.Status = req.Status
	}

	if err := qtx.Update(ctx, row); err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return StaffResponse{}, err
	}

	s.logger.Info("staff updated", zap.String("staff_id", id))

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, branchID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, branchID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("staff deleted", zap.String("staff_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_staff_email" {
			return stafferrors.ErrEmailTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_email") {
		return stafferrors.ErrEmailTaken
	}

	return err
}

func mapToResponse(row Staff) StaffResponse {
	return StaffResponse{
		ID:          row.ID.String(),
		BranchID:    row.BranchID.String(),
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		FullName:    row.FullName(),
		Email:       row.Email,
		Phone:       row.Phone,
		StaffNumber: row.StaffNumber,
		Position:    row.Position,
		HireDate:    row.HireDate.Format("2006-01-02"),
		Status:      row.Status,
	}
}
