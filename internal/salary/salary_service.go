package salary

import (
	"context"
	"database/sql"
	"time"

	salaryerrors "go-gym/internal/salary/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID string, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context, branchID string) ([]SalaryResponse, error)
	GetByID(ctx context.Context, branchID, id string) (SalaryResponse, error)
	Update(ctx context.Context, branchID, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, branchID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	branchID string,
	req CreateSalaryRequest,
) (SalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidStaffID
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEffectiveDate
	}

	record := &SalaryRecord{
		ID:            uuid.New(),
		StaffID:       staffID,
		BaseSalary:    req.BaseSalary,
		Allowance:     req.Allowance,
		EffectiveDate: effectiveDate,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByIDAndBranch(ctx, branchID, record.ID.String())
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]SalaryResponse, error) {
	records, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (SalaryResponse, error) {
	record, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*record), nil
}

// Update appends a new record rather than rewriting history; payroll
// math for past periods stays reproducible.
func (s *service) Update(
	ctx context.Context,
	branchID, id string,
	req UpdateSalaryRequest,
) (SalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidStaffID
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEffectiveDate
	}

	newRecord := &SalaryRecord{
		ID:            uuid.New(),
		StaffID:       staffID,
		BaseSalary:    req.BaseSalary,
		Allowance:     req.Allowance,
		EffectiveDate: effectiveDate,
	}

	if err := qtx.Create(ctx, newRecord); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	return mapToResponse(*newRecord), nil
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

	return tx.Commit()
}

func mapToResponse(record SalaryRecord) SalaryResponse {
	return SalaryResponse{
		ID:            record.ID.String(),
		StaffID:       record.StaffID.String(),
		StaffName:     record.StaffName,
		BaseSalary:    record.BaseSalary,
		Allowance:     record.Allowance,
		EffectiveDate: record.EffectiveDate.Format("2006-01-02"),
	}
}

func mapToListResponse(records []SalaryRecord) []SalaryResponse {
	res := make([]SalaryResponse, len(records))
	for i, record := range records {
		res[i] = mapToResponse(record)
	}
	return res
}
