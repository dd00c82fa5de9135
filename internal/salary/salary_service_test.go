package salary

import (
	"context"
	"database/sql"
	"testing"
	"time"

	salaryerrors "go-gym/internal/salary/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, record *SalaryRecord) error
	findAllByBranchFn   func(ctx context.Context, branchID string) ([]SalaryRecord, error)
	findByIDAndBranchFn func(ctx context.Context, branchID, id string) (*SalaryRecord, error)
	deleteFn            func(ctx context.Context, branchID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, record *SalaryRecord) error {
	return f.createFn(ctx, record)
}
func (f *fakeRepo) FindAllByBranch(ctx context.Context, branchID string) ([]SalaryRecord, error) {
	return f.findAllByBranchFn(ctx, branchID)
}
func (f *fakeRepo) FindByIDAndBranch(ctx context.Context, branchID, id string) (*SalaryRecord, error) {
	return f.findByIDAndBranchFn(ctx, branchID, id)
}
func (f *fakeRepo) Delete(ctx context.Context, branchID, id string) error {
	return f.deleteFn(ctx, branchID, id)
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	staffID := uuid.New()

	var saved SalaryRecord
	repo := &fakeRepo{
		createFn: func(ctx context.Context, record *SalaryRecord) error {
			saved = *record
			return nil
		},
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*SalaryRecord, error) {
			row := saved
			row.StaffName = "Alex Tan"
			return &row, nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), branchID, CreateSalaryRequest{
		StaffID:       staffID.String(),
		BaseSalary:    3200,
		Allowance:     400,
		EffectiveDate: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, staffID.String(), resp.StaffID)
	assert.Equal(t, "Alex Tan", resp.StaffName)
	assert.Equal(t, 3200, resp.BaseSalary)
	assert.Equal(t, "2026-09-01", resp.EffectiveDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateEffectiveDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, record *SalaryRecord) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_salary_effective"}
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateSalaryRequest{
		StaffID:       uuid.New().String(),
		BaseSalary:    3200,
		EffectiveDate: "2026-09-01",
	})
	assert.ErrorIs(t, err, salaryerrors.ErrSalaryEffectiveDateExists)
}

func TestService_Update_AppendsNewRecord(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	staffID := uuid.New()
	existing := SalaryRecord{
		ID:            uuid.New(),
		StaffID:       staffID,
		BaseSalary:    3200,
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var created SalaryRecord
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*SalaryRecord, error) {
			row := existing
			return &row, nil
		},
		createFn: func(ctx context.Context, record *SalaryRecord) error {
			created = *record
			return nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), branchID, existing.ID.String(), UpdateSalaryRequest{
		StaffID:       staffID.String(),
		BaseSalary:    3500,
		Allowance:     400,
		EffectiveDate: "2026-10-01",
	})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, created.ID)
	assert.Equal(t, 3500, resp.BaseSalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*SalaryRecord, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(nil, repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, salaryerrors.ErrSalaryNotFound)
}

func TestService_Create_InvalidEffectiveDate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateSalaryRequest{
		StaffID:       uuid.New().String(),
		BaseSalary:    3200,
		EffectiveDate: "09/01/2026",
	})
	assert.ErrorIs(t, err, salaryerrors.ErrInvalidEffectiveDate)
}
