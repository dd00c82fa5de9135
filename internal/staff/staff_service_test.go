package staff

import (
	"context"
	"database/sql"
	"testing"

	stafferrors "go-gym/internal/staff/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, s *Staff) error
	findAllByBranchFn   func(ctx context.Context, branchID string) ([]Staff, error)
	findByIDAndBranchFn func(ctx context.Context, branchID, id string) (*Staff, error)
	updateFn            func(ctx context.Context, s *Staff) error
	deleteFn            func(ctx context.Context, branchID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, s *Staff) error {
	return f.createFn(ctx, s)
}
func (f *fakeRepo) FindAllByBranch(ctx context.Context, branchID string) ([]Staff, error) {
	return f.findAllByBranchFn(ctx, branchID)
}
func (f *fakeRepo) FindByIDAndBranch(ctx context.Context, branchID, id string) (*Staff, error) {
	return f.findByIDAndBranchFn(ctx, branchID, id)
}
func (f *fakeRepo) Update(ctx context.Context, s *Staff) error { return f.updateFn(ctx, s) }
func (f *fakeRepo) Delete(ctx context.Context, branchID, id string) error {
	return f.deleteFn(ctx, branchID, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, branchID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()

	var saved Staff
	repo := &fakeRepo{
		createFn: func(ctx context.Context, s *Staff) error { saved = *s; return nil },
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), branchID, CreateStaffRequest{
		FirstName: "Alex",
		LastName:  "Tan",
		Email:     "alex@example.com",
		Position:  "receptionist",
		HireDate:  "2026-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "STF-000001", resp.StaffNumber)
	assert.Equal(t, StatusActive, saved.Status)
	assert.Equal(t, branchID, saved.BranchID.String())
	assert.Equal(t, "receptionist", saved.Position)
	assert.Equal(t, "Alex Tan", resp.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidHireDate(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, nil)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateStaffRequest{
		FirstName: "Alex",
		Email:     "alex@example.com",
		Position:  "receptionist",
		HireDate:  "01-02-2026",
	})
	assert.ErrorIs(t, err, stafferrors.ErrInvalidHireDate)
}

func TestService_Create_InvalidBranchID(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, nil)

	// Superadmins pass the target branch as raw query input.
	_, err := svc.Create(context.Background(), "not-a-uuid", CreateStaffRequest{
		FirstName: "Alex",
		Email:     "alex@example.com",
		Position:  "receptionist",
		HireDate:  "2026-02-01",
	})
	assert.ErrorIs(t, err, stafferrors.ErrInvalidBranchID)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, s *Staff) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_staff_email"}
		},
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateStaffRequest{
		FirstName: "Alex",
		Email:     "alex@example.com",
		Position:  "admin",
		HireDate:  "2026-02-01",
	})
	assert.ErrorIs(t, err, stafferrors.ErrEmailTaken)
}

func TestService_Update_Terminate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	existing := Staff{
		ID:          uuid.New(),
		BranchID:    branchID,
		FirstName:   "Alex",
		Email:       "alex@example.com",
		StaffNumber: "STF-000001",
		Position:    "personaltrainer",
		Status:      StatusActive,
	}

	var saved Staff
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*Staff, error) {
			row := existing
			return &row, nil
		},
		updateFn: func(ctx context.Context, s *Staff) error { saved = *s; return nil },
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), branchID.String(), existing.ID.String(), UpdateStaffRequest{
		FirstName: "Alex",
		Email:     "alex@example.com",
		Position:  "personaltrainer",
		Status:    StatusTerminated,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, saved.Status)
	assert.Equal(t, StatusTerminated, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*Staff, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(nil, repo, &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
}
