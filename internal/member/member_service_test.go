package member

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-gym/internal/events"
	membererrors "go-gym/internal/member/errors"
	"go-gym/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, m *Member) error
	findAllByBranchFn   func(ctx context.Context, branchID string) ([]Member, error)
	findOptionsFn       func(ctx context.Context, branchID string) ([]Member, error)
	findByIDAndBranchFn func(ctx context.Context, branchID, id string) (*Member, error)
	findByIDFn          func(ctx context.Context, id string) (*Member, error)
	planExistsFn        func(ctx context.Context, planID string) (bool, error)
	updateFn            func(ctx context.Context, m *Member) error
	deleteFn            func(ctx context.Context, branchID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, m *Member) error {
	return f.createFn(ctx, m)
}
func (f *fakeRepo) FindAllByBranch(ctx context.Context, branchID string) ([]Member, error) {
	return f.findAllByBranchFn(ctx, branchID)
}
func (f *fakeRepo) FindOptionsByBranch(ctx context.Context, branchID string) ([]Member, error) {
	return f.findOptionsFn(ctx, branchID)
}
func (f *fakeRepo) FindByIDAndBranch(ctx context.Context, branchID, id string) (*Member, error) {
	return f.findByIDAndBranchFn(ctx, branchID, id)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Member, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) PlanExists(ctx context.Context, planID string) (bool, error) {
	return f.planExistsFn(ctx, planID)
}
func (f *fakeRepo) Update(ctx context.Context, m *Member) error { return f.updateFn(ctx, m) }
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

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func TestService_Register(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	planID := uuid.New().String()

	var saved Member
	repo := &fakeRepo{
		createFn:     func(ctx context.Context, m *Member) error { saved = *m; return nil },
		planExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(context.Background(), branchID, CreateMemberRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		PlanID:    planID,
	})
	require.NoError(t, err)
	assert.Equal(t, "GYM-000001", resp.MemberNumber)
	assert.Equal(t, StatusActive, saved.Status)
	assert.Equal(t, branchID, saved.BranchID.String())

	// Registration queues the lifecycle event in the same transaction.
	require.Len(t, outbox.events, 1)
	assert.Equal(t, events.MemberRegisteredTopic, outbox.events[0].Topic)
	assert.Equal(t, "member_registered", outbox.events[0].EventType)

	var event events.MemberRegisteredEvent
	require.NoError(t, json.Unmarshal(outbox.events[0].Payload, &event))
	assert.Equal(t, saved.ID.String(), event.MemberID)
	assert.Equal(t, planID, event.PlanID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_UnknownPlan(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		planExistsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Register(context.Background(), uuid.New().String(), CreateMemberRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
		PlanID:    uuid.New().String(),
	})
	assert.ErrorIs(t, err, membererrors.ErrPlanNotFound)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, m *Member) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_member_email"}
		},
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Register(context.Background(), uuid.New().String(), CreateMemberRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	assert.ErrorIs(t, err, membererrors.ErrEmailTaken)
}

func TestService_Register_InvalidJoinDate(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, nil)

	_, err := svc.Register(context.Background(), uuid.New().String(), CreateMemberRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
		JoinDate:  "03/01/2026",
	})
	assert.ErrorIs(t, err, membererrors.ErrInvalidJoinDate)
}

func TestService_Register_InvalidBranchID(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, nil)

	// Superadmins pass the target branch as raw query input.
	_, err := svc.Register(context.Background(), "not-a-uuid", CreateMemberRequest{
		FirstName: "Jane",
		Email:     "jane@example.com",
	})
	assert.ErrorIs(t, err, membererrors.ErrInvalidBranchID)
}

func TestService_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	existing := Member{
		ID:           uuid.New(),
		BranchID:     branchID,
		FirstName:    "Jane",
		Email:        "jane@example.com",
		MemberNumber: "GYM-000001",
		Status:       StatusActive,
	}

	var saved Member
	repo := &fakeRepo{
		findByIDAndBranchFn: func(ctx context.Context, bid, id string) (*Member, error) {
			row := existing
			return &row, nil
		},
		updateFn: func(ctx context.Context, m *Member) error { saved = *m; return nil },
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), branchID.String(), existing.ID.String(), UpdateMemberRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Status:    StatusSuspended,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuspended, saved.Status)
	assert.Equal(t, "Jane Smith", resp.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
