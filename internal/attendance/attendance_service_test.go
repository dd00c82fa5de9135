package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "go-gym/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createFn               func(ctx context.Context, a *Attendance) error
	findActiveFn           func(ctx context.Context, branchID, memberID string, day time.Time) (*Attendance, error)
	findTodayByBranchFn    func(ctx context.Context, branchID string, day time.Time) ([]Attendance, error)
	findByMemberFn         func(ctx context.Context, branchID, memberID string, limit int) ([]Attendance, error)
	findByMemberOnDayFn    func(ctx context.Context, branchID, memberID string, day time.Time) ([]Attendance, error)
	listFn                 func(ctx context.Context, f ListFilter) ([]Attendance, error)
	findCompletedInRangeFn func(ctx context.Context, branchID string, start, end time.Time) ([]Attendance, error)
	updateFn               func(ctx context.Context, a *Attendance) error
	findMemberRefFn        func(ctx context.Context, memberID string) (*MemberRef, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindActive(ctx context.Context, branchID, memberID string, day time.Time) (*Attendance, error) {
	return f.findActiveFn(ctx, branchID, memberID, day)
}
func (f *fakeRepo) FindTodayByBranch(ctx context.Context, branchID string, day time.Time) ([]Attendance, error) {
	return f.findTodayByBranchFn(ctx, branchID, day)
}
func (f *fakeRepo) FindByMember(ctx context.Context, branchID, memberID string, limit int) ([]Attendance, error) {
	return f.findByMemberFn(ctx, branchID, memberID, limit)
}
func (f *fakeRepo) FindByMemberOnDay(ctx context.Context, branchID, memberID string, day time.Time) ([]Attendance, error) {
	return f.findByMemberOnDayFn(ctx, branchID, memberID, day)
}
func (f *fakeRepo) List(ctx context.Context, fl ListFilter) ([]Attendance, error) {
	return f.listFn(ctx, fl)
}
func (f *fakeRepo) FindCompletedInRange(ctx context.Context, branchID string, start, end time.Time) ([]Attendance, error) {
	return f.findCompletedInRangeFn(ctx, branchID, start, end)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) FindMemberRef(ctx context.Context, memberID string) (*MemberRef, error) {
	return f.findMemberRefFn(ctx, memberID)
}

func activeMember(id string) *MemberRef {
	return &MemberRef{ID: uuid.MustParse(id), FirstName: "Jane", LastName: "Doe", Status: "active"}
}

func TestService_CheckInAndCheckOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	memberID := uuid.New().String()
	ctx := context.Background()

	var saved Attendance
	repo := &fakeRepo{}
	repo.findMemberRefFn = func(ctx context.Context, id string) (*MemberRef, error) {
		return activeMember(memberID), nil
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findActiveFn = func(ctx context.Context, bid, mid string, day time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil || saved.CheckOut != nil {
			return nil, gorm.ErrRecordNotFound
		}
		return &saved, nil
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.CheckIn(ctx, branchID, memberID, "")
	require.NoError(t, err)
	assert.True(t, in.Success)
	require.NotNil(t, in.Attendance)
	assert.Equal(t, StatusActive, in.Attendance.Status)
	assert.Equal(t, SourceManual, in.Attendance.Source)

	mock.ExpectBegin()
	mock.ExpectCommit()
	out, err := svc.CheckOut(ctx, branchID, memberID, "")
	require.NoError(t, err)
	assert.True(t, out.Success)
	require.NotNil(t, out.Attendance)
	assert.Equal(t, StatusCompleted, out.Attendance.Status)
	require.NotNil(t, out.Attendance.TotalHours)
	assert.GreaterOrEqual(t, *out.Attendance.TotalHours, 0.0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_AlreadyCheckedIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	memberID := uuid.New().String()

	existing := Attendance{
		ID:       uuid.New(),
		BranchID: uuid.MustParse(branchID),
		MemberID: uuid.MustParse(memberID),
		CheckIn:  time.Now().UTC(),
		Status:   StatusActive,
	}

	repo := &fakeRepo{}
	repo.findMemberRefFn = func(ctx context.Context, id string) (*MemberRef, error) {
		return activeMember(memberID), nil
	}
	repo.findActiveFn = func(ctx context.Context, bid, mid string, day time.Time) (*Attendance, error) {
		return &existing, nil
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	result, err := svc.CheckIn(context.Background(), branchID, memberID, "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Member is already checked in", result.Message)
	require.NotNil(t, result.Attendance)
	assert.Equal(t, existing.ID.String(), result.Attendance.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_LosesCreateRace(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	memberID := uuid.New().String()

	winner := Attendance{
		ID:       uuid.New(),
		BranchID: uuid.MustParse(branchID),
		MemberID: uuid.MustParse(memberID),
		CheckIn:  time.Now().UTC(),
		Status:   StatusActive,
	}

	calls := 0
	repo := &fakeRepo{}
	repo.findMemberRefFn = func(ctx context.Context, id string) (*MemberRef, error) {
		return activeMember(memberID), nil
	}
	repo.findActiveFn = func(ctx context.Context, bid, mid string, day time.Time) (*Attendance, error) {
		calls++
		if calls == 1 {
			// The racing check-in has not committed yet.
			return nil, gorm.ErrRecordNotFound
		}
		return &winner, nil
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_active"}
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	result, err := svc.CheckIn(context.Background(), branchID, memberID, "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Attendance)
	assert.Equal(t, winner.ID.String(), result.Attendance.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_MemberNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findMemberRefFn = func(ctx context.Context, id string) (*MemberRef, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), uuid.New().String(), "")
	assert.ErrorIs(t, err, attendanceerrors.ErrMemberNotFound)
}

func TestService_CheckIn_InactiveMember(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	memberID := uuid.New().String()
	repo := &fakeRepo{}
	repo.findMemberRefFn = func(ctx context.Context, id string) (*MemberRef, error) {
		return &MemberRef{ID: uuid.MustParse(memberID), FirstName: "Jane", Status: "suspended"}, nil
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), memberID, "")
	assert.ErrorIs(t, err, attendanceerrors.ErrMemberInactive)
}

func TestService_CheckIn_InvalidIDs(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, nil, nil)

	_, err := svc.CheckIn(context.Background(), uuid.New().String(), "not-a-uuid", "")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMemberID)

	_, err = svc.CheckIn(context.Background(), "not-a-uuid", uuid.New().String(), "")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidBranchID)
}

func TestService_CheckOut_NoActiveSession(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findActiveFn = func(ctx context.Context, bid, mid string, day time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	result, err := svc.CheckOut(context.Background(), uuid.New().String(), uuid.New().String(), "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No active check-in found for this member", result.Message)
	assert.Nil(t, result.Attendance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CurrentStatus(t *testing.T) {
	memberID := uuid.New()

	repo := &fakeRepo{}
	repo.findActiveFn = func(ctx context.Context, bid, mid string, day time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(nil, repo, nil, nil)
	status, err := svc.CurrentStatus(context.Background(), "", memberID.String())
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)

	repo.findActiveFn = func(ctx context.Context, bid, mid string, day time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New(), MemberID: memberID, CheckIn: time.Now().UTC(), Status: StatusActive}, nil
	}
	status, err = svc.CurrentStatus(context.Background(), "", memberID.String())
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	require.NotNil(t, status.Attendance)
}

func TestService_Statistics(t *testing.T) {
	branchID := uuid.New().String()
	memberA := uuid.New()
	memberB := uuid.New()

	hours := func(h float64) *float64 { return &h }
	rows := []Attendance{
		{MemberID: memberA, Status: StatusCompleted, TotalHours: hours(1.5)},
		{MemberID: memberA, Status: StatusCompleted, TotalHours: hours(2.5)},
		{MemberID: memberB, Status: StatusCompleted, TotalHours: hours(2.0)},
	}

	repo := &fakeRepo{}
	repo.findCompletedInRangeFn = func(ctx context.Context, bid string, start, end time.Time) ([]Attendance, error) {
		assert.Equal(t, branchID, bid)
		return rows, nil
	}

	svc := NewService(nil, repo, nil, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	stats, err := svc.Statistics(context.Background(), branchID, start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalVisits)
	assert.Equal(t, 2, stats.UniqueMembers)
	assert.InDelta(t, 6.0, stats.TotalHours, 0.001)
	assert.InDelta(t, 2.0, stats.AvgHoursPerVisit, 0.001)
}

func TestService_Statistics_InvalidRange(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, nil, nil)

	start := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Statistics(context.Background(), uuid.New().String(), start, end)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}

func TestService_MemberHistory_AppliesBranchFilter(t *testing.T) {
	branchID := uuid.New().String()
	memberID := uuid.New().String()

	repo := &fakeRepo{
		findByMemberFn: func(ctx context.Context, bid, mid string, limit int) ([]Attendance, error) {
			assert.Equal(t, branchID, bid)
			assert.Equal(t, memberID, mid)
			assert.Equal(t, 30, limit)
			return nil, nil
		},
	}

	svc := NewService(nil, repo, nil, nil)

	_, err := svc.MemberHistory(context.Background(), branchID, memberID, 0)
	require.NoError(t, err)
}

func TestService_MemberToday_AppliesBranchFilter(t *testing.T) {
	branchID := uuid.New().String()
	memberID := uuid.New().String()

	repo := &fakeRepo{
		findByMemberOnDayFn: func(ctx context.Context, bid, mid string, day time.Time) ([]Attendance, error) {
			assert.Equal(t, branchID, bid)
			return nil, nil
		},
	}

	svc := NewService(nil, repo, nil, nil)

	_, err := svc.MemberToday(context.Background(), branchID, memberID)
	require.NoError(t, err)
}
