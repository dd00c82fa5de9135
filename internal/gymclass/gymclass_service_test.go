package gymclass

import (
	"context"
	"database/sql"
	"testing"
	"time"

	gymclasserrors "go-gym/internal/gymclass/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createClassFn          func(ctx context.Context, gc *GymClass) error
	findClassesByBranchFn  func(ctx context.Context, branchID string, from time.Time) ([]GymClass, error)
	findClassByIDFn        func(ctx context.Context, branchID, id string) (*GymClass, error)
	updateClassFn          func(ctx context.Context, gc *GymClass) error
	deleteClassFn          func(ctx context.Context, branchID, id string) error
	createBookingFn        func(ctx context.Context, b *Booking) error
	findBookingByIDFn      func(ctx context.Context, id string) (*Booking, error)
	findBookingsByClassFn  func(ctx context.Context, classID string) ([]Booking, error)
	findBookingsByMemberFn func(ctx context.Context, memberID string) ([]Booking, error)
	countActiveBookingsFn  func(ctx context.Context, classID string) (int64, error)
	hasActiveBookingFn     func(ctx context.Context, classID, memberID string) (bool, error)
	updateBookingFn        func(ctx context.Context, b *Booking) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) CreateClass(ctx context.Context, gc *GymClass) error {
	return f.createClassFn(ctx, gc)
}
func (f *fakeRepo) FindClassesByBranch(ctx context.Context, branchID string, from time.Time) ([]GymClass, error) {
	return f.findClassesByBranchFn(ctx, branchID, from)
}
func (f *fakeRepo) FindClassByIDAndBranch(ctx context.Context, branchID, id string) (*GymClass, error) {
	return f.findClassByIDFn(ctx, branchID, id)
}
func (f *fakeRepo) UpdateClass(ctx context.Context, gc *GymClass) error {
	return f.updateClassFn(ctx, gc)
}
func (f *fakeRepo) DeleteClass(ctx context.Context, branchID, id string) error {
	return f.deleteClassFn(ctx, branchID, id)
}
func (f *fakeRepo) CreateBooking(ctx context.Context, b *Booking) error {
	return f.createBookingFn(ctx, b)
}
func (f *fakeRepo) FindBookingByID(ctx context.Context, id string) (*Booking, error) {
	return f.findBookingByIDFn(ctx, id)
}
func (f *fakeRepo) FindBookingsByClass(ctx context.Context, classID string) ([]Booking, error) {
	return f.findBookingsByClassFn(ctx, classID)
}
func (f *fakeRepo) FindBookingsByMember(ctx context.Context, memberID string) ([]Booking, error) {
	return f.findBookingsByMemberFn(ctx, memberID)
}
func (f *fakeRepo) CountActiveBookings(ctx context.Context, classID string) (int64, error) {
	return f.countActiveBookingsFn(ctx, classID)
}
func (f *fakeRepo) HasActiveBooking(ctx context.Context, classID, memberID string) (bool, error) {
	return f.hasActiveBookingFn(ctx, classID, memberID)
}
func (f *fakeRepo) UpdateBooking(ctx context.Context, b *Booking) error {
	return f.updateBookingFn(ctx, b)
}

func upcomingClass(branchID uuid.UUID, capacity int) GymClass {
	now := time.Now().UTC()
	return GymClass{
		ID:       uuid.New(),
		BranchID: branchID,
		Name:     "Morning HIIT",
		Capacity: capacity,
		StartsAt: now.Add(2 * time.Hour),
		EndsAt:   now.Add(3 * time.Hour),
		Active:   true,
	}
}

func TestService_BookClass(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	memberID := uuid.New()
	class := upcomingClass(branchID, 10)

	var saved Booking
	repo := &fakeRepo{
		findClassByIDFn: func(ctx context.Context, bid, id string) (*GymClass, error) {
			row := class
			return &row, nil
		},
		hasActiveBookingFn: func(ctx context.Context, cid, mid string) (bool, error) {
			return false, nil
		},
		countActiveBookingsFn: func(ctx context.Context, cid string) (int64, error) {
			return 4, nil
		},
		createBookingFn: func(ctx context.Context, b *Booking) error { saved = *b; return nil },
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.BookClass(context.Background(), branchID.String(), CreateBookingRequest{
		ClassID:  class.ID.String(),
		MemberID: memberID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, BookingStatusBooked, resp.Status)
	assert.Equal(t, memberID.String(), saved.MemberID.String())
	assert.Equal(t, branchID.String(), saved.BranchID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_BookClass_Full(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	class := upcomingClass(branchID, 5)

	repo := &fakeRepo{
		findClassByIDFn: func(ctx context.Context, bid, id string) (*GymClass, error) {
			row := class
			return &row, nil
		},
		hasActiveBookingFn: func(ctx context.Context, cid, mid string) (bool, error) {
			return false, nil
		},
		countActiveBookingsFn: func(ctx context.Context, cid string) (int64, error) {
			return 5, nil
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.BookClass(context.Background(), branchID.String(), CreateBookingRequest{
		ClassID:  class.ID.String(),
		MemberID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, gymclasserrors.ErrClassFull)
}

func TestService_BookClass_AlreadyBooked(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	class := upcomingClass(branchID, 10)

	repo := &fakeRepo{
		findClassByIDFn: func(ctx context.Context, bid, id string) (*GymClass, error) {
			row := class
			return &row, nil
		},
		hasActiveBookingFn: func(ctx context.Context, cid, mid string) (bool, error) {
			return true, nil
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.BookClass(context.Background(), branchID.String(), CreateBookingRequest{
		ClassID:  class.ID.String(),
		MemberID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, gymclasserrors.ErrAlreadyBooked)
}

func TestService_BookClass_LosesInsertRace(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	class := upcomingClass(branchID, 10)

	repo := &fakeRepo{
		findClassByIDFn: func(ctx context.Context, bid, id string) (*GymClass, error) {
			row := class
			return &row, nil
		},
		hasActiveBookingFn: func(ctx context.Context, cid, mid string) (bool, error) {
			return false, nil
		},
		countActiveBookingsFn: func(ctx context.Context, cid string) (int64, error) {
			return 0, nil
		},
		createBookingFn: func(ctx context.Context, b *Booking) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_booking_active"}
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.BookClass(context.Background(), branchID.String(), CreateBookingRequest{
		ClassID:  class.ID.String(),
		MemberID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, gymclasserrors.ErrAlreadyBooked)
}

func TestService_BookClass_Started(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New()
	class := upcomingClass(branchID, 10)
	class.StartsAt = time.Now().UTC().Add(-10 * time.Minute)

	repo := &fakeRepo{
		findClassByIDFn: func(ctx context.Context, bid, id string) (*GymClass, error) {
			row := class
			return &row, nil
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.BookClass(context.Background(), branchID.String(), CreateBookingRequest{
		ClassID:  class.ID.String(),
		MemberID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, gymclasserrors.ErrClassStarted)
}

func TestService_CancelBooking(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	memberID := uuid.New()
	booking := Booking{
		ID:       uuid.New(),
		BranchID: uuid.New(),
		ClassID:  uuid.New(),
		MemberID: memberID,
		Status:   BookingStatusBooked,
		BookedAt: time.Now().UTC(),
	}

	var saved Booking
	repo := &fakeRepo{
		findBookingByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			row := booking
			return &row, nil
		},
		updateBookingFn: func(ctx context.Context, b *Booking) error { saved = *b; return nil },
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CancelBooking(context.Background(), booking.ID.String(), memberID.String())
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCancelled, resp.Status)
	assert.NotNil(t, saved.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CancelBooking_OtherMembersBooking(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	booking := Booking{
		ID:       uuid.New(),
		MemberID: uuid.New(),
		Status:   BookingStatusBooked,
	}

	repo := &fakeRepo{
		findBookingByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			row := booking
			return &row, nil
		},
	}

	svc := NewService(db, repo, nil)

	// Members asking about another member's booking learn nothing
	// beyond "not found".
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CancelBooking(context.Background(), booking.ID.String(), uuid.New().String())
	assert.ErrorIs(t, err, gymclasserrors.ErrBookingNotFound)
}

func TestService_CancelBooking_AlreadyCancelled(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	booking := Booking{
		ID:       uuid.New(),
		MemberID: uuid.New(),
		Status:   BookingStatusCancelled,
	}

	repo := &fakeRepo{
		findBookingByIDFn: func(ctx context.Context, id string) (*Booking, error) {
			row := booking
			return &row, nil
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CancelBooking(context.Background(), booking.ID.String(), "")
	assert.ErrorIs(t, err, gymclasserrors.ErrBookingNotCancellable)
}

func TestService_CreateClass_InvalidSchedule(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, nil)

	now := time.Now().UTC()
	_, err := svc.CreateClass(context.Background(), uuid.New().String(), CreateClassRequest{
		Name:     "Spin",
		Capacity: 15,
		StartsAt: now.Add(2 * time.Hour).Format(time.RFC3339),
		EndsAt:   now.Add(1 * time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, gymclasserrors.ErrInvalidSchedule)
}
