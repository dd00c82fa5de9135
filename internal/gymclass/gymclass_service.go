package gymclass

import (
	"context"
	"database/sql"
	"errors"
	"time"

	gymclasserrors "go-gym/internal/gymclass/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=gymclass_service.go -destination=mock/gymclass_service_mock.go -package=mock
type Service interface {
	CreateClass(ctx context.Context, branchID string, req CreateClassRequest) (ClassResponse, error)
	GetClasses(ctx context.Context, branchID string, upcomingOnly bool) ([]ClassResponse, error)
	GetClassByID(ctx context.Context, branchID, id string) (ClassResponse, error)
	UpdateClass(ctx context.Context, branchID, id string, req UpdateClassRequest) (ClassResponse, error)
	DeleteClass(ctx context.Context, branchID, id string) error

	BookClass(ctx context.Context, branchID string, req CreateBookingRequest) (BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, requesterMemberID string) (BookingResponse, error)
	GetClassBookings(ctx context.Context, branchID, classID string) ([]BookingResponse, error)
	GetMemberBookings(ctx context.Context, memberID string) ([]BookingResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("gymclass.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gymclass.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateClass(ctx context.Context, branchID string, req CreateClassRequest) (ClassResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return ClassResponse{}, gymclasserrors.ErrInvalidClassID
	}

	startsAt, endsAt, err := parseSchedule(req.StartsAt, req.EndsAt)
	if err != nil {
		return ClassResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClassResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	gc := &GymClass{
		ID:          uuid.New(),
		BranchID:    branchUUID,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Active:      true,
	}
	if req.TrainerID != "" {
		trainerUUID, err := uuid.Parse(req.TrainerID)
		if err != nil {
			return ClassResponse{}, gymclasserrors.ErrInvalidClassID
		}
		gc.TrainerID = &trainerUUID
	}

	if err := qtx.CreateClass(ctx, gc); err != nil {
		s.logger.Error("create class persist failed", zap.Error(err))
		return ClassResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClassResponse{}, err
	}

	s.logger.Info("class created",
		zap.String("class_id", gc.ID.String()),
		zap.String("branch_id", branchID),
		zap.Int("capacity", gc.Capacity),
	)

	return mapClassToResponse(*gc, 0), nil
}

func (s *service) GetClasses(ctx context.Context, branchID string, upcomingOnly bool) ([]ClassResponse, error) {
	var from time.Time
	if upcomingOnly {
		from = time.Now().UTC()
	}

	rows, err := s.repo.FindClassesByBranch(ctx, branchID, from)
	if err != nil {
		return nil, err
	}

	res := make([]ClassResponse, len(rows))
	for i, row := range rows {
		booked, err := s.repo.CountActiveBookings(ctx, row.ID.String())
		if err != nil {
			return nil, err
		}
		res[i] = mapClassToResponse(row, int(booked))
	}
	return res, nil
}

func (s *service) GetClassByID(ctx context.Context, branchID, id string) (ClassResponse, error) {
	gc, err := s.repo.FindClassByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClassResponse{}, gymclasserrors.ErrClassNotFound
		}
		return ClassResponse{}, err
	}

	booked, err := s.repo.CountActiveBookings(ctx, gc.ID.String())
	if err != nil {
		return ClassResponse{}, err
	}

	return mapClassToResponse(*gc, int(booked)), nil
}

func (s *service) UpdateClass(ctx context.Context, branchID, id string, req UpdateClassRequest) (ClassResponse, error) {
	startsAt, endsAt, err := parseSchedule(req.StartsAt, req.EndsAt)
	if err != nil {
		return ClassResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClassResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	gc, err := qtx.FindClassByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClassResponse{}, gymclasserrors.ErrClassNotFound
		}
		return ClassResponse{}, err
	}

	gc.Name = req.Name
	gc.Description = req.Description
	gc.Capacity = req.Capacity
	gc.StartsAt = startsAt
	gc.EndsAt = endsAt
	gc.TrainerID = nil
	if req.TrainerID != "" {
		trainerUUID, err := uuid.Parse(req.TrainerID)
		if err != nil {
			return ClassResponse{}, gymclasserrors.ErrInvalidClassID
		}
		gc.TrainerID = &trainerUUID
	}
	if req.Active != nil {
		gc.Active = *req.Active
	}

	if err := qtx.UpdateClass(ctx, gc); err != nil {
		return ClassResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClassResponse{}, err
	}

	booked, err := s.repo.CountActiveBookings(ctx, gc.ID.String())
	if err != nil {
		return ClassResponse{}, err
	}

	s.logger.Info("class updated", zap.String("class_id", id))

	return mapClassToResponse(*gc, int(booked)), nil
}

func (s *service) DeleteClass(ctx context.Context, branchID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteClass(ctx, branchID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) BookClass(ctx context.Context, branchID string, req CreateBookingRequest) (BookingResponse, error) {
	memberUUID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return BookingResponse{}, gymclasserrors.ErrInvalidMemberID
	}
	classUUID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return BookingResponse{}, gymclasserrors.ErrInvalidClassID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	gc, err := qtx.FindClassByIDAndBranch(ctx, branchID, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, gymclasserrors.ErrClassNotFound
		}
		return BookingResponse{}, err
	}

	now := time.Now().UTC()
	if !gc.Active {
		return BookingResponse{}, gymclasserrors.ErrClassInactive
	}
	if !now.Before(gc.StartsAt) {
		return BookingResponse{}, gymclasserrors.ErrClassStarted
	}

	already, err := qtx.HasActiveBooking(ctx, req.ClassID, req.MemberID)
	if err != nil {
		return BookingResponse{}, err
	}
	if already {
		return BookingResponse{}, gymclasserrors.ErrAlreadyBooked
	}

	booked, err := qtx.CountActiveBookings(ctx, req.ClassID)
	if err != nil {
		return BookingResponse{}, err
	}
	if booked >= int64(gc.Capacity) {
		s.logger.Warn("booking rejected, class full",
			zap.String("class_id", req.ClassID),
			zap.Int64("booked", booked),
			zap.Int("capacity", gc.Capacity),
		)
		return BookingResponse{}, gymclasserrors.ErrClassFull
	}

	b := &Booking{
		ID:       uuid.New(),
		BranchID: gc.BranchID,
		ClassID:  classUUID,
		MemberID: memberUUID,
		Status:   BookingStatusBooked,
		BookedAt: now,
	}

	if err := qtx.CreateBooking(ctx, b); err != nil {
		// Two concurrent bookings for the same member can pass the
		// check above; the partial unique index settles the race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_booking_active" {
			return BookingResponse{}, gymclasserrors.ErrAlreadyBooked
		}
		s.logger.Error("create booking persist failed", zap.Error(err))
		return BookingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BookingResponse{}, err
	}

	s.logger.Info("class booked",
		zap.String("booking_id", b.ID.String()),
		zap.String("class_id", req.ClassID),
		zap.String("member_id", req.MemberID),
	)

	return mapBookingToResponse(*b), nil
}

// CancelBooking releases a seat. requesterMemberID is non-empty when
// the caller is restricted to their own bookings.
func (s *service) CancelBooking(ctx context.Context, bookingID, requesterMemberID string) (BookingResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingResponse{}, gymclasserrors.ErrBookingNotFound
		}
		return BookingResponse{}, err
	}

	if requesterMemberID != "" && b.MemberID.String() != requesterMemberID {
		return BookingResponse{}, gymclasserrors.ErrBookingNotFound
	}

	if b.Status != BookingStatusBooked {
		return BookingResponse{}, gymclasserrors.ErrBookingNotCancellable
	}

	now := time.Now().UTC()
	b.Status = BookingStatusCancelled
	b.CancelledAt = &now

	if err := qtx.UpdateBooking(ctx, b); err != nil {
		return BookingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BookingResponse{}, err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("member_id", b.MemberID.String()),
	)

	return mapBookingToResponse(*b), nil
}

func (s *service) GetClassBookings(ctx context.Context, branchID, classID string) ([]BookingResponse, error) {
	if _, err := s.repo.FindClassByIDAndBranch(ctx, branchID, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gymclasserrors.ErrClassNotFound
		}
		return nil, err
	}

	rows, err := s.repo.FindBookingsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return mapBookingsToResponse(rows), nil
}

func (s *service) GetMemberBookings(ctx context.Context, memberID string) ([]BookingResponse, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return nil, gymclasserrors.ErrInvalidMemberID
	}

	rows, err := s.repo.FindBookingsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return mapBookingsToResponse(rows), nil
}

func parseSchedule(start, end string) (time.Time, time.Time, error) {
	startsAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, gymclasserrors.ErrInvalidSchedule
	}
	endsAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, gymclasserrors.ErrInvalidSchedule
	}
	if !endsAt.After(startsAt) {
		return time.Time{}, time.Time{}, gymclasserrors.ErrInvalidSchedule
	}
	return startsAt.UTC(), endsAt.UTC(), nil
}

func mapClassToResponse(gc GymClass, booked int) ClassResponse {
	resp := ClassResponse{
		ID:          gc.ID.String(),
		BranchID:    gc.BranchID.String(),
		Name:        gc.Name,
		Description: gc.Description,
		Capacity:    gc.Capacity,
		Booked:      booked,
		StartsAt:    gc.StartsAt.Format(time.RFC3339),
		EndsAt:      gc.EndsAt.Format(time.RFC3339),
		Active:      gc.Active,
	}
	if gc.TrainerID != nil {
		resp.TrainerID = gc.TrainerID.String()
	}
	return resp
}

func mapBookingToResponse(b Booking) BookingResponse {
	resp := BookingResponse{
		ID:       b.ID.String(),
		BranchID: b.BranchID.String(),
		ClassID:  b.ClassID.String(),
		MemberID: b.MemberID.String(),
		Status:   b.Status,
		BookedAt: b.BookedAt.Format(time.RFC3339),
	}
	if b.CancelledAt != nil {
		v := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	return resp
}

func mapBookingsToResponse(rows []Booking) []BookingResponse {
	resp := make([]BookingResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapBookingToResponse(row)
	}
	return resp
}
