package gymclass

import (
	"context"
	"database/sql"
	"time"

	"go-gym/internal/branch"

	"gorm.io/gorm"
)

//go:generate mockgen -source=gymclass_repo.go -destination=mock/gymclass_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateClass(ctx context.Context, gc *GymClass) error
	FindClassesByBranch(ctx context.Context, branchID string, from time.Time) ([]GymClass, error)
	FindClassByIDAndBranch(ctx context.Context, branchID, id string) (*GymClass, error)
	UpdateClass(ctx context.Context, gc *GymClass) error
	DeleteClass(ctx context.Context, branchID, id string) error

	CreateBooking(ctx context.Context, b *Booking) error
	FindBookingByID(ctx context.Context, id string) (*Booking, error)
	FindBookingsByClass(ctx context.Context, classID string) ([]Booking, error)
	FindBookingsByMember(ctx context.Context, memberID string) ([]Booking, error)
	CountActiveBookings(ctx context.Context, classID string) (int64, error)
	HasActiveBooking(ctx context.Context, classID, memberID string) (bool, error)
	UpdateBooking(ctx context.Context, b *Booking) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateClass(ctx context.Context, gc *GymClass) error {
	return r.db.WithContext(ctx).Create(gc).Error
}

func (r *repository) FindClassesByBranch(ctx context.Context, branchID string, from time.Time) ([]GymClass, error) {
	var rows []GymClass
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	if !from.IsZero() {
		q = q.Where("starts_at >= ?", from)
	}
	err := q.Order("starts_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindClassByIDAndBranch(ctx context.Context, branchID, id string) (*GymClass, error) {
	var gc GymClass
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.First(&gc, "id = ?", id).Error
	return &gc, err
}

func (r *repository) UpdateClass(ctx context.Context, gc *GymClass) error {
	return r.db.WithContext(ctx).Save(gc).Error
}

func (r *repository) DeleteClass(ctx context.Context, branchID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Delete(&GymClass{}, "id = ?", id).Error
}

func (r *repository) CreateBooking(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindBookingByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindBookingsByClass(ctx context.Context, classID string) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("booked_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindBookingsByMember(ctx context.Context, memberID string) ([]Booking, error) {
	var rows []Booking
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("booked_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountActiveBookings(ctx context.Context, classID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("class_id = ? AND status = ?", classID, BookingStatusBooked).
		Count(&count).Error
	return count, err
}

func (r *repository) HasActiveBooking(ctx context.Context, classID, memberID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("class_id = ? AND member_id = ? AND status = ?", classID, memberID, BookingStatusBooked).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateBooking(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}
