package gymclass

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusBooked    = "BOOKED"
	BookingStatusCancelled = "CANCELLED"
)

type GymClass struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_classes_branch_starts"`
	Name        string     `gorm:"size:150;not null"`
	Description string     `gorm:"type:text"`
	TrainerID   *uuid.UUID `gorm:"type:uuid"`
	Capacity    int        `gorm:"not null;default:20"`
	StartsAt    time.Time  `gorm:"not null;index:idx_classes_branch_starts"`
	EndsAt      time.Time  `gorm:"not null"`
	Active      bool       `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (GymClass) TableName() string {
	return "gym_classes"
}

// Booking ties a member to a class occurrence. One live booking per
// member per class, enforced by uq_booking_active (class_id, member_id)
// WHERE status = 'BOOKED'.
type Booking struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClassID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index"`

	Status      string     `gorm:"size:20;not null;default:'BOOKED'"`
	BookedAt    time.Time  `gorm:"not null"`
	CancelledAt *time.Time `gorm:""`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "class_bookings"
}
