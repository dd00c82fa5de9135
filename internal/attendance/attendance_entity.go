package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	SourceManual = "MANUAL"
	SourceQRScan = "QR_SCAN"
)

// Attendance is one check-in session. The partial unique index
// uq_attendance_active (member_id, attendance_date) WHERE check_out IS
// NULL guarantees at most one active row per member per day even under
// concurrent check-ins; a completed row does not block a new session
// the same day.
type Attendance struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID       uuid.UUID      `gorm:"column:branch_id;type:uuid;not null;index"`
	MemberID       uuid.UUID      `gorm:"column:member_id;type:uuid;not null;index"`
	StaffID        *uuid.UUID     `gorm:"column:staff_id;type:uuid"`
	AttendanceDate time.Time      `gorm:"column:attendance_date;type:date;not null;index"`
	CheckIn        time.Time      `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut       *time.Time     `gorm:"column:check_out;type:timestamptz"`
	TotalHours     *float64       `gorm:"column:total_hours"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:active"`
	Source         string         `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Member         *MemberRef     `gorm:"foreignKey:MemberID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type MemberRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Status    string    `gorm:"column:status"`
}

func (MemberRef) TableName() string {
	return "members"
}

func (m MemberRef) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
