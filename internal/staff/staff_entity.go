package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
)

// Staff is branch personnel: admins, trainers, receptionists and
// housekeeping. The role lives on the linked user account; this row
// holds the HR-side record.
type Staff struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	FirstName   string         `gorm:"size:100;not null"`
	LastName    string         `gorm:"size:100"`
	Email       string         `gorm:"size:255;not null;uniqueIndex"`
	Phone       string         `gorm:"size:30"`
	StaffNumber string         `gorm:"size:30;uniqueIndex;not null"`
	Position    string         `gorm:"size:50;not null"`
	HireDate    time.Time      `gorm:"type:date;not null"`
	Status      string         `gorm:"size:20;not null;default:active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Staff) TableName() string {
	return "staff"
}

func (s Staff) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
