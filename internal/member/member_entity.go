package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusExpired   = "expired"
)

type Member struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BranchID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	FirstName     string         `gorm:"size:100;not null"`
	LastName      string         `gorm:"size:100"`
	Email         string         `gorm:"size:255;not null;uniqueIndex"`
	Phone         string         `gorm:"size:30"`
	MemberNumber  string         `gorm:"size:30;uniqueIndex;not null"`
	PlanID        *uuid.UUID     `gorm:"type:uuid"`
	PlanExpiresAt *time.Time     `gorm:"type:date"`
	Status        string         `gorm:"size:20;not null;default:active"`
	JoinDate      time.Time      `gorm:"type:date;not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	Plan          *MemberPlan    `gorm:"foreignKey:PlanID;references:ID"`
}

func (Member) TableName() string {
	return "members"
}

type MemberPlan struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (MemberPlan) TableName() string {
	return "plans"
}

func (m Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
