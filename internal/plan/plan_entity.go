package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a membership plan in the global catalog. Plans are shared
// across branches; members subscribe to one through their branch.
type Plan struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"size:255;not null"`
	Description  string         `gorm:"type:text"`
	Price        float64        `gorm:"type:numeric(12,2);not null"`
	DurationDays int            `gorm:"not null"`
	Active       bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Plan) TableName() string {
	return "plans"
}
