package branch

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(150);not null"`
	Code      string         `gorm:"type:varchar(20);uniqueIndex;not null"`
	Address   string         `gorm:"type:text"`
	City      string         `gorm:"type:varchar(100)"`
	Phone     string         `gorm:"type:varchar(30)"`
	Email     string         `gorm:"type:varchar(255);index"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Branch) TableName() string {
	return "branches"
}
