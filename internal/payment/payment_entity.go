package payment

import (
	"time"

	"github.com/google/uuid"
)

const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

type Payment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	MemberID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvoiceID  *uuid.UUID `gorm:"type:uuid;index"`
	Amount     float64    `gorm:"type:numeric(12,2);not null"`
	Method     string     `gorm:"size:20;not null"`
	Reference  string     `gorm:"size:100"`
	RecordedBy uuid.UUID  `gorm:"type:uuid;not null"`
	PaidAt     time.Time  `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
