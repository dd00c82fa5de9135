package invoice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusVoid    = "VOID"

	TypeSignup  = "SIGNUP"
	TypeRenewal = "RENEWAL"
	TypeManual  = "MANUAL"
)

// Invoice is the billing record for a member. Signup invoices are
// created once per member by the lifecycle consumer, guarded by
// uq_invoice_member_signup (member_id) WHERE type = 'SIGNUP'.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_invoices_branch_status"`
	MemberID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanID        *uuid.UUID `gorm:"type:uuid"`
	InvoiceNumber string     `gorm:"size:30;uniqueIndex;not null"`
	Type          string     `gorm:"size:20;not null;default:'MANUAL'"`
	Amount        float64    `gorm:"type:numeric(12,2);not null"`
	Status        string     `gorm:"size:20;not null;default:'PENDING';index:idx_invoices_branch_status"`
	IssuedAt      time.Time  `gorm:"not null"`
	DueDate       time.Time  `gorm:"type:date;not null"`
	PaidAt        *time.Time `gorm:""`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Invoice) TableName() string {
	return "invoices"
}
