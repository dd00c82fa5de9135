package salary

import (
	"time"

	"github.com/google/uuid"
)

// SalaryRecord is append-only: a raise inserts a new row with a later
// effective date, guarded by uq_salary_effective (staff_id,
// effective_date).
type SalaryRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffID       uuid.UUID `gorm:"type:uuid;index"`
	BaseSalary    int
	Allowance     int
	EffectiveDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	StaffName string `gorm:"->"`
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}
