package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *SalaryRecord) error
	FindAllByBranch(ctx context.Context, branchID string) ([]SalaryRecord, error)
	FindByIDAndBranch(ctx context.Context, branchID string, id string) (*SalaryRecord, error)
	Delete(ctx context.Context, branchID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, record *SalaryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]SalaryRecord, error) {
	var records []SalaryRecord
	query := `
SELECT
	salary_records.*,
	CONCAT(staff.first_name, ' ', staff.last_name) AS staff_name
FROM salary_records
JOIN staff ON staff.id = salary_records.staff_id
WHERE staff.branch_id = ?
ORDER BY
	staff.first_name ASC,
	salary_records.effective_date DESC,
	salary_records.created_at DESC
`

	err := r.db.WithContext(ctx).Raw(query, branchID).Scan(&records).Error
	return records, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID string, id string) (*SalaryRecord, error) {
	var record SalaryRecord
	err := r.db.WithContext(ctx).
		Table("salary_records").
		Select("salary_records.*, CONCAT(staff.first_name, ' ', staff.last_name) AS staff_name").
		Joins("JOIN staff ON staff.id = salary_records.staff_id").
		Where("salary_records.id = ?", id).
		Where("staff.branch_id = ?", branchID).
		First(&record).Error
	return &record, err
}

func (r *repository) Delete(ctx context.Context, branchID string, id string) error {
	return r.db.WithContext(ctx).
		Table("salary_records").
		Joins("JOIN staff ON staff.id = salary_records.staff_id").
		Where("salary_records.id = ?", id).
		Where("staff.branch_id = ?", branchID).
		Delete(&SalaryRecord{}).Error
}
