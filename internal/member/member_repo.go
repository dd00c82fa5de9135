package member

import (
	"context"
	"database/sql"

	"go-gym/internal/branch"

	"gorm.io/gorm"
)

//go:generate mockgen -source=member_repo.go -destination=mock/member_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Member) error
	FindAllByBranch(ctx context.Context, branchID string) ([]Member, error)
	FindOptionsByBranch(ctx context.Context, branchID string) ([]Member, error)
	FindByIDAndBranch(ctx context.Context, branchID, id string) (*Member, error)
	FindByID(ctx context.Context, id string) (*Member, error)
	PlanExists(ctx context.Context, planID string) (bool, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, branchID, id string) error
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

func (r *repository) Create(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Omit("Plan").Create(m).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]Member, error) {
	var members []Member
	q := r.db.WithContext(ctx).Preload("Plan")
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.Order("created_at DESC").Find(&members).Error
	return members, err
}

// FindOptionsByBranch returns the lightweight listing backing dropdown
// fields on the front desk forms.
func (r *repository) FindOptionsByBranch(ctx context.Context, branchID string) ([]Member, error) {
	var members []Member
	q := r.db.WithContext(ctx).
		Select("id", "branch_id", "first_name", "last_name", "member_number", "email", "status", "join_date")
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.Where("status = ?", StatusActive).
		Order("first_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID, id string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Scopes(branch.Scope(branchID)).
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) PlanExists(ctx context.Context, planID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("plans").
		Where("id = ?", planID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Omit("Plan").Save(m).Error
}

func (r *repository) Delete(ctx context.Context, branchID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Delete(&Member{}, "id = ?", id).Error
}
