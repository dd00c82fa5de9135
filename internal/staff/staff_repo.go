package staff

import (
	"context"
	"database/sql"

	"go-gym/internal/branch"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Staff) error
	FindAllByBranch(ctx context.Context, branchID string) ([]Staff, error)
	FindByIDAndBranch(ctx context.Context, branchID, id string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
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
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]Staff, error) {
	var rows []Staff
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.Order("first_name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID, id string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, branchID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Delete(&Staff{}, "id = ?", id).Error
}
