package branch

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Branch) error
	FindAll(ctx context.Context) ([]Branch, error)
	FindByID(ctx context.Context, id string) (*Branch, error)
	FindByCode(ctx context.Context, code string) (*Branch, error)
	Update(ctx context.Context, b *Branch) error
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

func (r *repository) Create(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Branch, error) {
	var branches []Branch
	err := r.db.WithContext(ctx).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Branch, error) {
	var b Branch
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Branch, error) {
	var b Branch
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&b).Error
	return &b, err
}

func (r *repository) Update(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}
