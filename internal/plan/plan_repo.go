package plan

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=plan_repo.go -destination=mock/plan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Plan) error
	FindAll(ctx context.Context, activeOnly bool) ([]Plan, error)
	FindByID(ctx context.Context, id string) (*Plan, error)
	Update(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, p *Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Plan, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var plans []Plan
	err := q.Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Plan, error) {
	var p Plan
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Plan{}, "id = ?", id).Error
}
