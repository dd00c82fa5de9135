package payment

import (
	"context"
	"database/sql"

	"go-gym/internal/branch"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payment) error
	FindAllByBranch(ctx context.Context, branchID string) ([]Payment, error)
	FindByIDAndBranch(ctx context.Context, branchID, id string) (*Payment, error)
	FindByMember(ctx context.Context, memberID string) ([]Payment, error)
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

func (r *repository) Create(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]Payment, error) {
	var rows []Payment
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.Order("paid_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID, id string) (*Payment, error) {
	var p Payment
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByMember(ctx context.Context, memberID string) ([]Payment, error) {
	var rows []Payment
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("paid_at DESC").
		Find(&rows).Error
	return rows, err
}
