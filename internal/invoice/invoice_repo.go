package invoice

import (
	"context"
	"database/sql"

	"go-gym/internal/branch"

	"gorm.io/gorm"
)

//go:generate mockgen -source=invoice_repo.go -destination=mock/invoice_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, inv *Invoice) error
	FindAllByBranch(ctx context.Context, branchID, status string) ([]Invoice, error)
	FindByIDAndBranch(ctx context.Context, branchID, id string) (*Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindByMember(ctx context.Context, memberID string) ([]Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	PlanPrice(ctx context.Context, planID string) (float64, error)
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

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID, status string) ([]Invoice, error) {
	var rows []Invoice
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("issued_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID, id string) (*Invoice, error) {
	var inv Invoice
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *repository) FindByMember(ctx context.Context, memberID string) ([]Invoice, error) {
	var rows []Invoice
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("issued_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *repository) PlanPrice(ctx context.Context, planID string) (float64, error) {
	var price float64
	err := r.db.WithContext(ctx).
		Table("plans").
		Where("id = ?", planID).
		Pluck("price", &price).Error
	return price, err
}
