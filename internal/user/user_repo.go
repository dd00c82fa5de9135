package user

import (
	"context"

	"go-gym/internal/branch"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDAndBranch(ctx context.Context, branchID, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllByBranch(ctx context.Context, branchID string) ([]User, error)
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID, id string) (*User, error) {
	var u User
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]User, error) {
	var users []User
	q := r.db.WithContext(ctx)
	if branchID != "" {
		q = q.Scopes(branch.Scope(branchID))
	}
	err := q.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
