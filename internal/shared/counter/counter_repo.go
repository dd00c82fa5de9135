package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, branchID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, branchID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment, one row per branch/type.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO branch_counters (branch_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (branch_id, counter_type) DO UPDATE
		SET last_value = branch_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, branchID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
