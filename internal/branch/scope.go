package branch

import "gorm.io/gorm"

// Scope restricts a query to one branch. Every branch-scoped repository
// applies it; an empty filter must be handled by the caller, not here.
func Scope(branchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("branch_id = ?", branchID)
	}
}
