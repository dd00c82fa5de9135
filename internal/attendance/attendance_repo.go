package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindActive(ctx context.Context, branchID, memberID string, day time.Time) (*Attendance, error)
	FindTodayByBranch(ctx context.Context, branchID string, day time.Time) ([]Attendance, error)
	FindByMember(ctx context.Context, branchID, memberID string, limit int) ([]Attendance, error)
	FindByMemberOnDay(ctx context.Context, branchID, memberID string, day time.Time) ([]Attendance, error)
	List(ctx context.Context, f ListFilter) ([]Attendance, error)
	FindCompletedInRange(ctx context.Context, branchID string, start, end time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	FindMemberRef(ctx context.Context, memberID string) (*MemberRef, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindActive returns today's open session for the member, most recent
// first. branchID narrows the lookup when the caller is branch-scoped.
func (r *repository) FindActive(ctx context.Context, branchID, memberID string, day time.Time) (*Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Where("check_out IS NULL").
		Where("attendance_date = ?", day.Format("2006-01-02"))
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var a Attendance
	err := q.Order("check_in DESC").First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindTodayByBranch(ctx context.Context, branchID string, day time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Preload("Member").
		Where("attendance_date = ?", day.Format("2006-01-02"))
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var rows []Attendance
	err := q.Order("check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByMember(ctx context.Context, branchID, memberID string, limit int) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("member_id = ?", memberID)
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var rows []Attendance
	err := q.Order("attendance_date DESC, check_in DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByMemberOnDay(ctx context.Context, branchID, memberID string, day time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Where("attendance_date = ?", day.Format("2006-01-02"))
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var rows []Attendance
	err := q.Order("check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).Preload("Member")
	if f.BranchID != "" {
		q = q.Where("branch_id = ?", f.BranchID)
	}
	if f.MemberID != "" {
		q = q.Where("member_id = ?", f.MemberID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != nil {
		q = q.Where("attendance_date = ?", f.Date.Format("2006-01-02"))
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var rows []Attendance
	err := q.Order("attendance_date DESC, check_in DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *repository) FindCompletedInRange(ctx context.Context, branchID string, start, end time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", StatusCompleted).
		Where("attendance_date >= ?", start.Format("2006-01-02")).
		Where("attendance_date <= ?", end.Format("2006-01-02"))
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var rows []Attendance
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindMemberRef(ctx context.Context, memberID string) (*MemberRef, error) {
	var ref MemberRef
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&ref, "id = ?", memberID).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
