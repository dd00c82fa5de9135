package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-gym/internal/attendance/errors"
	"go-gym/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const statsCacheTTL = 60 * time.Second

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, branchID, memberID, staffID string) (CheckResult, error)
	CheckOut(ctx context.Context, branchID, memberID, staffID string) (CheckResult, error)
	ScanQR(ctx context.Context, branchID string, raw []byte, staffID string) (CheckResult, error)
	IssueQRToken(ctx context.Context, memberID string) (QRToken, error)
	CurrentStatus(ctx context.Context, branchID, memberID string) (StatusResponse, error)
	TodayAttendance(ctx context.Context, branchID string) ([]AttendanceResponse, error)
	MemberHistory(ctx context.Context, branchID, memberID string, limit int) ([]AttendanceResponse, error)
	MemberToday(ctx context.Context, branchID, memberID string) ([]AttendanceResponse, error)
	List(ctx context.Context, f ListFilter) ([]AttendanceResponse, error)
	Statistics(ctx context.Context, branchID string, start, end time.Time) (StatisticsResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	nonces NonceGuard
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, nonces NonceGuard, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		nonces: nonces,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) CheckIn(ctx context.Context, branchID, memberID, staffID string) (CheckResult, error) {
	return s.checkIn(ctx, branchID, memberID, staffID, SourceManual)
}

func (s *service) checkIn(ctx context.Context, branchID, memberID, staffID, source string) (CheckResult, error) {
	memberUUID, err := uuid.Parse(memberID)
	if err != nil {
		return CheckResult{}, attendanceerrors.ErrInvalidMemberID
	}
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return CheckResult{}, attendanceerrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	member, err := qtx.FindMemberRef(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckResult{}, attendanceerrors.ErrMemberNotFound
		}
		return CheckResult{}, err
	}
	if member.Status != "" && member.Status != "active" {
		return CheckResult{}, attendanceerrors.ErrMemberInactive
	}

	existing, err := qtx.FindActive(ctx, branchID, memberID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckResult{}, err
	}
	if existing != nil {
		resp := mapToResponse(*existing)
		return CheckResult{
			Success:    false,
			Message:    "Member is already checked in",
			Attendance: &resp,
		}, nil
	}

	row := &Attendance{
		ID:             uuid.New(),
		BranchID:       branchUUID,
		MemberID:       memberUUID,
		AttendanceDate: today,
		CheckIn:        now,
		Status:         StatusActive,
		Source:         source,
		Member:         member,
	}
	if staffID != "" {
		if staffUUID, parseErr := uuid.Parse(staffID); parseErr == nil {
			row.StaffID = &staffUUID
		}
	}

	if err := qtx.Create(ctx, row); err != nil {
		// A concurrent check-in beat us to the unique index; report
		// the same idempotent outcome as the read path.
		if isUniqueActiveViolation(err) {
			winner, findErr := s.repo.FindActive(ctx, branchID, memberID, today)
			if findErr != nil {
				return CheckResult{}, err
			}
			resp := mapToResponse(*winner)
			return CheckResult{
				Success:    false,
				Message:    "Member is already checked in",
				Attendance: &resp,
			}, nil
		}
		return CheckResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return CheckResult{}, err
	}

	s.logger.Info("member checked in",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("member_id", memberID),
		zap.String("branch_id", branchID),
		zap.String("source", source),
	)

	resp := mapToResponse(*row)
	return CheckResult{
		Success:    true,
		Message:    "Check-in successful",
		Attendance: &resp,
	}, nil
}

func (s *service) CheckOut(ctx context.Context, branchID, memberID, staffID string) (CheckResult, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return CheckResult{}, attendanceerrors.ErrInvalidMemberID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindActive(ctx, branchID, memberID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckResult{
				Success: false,
				Message: "No active check-in found for this member",
			}, nil
		}
		return CheckResult{}, err
	}

	totalHours := now.Sub(row.CheckIn).Hours()
	if totalHours < 0 {
		totalHours = 0
	}

	row.CheckOut = &now
	row.TotalHours = &totalHours
	row.Status = StatusCompleted

	if err := qtx.Update(ctx, row); err != nil {
		return CheckResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return CheckResult{}, err
	}

	s.logger.Info("member checked out",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("member_id", memberID),
		zap.String("branch_id", branchID),
		zap.Float64("total_hours", totalHours),
	)

	resp := mapToResponse(*row)
	return CheckResult{
		Success:    true,
		Message:    "Check-out successful",
		Attendance: &resp,
	}, nil
}

// ScanQR validates the token and then toggles: an active session is
// closed, otherwise a new one opens. One scan action covers both
// directions so the operator never picks a mode.
func (s *service) ScanQR(ctx context.Context, branchID string, raw []byte, staffID string) (CheckResult, error) {
	now := time.Now().UTC()

	token, err := ParseQRToken(raw, now)
	if err != nil {
		return CheckResult{}, err
	}

	if s.nonces != nil {
		fresh, err := s.nonces.Claim(ctx, token.Nonce, 2*QRTokenTTL)
		if err != nil {
			return CheckResult{}, err
		}
		if !fresh {
			return CheckResult{}, attendanceerrors.ErrQRCodeReplayed
		}
	}

	today := now.Truncate(24 * time.Hour)
	existing, err := s.repo.FindActive(ctx, branchID, token.MemberID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckResult{}, err
	}

	if existing != nil {
		return s.CheckOut(ctx, branchID, token.MemberID, staffID)
	}
	return s.checkIn(ctx, branchID, token.MemberID, staffID, SourceQRScan)
}

func (s *service) IssueQRToken(ctx context.Context, memberID string) (QRToken, error) {
	member, err := s.repo.FindMemberRef(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QRToken{}, attendanceerrors.ErrMemberNotFound
		}
		return QRToken{}, err
	}
	if member.Status != "" && member.Status != "active" {
		return QRToken{}, attendanceerrors.ErrMemberInactive
	}

	return NewQRToken(memberID, member.FullName(), time.Now().UTC()), nil
}

func (s *service) CurrentStatus(ctx context.Context, branchID, memberID string) (StatusResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	row, err := s.repo.FindActive(ctx, branchID, memberID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{CheckedIn: false}, nil
		}
		return StatusResponse{}, err
	}

	resp := mapToResponse(*row)
	return StatusResponse{CheckedIn: true, Attendance: &resp}, nil
}

func (s *service) TodayAttendance(ctx context.Context, branchID string) ([]AttendanceResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	rows, err := s.repo.FindTodayByBranch(ctx, branchID, today)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) MemberHistory(ctx context.Context, branchID, memberID string, limit int) ([]AttendanceResponse, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}

	rows, err := s.repo.FindByMember(ctx, branchID, memberID, limit)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) MemberToday(ctx context.Context, branchID, memberID string) ([]AttendanceResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	rows, err := s.repo.FindByMemberOnDay(ctx, branchID, memberID, today)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

// Statistics aggregates completed sessions over a date range. Results
// are cached briefly; singleflight collapses concurrent recomputes of
// the same key (dashboards poll this endpoint).
func (s *service) Statistics(ctx context.Context, branchID string, start, end time.Time) (StatisticsResponse, error) {
	if end.Before(start) {
		return StatisticsResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	cacheKey := fmt.Sprintf("attendance:stats:%s:%s:%s",
		branchID, start.Format("2006-01-02"), end.Format("2006-01-02"))

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var stats StatisticsResponse
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return stats, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		rows, err := s.repo.FindCompletedInRange(ctx, branchID, start, end)
		if err != nil {
			return StatisticsResponse{}, err
		}

		stats := computeStatistics(rows)

		if s.rdb != nil {
			if payload, err := json.Marshal(stats); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, statsCacheTTL)
			}
		}
		return stats, nil
	})
	if err != nil {
		return StatisticsResponse{}, err
	}
	return v.(StatisticsResponse), nil
}

func computeStatistics(rows []Attendance) StatisticsResponse {
	stats := StatisticsResponse{TotalVisits: len(rows)}

	unique := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		unique[row.MemberID] = struct{}{}
		if row.TotalHours != nil {
			stats.TotalHours += *row.TotalHours
		}
	}
	stats.UniqueMembers = len(unique)
	if stats.TotalVisits > 0 {
		stats.AvgHoursPerVisit = stats.TotalHours / float64(stats.TotalVisits)
	}
	return stats
}

func mapAll(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
