package member

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-gym/internal/events"
	membererrors "go-gym/internal/member/errors"
	"go-gym/internal/messaging/kafka"
	"go-gym/internal/shared/contextutil"
	"go-gym/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const MemberOptionsKeyPrefix = "members:options:"

func GetMemberOptionsKey(branchID string) string {
	return MemberOptionsKeyPrefix + branchID
}

//go:generate mockgen -source=member_service.go -destination=mock/member_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, branchID string, req CreateMemberRequest) (MemberResponse, error)
	GetAll(ctx context.Context, branchID string) ([]MemberResponse, error)
	GetOptions(ctx context.Context, branchID string) ([]MemberResponse, error)
	GetByID(ctx context.Context, branchID, id string) (MemberResponse, error)
	GetProfile(ctx context.Context, id string) (MemberResponse, error)
	Update(ctx context.Context, branchID, id string, req UpdateMemberRequest) (MemberResponse, error)
	Delete(ctx context.Context, branchID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("member.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("member.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Register(
	ctx context.Context,
	branchID string,
	req CreateMemberRequest,
) (MemberResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register member requested",
		zap.String("request_id", rid),
		zap.String("branch_id", branchID),
		zap.String("email", req.Email),
	)

	joinDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.JoinDate != "" {
		parsed, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return MemberResponse{}, membererrors.ErrInvalidJoinDate
		}
		joinDate = parsed
	}

	// For a superadmin the branch comes straight from the query string.
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return MemberResponse{}, membererrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register member begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var planID *uuid.UUID
	var planExpires *time.Time
	if req.PlanID != "" {
		exists, err := qtx.PlanExists(ctx, req.PlanID)
		if err != nil {
			return MemberResponse{}, err
		}
		if !exists {
			return MemberResponse{}, membererrors.ErrPlanNotFound
		}
		id := uuid.MustParse(req.PlanID)
		planID = &id
	}

	if req.MemberNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, branchID, "member_number")
		if err != nil {
			s.logger.Error("register member generate number failed", zap.Error(err))
			return MemberResponse{}, err
		}
		req.MemberNumber = fmt.Sprintf("GYM-%06d", nextVal)
	}

	m := &Member{
		ID:            uuid.New(),
		BranchID:      branchUUID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		MemberNumber:  req.MemberNumber,
		PlanID:        planID,
		PlanExpiresAt: planExpires,
		Status:        StatusActive,
		JoinDate:      joinDate,
	}

	if err := qtx.Create(ctx, m); err != nil {
		s.logger.Error("register member persist failed", zap.Error(err))
		return MemberResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.MemberRegisteredEvent{
			EventType:  "member_registered",
			RequestID:  rid,
			MemberID:   m.ID.String(),
			BranchID:   branchID,
			PlanID:     req.PlanID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return MemberResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "member",
			AggregateID:   m.ID.String(),
			EventType:     event.EventType,
			Topic:         events.MemberRegisteredTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("register member outbox persist failed",
				zap.String("member_id", m.ID.String()),
				zap.Error(err),
			)
			return MemberResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, err
	}

	s.invalidateOptionsCache(ctx, branchID)

	s.logger.Info("register member success",
		zap.String("request_id", rid),
		zap.String("member_id", m.ID.String()),
		zap.String("member_number", m.MemberNumber),
	)

	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]MemberResponse, error) {
	members, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(members), nil
}

func (s *service) GetOptions(ctx context.Context, branchID string) ([]MemberResponse, error) {
	cacheKey := GetMemberOptionsKey(branchID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []MemberResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		members, err := s.repo.FindOptionsByBranch(ctx, branchID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(members)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]MemberResponse), nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (MemberResponse, error) {
	m, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*m), nil
}

// GetProfile is the self-service lookup; the caller's own member id
// comes from the token, so no branch filter applies.
func (s *service) GetProfile(ctx context.Context, id string) (MemberResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*m), nil
}

func (s *service) Update(
	ctx context.Context,
	branchID, id string,
	req UpdateMemberRequest,
) (MemberResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MemberResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}

	if req.PlanID != "" {
		exists, err := qtx.PlanExists(ctx, req.PlanID)
		if err != nil {
			return MemberResponse{}, err
		}
		if !exists {
			return MemberResponse{}, membererrors.ErrPlanNotFound
		}
		planID := uuid.MustParse(req.PlanID)
		m.PlanID = &planID
	}

	m.FirstName = req.FirstName
	m.LastName = req.LastName
	m.Email = req.Email
	m.Phone = req.Phone
	if req.Status != "" {
		m.Status = req.Status
	}

	if err := qtx.Update(ctx, m); err != nil {
		return MemberResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return MemberResponse{}, err
	}

	s.invalidateOptionsCache(ctx, branchID)

	s.logger.Info("update member success", zap.String("member_id", id))

	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, branchID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, branchID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, branchID)

	s.logger.Info("delete member success", zap.String("member_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, branchID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetMemberOptionsKey(branchID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate member options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(m Member) MemberResponse {
	resp := MemberResponse{
		ID:           m.ID.String(),
		BranchID:     m.BranchID.String(),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		FullName:     m.FullName(),
		Email:        m.Email,
		Phone:        m.Phone,
		MemberNumber: m.MemberNumber,
		Status:       m.Status,
		JoinDate:     m.JoinDate.Format("2006-01-02"),
	}
	if m.PlanID != nil {
		resp.PlanID = m.PlanID.String()
	}
	if m.PlanExpiresAt != nil {
		resp.PlanExpiresAt = m.PlanExpiresAt.Format("2006-01-02")
	}
	if m.Plan != nil {
		resp.PlanName = m.Plan.Name
	}
	return resp
}

func mapToListResponse(members []Member) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i, m := range members {
		res[i] = mapToResponse(m)
	}
	return res
}
