package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-gym/internal/events"
	"go-gym/internal/messaging/kafka"
	paymenterrors "go-gym/internal/payment/errors"
	"go-gym/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, branchID, actorID string, req RecordPaymentRequest) (PaymentResponse, error)
	GetAll(ctx context.Context, branchID string) ([]PaymentResponse, error)
	GetByID(ctx context.Context, branchID, id string) (PaymentResponse, error)
	GetByMember(ctx context.Context, memberID string) ([]PaymentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Record(ctx context.Context, branchID, actorID string, req RecordPaymentRequest) (PaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount <= 0 {
		return PaymentResponse{}, paymenterrors.ErrInvalidAmount
	}
	memberUUID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidMemberID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidActorID
	}
	// For a superadmin the branch comes straight from the query string.
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidBranchID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record payment begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Payment{
		ID:         uuid.New(),
		BranchID:   branchUUID,
		MemberID:   memberUUID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		RecordedBy: actorUUID,
		PaidAt:     time.Now().UTC(),
	}
	if req.InvoiceID != "" {
		invoiceUUID, err := uuid.Parse(req.InvoiceID)
		if err == nil {
			p.InvoiceID = &invoiceUUID
		}
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("record payment persist failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	if s.outbox != nil {
		event := events.PaymentRecordedEvent{
			EventType:  "payment_recorded",
			RequestID:  rid,
			PaymentID:  p.ID.String(),
			InvoiceID:  req.InvoiceID,
			MemberID:   req.MemberID,
			BranchID:   branchID,
			Amount:     req.Amount,
			OccurredAt: p.PaidAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return PaymentResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payment",
			AggregateID:   p.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PaymentRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("record payment outbox persist failed",
				zap.String("payment_id", p.ID.String()),
				zap.Error(err),
			)
			return PaymentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record payment commit failed", zap.String("request_id", rid), zap.Error(err))
		return PaymentResponse{}, err
	}

	s.logger.Info("payment recorded",
		zap.String("request_id", rid),
		zap.String("payment_id", p.ID.String()),
		zap.String("member_id", req.MemberID),
		zap.Float64("amount", req.Amount),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]PaymentResponse, error) {
	rows, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (PaymentResponse, error) {
	p, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, paymenterrors.ErrPaymentNotFound
		}
		return PaymentResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetByMember(ctx context.Context, memberID string) ([]PaymentResponse, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return nil, paymenterrors.ErrInvalidMemberID
	}

	rows, err := s.repo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:         p.ID.String(),
		BranchID:   p.BranchID.String(),
		MemberID:   p.MemberID.String(),
		Amount:     p.Amount,
		Method:     p.Method,
		Reference:  p.Reference,
		RecordedBy: p.RecordedBy.String(),
		PaidAt:     p.PaidAt.Format(time.RFC3339),
	}
	if p.InvoiceID != nil {
		resp.InvoiceID = p.InvoiceID.String()
	}
	return resp
}

func mapToListResponse(rows []Payment) []PaymentResponse {
	resp := make([]PaymentResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
