package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	invoiceerrors "go-gym/internal/invoice/errors"
	"go-gym/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID string, req CreateInvoiceRequest) (InvoiceResponse, error)
	CreateSignupInvoice(ctx context.Context, branchID, memberID, planID string) (InvoiceResponse, error)
	GetAll(ctx context.Context, branchID, status string) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, branchID, id string) (InvoiceResponse, error)
	GetByMember(ctx context.Context, memberID string) ([]InvoiceResponse, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (InvoiceResponse, error)
	Void(ctx context.Context, branchID, id string) (InvoiceResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{db: db, repo: repo, counter: counter, logger: l}
}

func (s *service) Create(ctx context.Context, branchID string, req CreateInvoiceRequest) (InvoiceResponse, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidDueDate
	}
	if req.Amount < 0 {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidAmount
	}

	return s.create(ctx, branchID, req.MemberID, req.PlanID, TypeManual, req.Amount, dueDate)
}

// CreateSignupInvoice issues the first invoice for a freshly registered
// member, priced from the plan catalog. Safe to call twice for the same
// member: the second insert trips uq_invoice_member_signup and maps to
// ErrSignupInvoiceExists.
func (s *service) CreateSignupInvoice(ctx context.Context, branchID, memberID, planID string) (InvoiceResponse, error) {
	var amount float64
	if planID != "" {
		price, err := s.repo.PlanPrice(ctx, planID)
		if err != nil {
			s.logger.Error("signup invoice plan price lookup failed",
				zap.String("plan_id", planID),
				zap.Error(err),
			)
			return InvoiceResponse{}, err
		}
		amount = price
	}

	dueDate := time.Now().UTC().AddDate(0, 0, 7)
	return s.create(ctx, branchID, memberID, planID, TypeSignup, amount, dueDate)
}

func (s *service) create(ctx context.Context, branchID, memberID, planID, invType string, amount float64, dueDate time.Time) (InvoiceResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
	}
	memberUUID, err := uuid.Parse(memberID)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, branchID, "invoice_number")
	if err != nil {
		s.logger.Error("generate invoice number failed", zap.Error(err))
		return InvoiceResponse{}, err
	}

	inv := &Invoice{
		ID:            uuid.New(),
		BranchID:      branchUUID,
		MemberID:      memberUUID,
		InvoiceNumber: fmt.Sprintf("INV-%06d", nextVal),
		Type:          invType,
		Amount:        amount,
		Status:        StatusPending,
		IssuedAt:      time.Now().UTC(),
		DueDate:       dueDate,
	}
	if planID != "" {
		planUUID, err := uuid.Parse(planID)
		if err == nil {
			inv.PlanID = &planUUID
		}
	}

	if err := qtx.Create(ctx, inv); err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("member_id", memberID),
		zap.String("type", invType),
	)

	return mapToResponse(*inv), nil
}

func (s *service) GetAll(ctx context.Context, branchID, status string) ([]InvoiceResponse, error) {
	rows, err := s.repo.FindAllByBranch(ctx, branchID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (InvoiceResponse, error) {
	inv, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*inv), nil
}

func (s *service) GetByMember(ctx context.Context, memberID string) ([]InvoiceResponse, error) {
	rows, err := s.repo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// MarkPaid settles an invoice. Re-delivered payment events hit the
// already-paid branch and are treated as handled.
func (s *service) MarkPaid(ctx context.Context, id string, paidAt time.Time) (InvoiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByID(ctx, id)
	if err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}

	switch inv.Status {
	case StatusPaid:
		return mapToResponse(*inv), invoiceerrors.ErrInvoiceAlreadyPaid
	case StatusVoid:
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceVoided
	}

	when := paidAt.UTC()
	inv.Status = StatusPaid
	inv.PaidAt = &when

	if err := qtx.Update(ctx, inv); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("invoice paid",
		zap.String("invoice_id", id),
		zap.String("invoice_number", inv.InvoiceNumber),
	)

	return mapToResponse(*inv), nil
}

func (s *service) Void(ctx context.Context, branchID, id string) (InvoiceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		return InvoiceResponse{}, mapRepositoryError(err)
	}

	if inv.Status == StatusPaid {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceAlreadyPaid
	}

	inv.Status = StatusVoid

	if err := qtx.Update(ctx, inv); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("invoice voided", zap.String("invoice_id", id))

	return mapToResponse(*inv), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invoiceerrors.ErrInvoiceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_invoice_member_signup" {
			return invoiceerrors.ErrSignupInvoiceExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_invoice_member_signup") {
		return invoiceerrors.ErrSignupInvoiceExists
	}

	return err
}

func mapToResponse(inv Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		BranchID:      inv.BranchID.String(),
		MemberID:      inv.MemberID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		Type:          inv.Type,
		Amount:        inv.Amount,
		Status:        inv.Status,
		IssuedAt:      inv.IssuedAt.Format(time.RFC3339),
		DueDate:       inv.DueDate.Format("2006-01-02"),
	}
	if inv.PlanID != nil {
		resp.PlanID = inv.PlanID.String()
	}
	if inv.PaidAt != nil {
		v := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(rows []Invoice) []InvoiceResponse {
	resp := make([]InvoiceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
