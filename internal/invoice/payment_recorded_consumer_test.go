package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	invoiceerrors "go-gym/internal/invoice/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSettlementSkippable(t *testing.T) {
	assert.True(t, settlementSkippable(invoiceerrors.ErrInvoiceAlreadyPaid))
	assert.True(t, settlementSkippable(invoiceerrors.ErrInvoiceNotFound))

	// Transient faults stay on the partition for redelivery.
	assert.False(t, settlementSkippable(errors.New("connection reset")))
	assert.False(t, settlementSkippable(invoiceerrors.ErrInvoiceVoided))
}

func TestService_MarkPaid_UnknownInvoice(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	// An event can reference an invoice that was never created here.
	// The settlement loop commits such events instead of retrying.
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Invoice, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.MarkPaid(context.Background(), uuid.New().String(), time.Now().UTC())
	assert.ErrorIs(t, err, invoiceerrors.ErrInvoiceNotFound)
	assert.True(t, settlementSkippable(err))
}
