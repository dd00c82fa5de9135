package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-gym/internal/events"
	invoiceerrors "go-gym/internal/invoice/errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PaymentRecordedConsumer settles invoices from payment events.
type PaymentRecordedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewPaymentRecordedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *PaymentRecordedConsumer {
	l := zap.L().Named("invoice.payment_consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.payment_consumer")
	}

	return &PaymentRecordedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.PaymentRecordedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *PaymentRecordedConsumer) Close() error {
	return c.reader.Close()
}

// settlementSkippable reports whether a settlement failure is permanent
// for this event: a redelivery onto a paid invoice, or a reference to an
// invoice that does not exist. Such events are committed, not retried.
func settlementSkippable(err error) bool {
	return errors.Is(err, invoiceerrors.ErrInvoiceAlreadyPaid) ||
		errors.Is(err, invoiceerrors.ErrInvoiceNotFound)
}

func (c *PaymentRecordedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume payment_recorded failed", zap.Error(err))
				continue
			}

			var event events.PaymentRecordedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode payment_recorded event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid payment_recorded event failed", zap.Error(commitErr))
				}
				continue
			}

			// Payments recorded without an invoice reference are plain
			// bookkeeping; nothing to settle.
			if event.InvoiceID == "" {
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit uninvoiced payment_recorded event failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.MarkPaid(ctx, event.InvoiceID, event.OccurredAt)
			if err != nil {
				if settlementSkippable(err) {
					c.logger.Warn("invoice not settleable for event, skipping",
						zap.String("invoice_id", event.InvoiceID),
						zap.String("payment_id", event.PaymentID),
						zap.Error(err),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit unsettleable payment_recorded event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("mark invoice paid failed",
					zap.String("invoice_id", event.InvoiceID),
					zap.String("payment_id", event.PaymentID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit payment_recorded event failed", zap.Error(err))
				continue
			}

			c.logger.Info("invoice marked paid from payment_recorded event",
				zap.String("invoice_id", event.InvoiceID),
				zap.String("payment_id", event.PaymentID),
			)
		}
	}()
}
