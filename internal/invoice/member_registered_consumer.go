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

// MemberRegisteredConsumer issues the signup invoice whenever a member
// registration event lands. The unique signup constraint makes
// redelivery harmless.
type MemberRegisteredConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewMemberRegisteredConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *MemberRegisteredConsumer {
	l := zap.L().Named("invoice.member_consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.member_consumer")
	}

	return &MemberRegisteredConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.MemberRegisteredTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *MemberRegisteredConsumer) Close() error {
	return c.reader.Close()
}

func (c *MemberRegisteredConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume member_registered failed", zap.Error(err))
				continue
			}

			var event events.MemberRegisteredEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode member_registered event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid member_registered event failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.CreateSignupInvoice(ctx, event.BranchID, event.MemberID, event.PlanID)
			if err != nil {
				// Duplicate event is safe to skip.
				if errors.Is(err, invoiceerrors.ErrSignupInvoiceExists) {
					c.logger.Warn("signup invoice already exists for event, skipping",
						zap.String("member_id", event.MemberID),
						zap.String("branch_id", event.BranchID),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit duplicate member_registered event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("create signup invoice failed",
					zap.String("member_id", event.MemberID),
					zap.String("branch_id", event.BranchID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit member_registered event failed", zap.Error(err))
				continue
			}

			c.logger.Info("signup invoice created from member_registered event",
				zap.String("member_id", event.MemberID),
				zap.String("branch_id", event.BranchID),
			)
		}
	}()
}
