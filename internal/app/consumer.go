package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-gym/internal/invoice"
	"go-gym/internal/shared/connection"
	"go-gym/internal/shared/counter"

	"go.uber.org/zap"
)

// RunConsumer drives the billing side effects of domain events: a
// signup invoice when a member registers, and invoice settlement when
// a payment is recorded.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	invoiceRepo := invoice.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	invoiceService := invoice.NewService(sqlDB, invoiceRepo, counterRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	memberConsumer := invoice.NewMemberRegisteredConsumer(kafkaBroker, "go-gym-invoice-signup", invoiceService, logger)
	defer memberConsumer.Close()
	memberConsumer.Start(ctx)

	paymentConsumer := invoice.NewPaymentRecordedConsumer(kafkaBroker, "go-gym-invoice-settlement", invoiceService, logger)
	defer paymentConsumer.Close()
	paymentConsumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
