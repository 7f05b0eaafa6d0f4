package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cocomgroup/hub-hrms-sub002/internal/benefits"
	"github.com/cocomgroup/hub-hrms-sub002/internal/compensation"
	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	"github.com/cocomgroup/hub-hrms-sub002/internal/events"
	"github.com/cocomgroup/hub-hrms-sub002/internal/messaging/kafka"
	"github.com/cocomgroup/hub-hrms-sub002/internal/messaging/kafka/consumer"
	"github.com/cocomgroup/hub-hrms-sub002/internal/payroll"
	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/connection"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders pay stub PDFs off the paystub.created topic.
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

	outputDir := os.Getenv("PAYSTUB_PDF_DIR")
	if outputDir == "" {
		outputDir = "paystubs"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	employeeRepo := employee.NewRepository(gormDB)
	benefitsRepo := benefits.NewRepository(gormDB)
	compensationRepo := compensation.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB, sqlDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	benefitsService := benefits.NewService(sqlDB, benefitsRepo)
	compensationService := compensation.NewService(sqlDB, compensationRepo)
	payrollService := payroll.NewService(sqlDB, payrollRepo, employeeRepo,
		compensationService, benefitsService, outboxRepo,
		timesheet.PolicyFromEnv(), payroll.DeductionRatesFromEnv())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayStubCreatedTopic,
		GroupID:        "hrms-paystub-pdf",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayStubCreated(ctx, reader, payrollService, outputDir, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
