package consumer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cocomgroup/hub-hrms-sub002/internal/events"
	"github.com/cocomgroup/hub-hrms-sub002/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayStubCreated renders a PDF for every new pay stub and drops it
// into the stub archive directory.
func ConsumePayStubCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	outputDir string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.paystub_created")
	log.Info("pay stub consumer started", zap.String("output_dir", outputDir))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("pay stub consumer stopped")
				return
			}
			log.Error("fetch pay stub message failed", zap.Error(err))
			continue
		}

		var event events.PayStubCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode paystub.created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		pdf, err := payrollService.GenerateStubPDF(ctx, event.PayStubID)
		if err != nil {
			log.Error("generate pay stub pdf failed",
				zap.String("pay_stub_id", event.PayStubID),
				zap.Error(err),
			)
			continue
		}

		path := filepath.Join(outputDir, event.PayStubID+".pdf")
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			log.Error("write pay stub pdf failed",
				zap.String("pay_stub_id", event.PayStubID),
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit pay stub message failed", zap.Error(err))
			continue
		}

		log.Info("pay stub pdf generated",
			zap.String("pay_stub_id", event.PayStubID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("path", path),
		)
	}
}
