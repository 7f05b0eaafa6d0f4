package main

import (
	"os"

	"github.com/cocomgroup/hub-hrms-sub002/internal/auth"
	"github.com/cocomgroup/hub-hrms-sub002/internal/benefits"
	"github.com/cocomgroup/hub-hrms-sub002/internal/clock"
	"github.com/cocomgroup/hub-hrms-sub002/internal/compensation"
	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	"github.com/cocomgroup/hub-hrms-sub002/internal/payroll"
	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/connection"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timeentry"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// rawStatements covers what AutoMigrate cannot express: the outbox table
// and the partial unique indexes the concurrency invariants rely on.
var rawStatements = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		request_id TEXT,
		aggregate_type TEXT NOT NULL,
		aggregate_id UUID NOT NULL,
		event_type TEXT NOT NULL,
		topic TEXT NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		retry_count INT NOT NULL DEFAULT 0,
		last_error TEXT,
		next_retry_at TIMESTAMPTZ,
		sent_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status
		ON outbox_events (status, next_retry_at)`,

	// One open clock session per employee.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_clock_sessions_open
		ON clock_sessions (employee_id)
		WHERE clock_out IS NULL`,

	// One manual entry per (employee, date, project); NULL project folds to
	// the zero uuid so general entries collide.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_entries_manual
		ON time_entries (employee_id, entry_date,
			COALESCE(project_id, '00000000-0000-0000-0000-000000000000'::uuid))
		WHERE source = 'MANUAL'`,

	// One live stub per (employee, period); reversed stubs free the slot.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_pay_stubs_active
		ON pay_stubs (employee_id, payroll_period_id)
		WHERE reversed_at IS NULL`,
}

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

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
		logger.Fatal("connect database failed", zap.Error(err))
	}

	err = gormDB.AutoMigrate(
		&auth.User{},
		&employee.Employee{},
		&compensation.CompensationPlan{},
		&benefits.BenefitEnrollment{},
		&timesheet.Timesheet{},
		&timeentry.TimeEntry{},
		&clock.ClockSession{},
		&payroll.PayrollPeriod{},
		&payroll.PayStub{},
	)
	if err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	for _, stmt := range rawStatements {
		if err := gormDB.Exec(stmt).Error; err != nil {
			logger.Fatal("raw migration failed", zap.String("stmt", stmt), zap.Error(err))
		}
	}

	logger.Info("migrations applied")
}
