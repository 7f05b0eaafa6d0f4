package app

import (
	"database/sql"

	"github.com/cocomgroup/hub-hrms-sub002/internal/auth"
	"github.com/cocomgroup/hub-hrms-sub002/internal/benefits"
	"github.com/cocomgroup/hub-hrms-sub002/internal/clock"
	"github.com/cocomgroup/hub-hrms-sub002/internal/compensation"
	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	"github.com/cocomgroup/hub-hrms-sub002/internal/messaging/kafka"
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/payroll"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac/infra"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timeentry"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	benefitsRepo := benefits.NewRepository(gormDB)
	clockRepo := clock.NewRepository(gormDB, db)
	compensationRepo := compensation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB, db)
	timeentryRepo := timeentry.NewRepository(gormDB, db)
	timesheetRepo := timesheet.NewRepository(gormDB, db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Policies ---
	overtimePolicy := timesheet.PolicyFromEnv()
	deductionRates := payroll.DeductionRatesFromEnv()

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	benefitsService := benefits.NewService(db, benefitsRepo)
	compensationService := compensation.NewService(db, compensationRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	timesheetService := timesheet.NewService(db, timesheetRepo, employeeRepo, outboxRepo, overtimePolicy)
	timeentryService := timeentry.NewService(db, timeentryRepo, timesheetService)
	clockService := clock.NewService(db, clockRepo, timeentryRepo, timesheetService)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo,
		compensationService, benefitsService, outboxRepo, overtimePolicy, deductionRates)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	benefitsHandler := benefits.NewHandler(benefitsService)
	clockHandler := clock.NewHandler(clockService)
	compensationHandler := compensation.NewHandler(compensationService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)
	timeentryHandler := timeentry.NewHandler(timeentryService)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		benefits.RegisterRoutes(api, benefitsHandler, rbacService)
		clock.RegisterRoutes(api, clockHandler, rbacService)
		compensation.RegisterRoutes(api, compensationHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		timeentry.RegisterRoutes(api, timeentryHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
	}

	return nil
}
