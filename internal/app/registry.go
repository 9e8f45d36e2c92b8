package app

import (
	"database/sql"

	"github.com/AndraZero121/lomba-bank-jateng/internal/bootstrap"
	"github.com/AndraZero121/lomba-bank-jateng/internal/department"
	"github.com/AndraZero121/lomba-bank-jateng/internal/employee"
	"github.com/AndraZero121/lomba-bank-jateng/internal/messaging/kafka"
	"github.com/AndraZero121/lomba-bank-jateng/internal/middleware"
	"github.com/AndraZero121/lomba-bank-jateng/internal/payrollrun"
	"github.com/AndraZero121/lomba-bank-jateng/internal/payslip"
	"github.com/AndraZero121/lomba-bank-jateng/internal/position"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	enforcer middleware.Enforcer,
	auditLogger bootstrap.AuditLogger,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRunRepo := payrollrun.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo)
	positionService := position.NewService(db, positionRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	payrollRunService := payrollrun.NewServiceWithOutbox(db, payrollRunRepo, outboxRepo)
	payslipService := payslip.NewServiceWithDeps(db, payslipRepo, outboxRepo, auditLogger)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	positionHandler := position.NewHandler(positionService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollRunHandler := payrollrun.NewHandler(payrollRunService)
	payslipHandler := payslip.NewHandlerWithRedis(payslipService, rdb)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, enforcer)
		position.RegisterRoutes(api, positionHandler, enforcer)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		payrollrun.RegisterRoutes(api, payrollRunHandler, enforcer)
		payslip.RegisterRoutes(api, payslipHandler, enforcer, rdb)
	}

	return nil
}
