package app

import (
	"os"
	"path/filepath"

	"github.com/AndraZero121/lomba-bank-jateng/internal/authz"
	"github.com/AndraZero121/lomba-bank-jateng/internal/bootstrap"
	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, auditLogger bootstrap.AuditLogger) error {
	logger := zap.L().Named("app")

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
	logger.Info("database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := runMigrations(gormDB); err != nil {
		return err
	}
	logger.Info("schema migrations applied")

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set; employee options cache and idempotency disabled")
	}

	modelPath := os.Getenv("AUTHZ_MODEL")
	if modelPath == "" {
		modelPath = filepath.Join("internal", "authz", "model.conf")
	}
	policyPath := os.Getenv("AUTHZ_POLICY")
	if policyPath == "" {
		policyPath = filepath.Join("internal", "authz", "policy.csv")
	}
	enforcer, err := authz.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return err
	}

	return registerModules(router, db, gormDB, rdb, enforcer, auditLogger)
}
