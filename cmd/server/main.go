package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/adapters/http/handler"
	"github.com/ogurasousui/ems-api/internal/adapters/repository/postgres"
	"github.com/ogurasousui/ems-api/internal/core/auth"
	"github.com/ogurasousui/ems-api/internal/core/dashboard"
	"github.com/ogurasousui/ems-api/internal/core/department"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	"github.com/ogurasousui/ems-api/internal/core/position"
	"github.com/ogurasousui/ems-api/internal/platform/config"
	pg "github.com/ogurasousui/ems-api/internal/platform/db/postgres"
	"github.com/ogurasousui/ems-api/internal/platform/logger"
	"github.com/ogurasousui/ems-api/internal/platform/password"
	"github.com/ogurasousui/ems-api/internal/platform/server"
	"github.com/ogurasousui/ems-api/internal/platform/token"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	departmentRepo := postgres.NewDepartmentRepository(dbPool)
	positionRepo := postgres.NewPositionRepository(dbPool)
	dashboardRepo := postgres.NewDashboardRepository(dbPool)

	employeeSvc := employee.NewService(employeeRepo, hasher, nil)
	departmentSvc := department.NewService(departmentRepo)
	positionSvc := position.NewService(positionRepo)
	authSvc := auth.NewService(employeeRepo, hasher, tokens, nil)
	dashboardSvc := dashboard.NewService(dashboardRepo)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(zapLogger, tokens, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, zapLogger),
		Employees:   handler.NewEmployeeHandler(employeeSvc, zapLogger),
		Departments: handler.NewDepartmentHandler(departmentSvc, zapLogger),
		Positions:   handler.NewPositionHandler(positionSvc, zapLogger),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc, zapLogger),
	})

	httpServer := server.New(cfg.Server.ListenAddr, router)

	zapLogger.Info("HTTP server listening", zap.String("addr", cfg.Server.ListenAddr))

	if err := httpServer.Run(ctx); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}
}
