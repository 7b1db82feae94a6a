package app

import (
	"context"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/category"
	"github.com/cha0jun/leavey/internal/config"
	"github.com/cha0jun/leavey/internal/document"
	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/messaging/kafka"
	"github.com/cha0jun/leavey/internal/middleware"
	"github.com/cha0jun/leavey/internal/observability"
	"github.com/cha0jun/leavey/internal/rbac"
	"github.com/cha0jun/leavey/internal/reconciliation"
	"github.com/cha0jun/leavey/internal/shared/counter"
	"github.com/cha0jun/leavey/internal/user"
	"github.com/cha0jun/leavey/internal/vendorsync"
	"github.com/cha0jun/leavey/internal/webhook"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// newLeaveService wires the workflow with its audit recorder, outbox and
// the configured vendor adapter. The consumer builds the same service.
func newLeaveService(cfg config.Config, in *infra, recorder audit.Recorder, logger *zap.Logger) (leave.Service, error) {
	adapter, err := vendorsync.New(cfg.Sync, in.messageWriter(), logger)
	if err != nil {
		return nil, err
	}
	return leave.NewServiceWithOutbox(
		in.sqlDB,
		leave.NewRepository(in.gormDB),
		counter.NewRepository(in.gormDB),
		recorder,
		adapter,
		kafka.NewOutboxRepository(in.gormDB),
		cfg.Sync.Timeout,
		logger,
	), nil
}

func registerModules(router *gin.Engine, cfg config.Config, in *infra, logger *zap.Logger) error {
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(),
		middleware.RateLimitByIP(rate.Limit(20), 40),
	)

	// --- Repositories ---
	auditRepo := audit.NewRepository(in.gormDB)
	categoryRepo := category.NewRepository(in.gormDB)
	documentRepo := document.NewRepository(in.gormDB)
	reconRepo := reconciliation.NewRepository(in.gormDB)
	userRepo := user.NewRepository(in.gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	recorder := audit.NewRecorder(auditRepo)
	auditService := audit.NewService(auditRepo, logger)
	categoryService := category.NewService(in.sqlDB, categoryRepo, in.rdb, logger)
	userService := user.NewService(in.sqlDB, userRepo, recorder, logger)
	leaveService, err := newLeaveService(cfg, in, recorder, logger)
	if err != nil {
		return err
	}
	storage, err := document.NewStorage(cfg.Upload, logger)
	if err != nil {
		return err
	}
	documentService := document.NewService(in.sqlDB, documentRepo, recorder, leaveService, storage, cfg.Upload.MaxBytes, logger)
	reconService := reconciliation.NewService(reconRepo, cfg.Recon.DefaultWorkingDays, logger)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService, logger)
	categoryHandler := category.NewHandler(categoryService, logger)
	documentHandler := document.NewHandler(documentService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	reconHandler := reconciliation.NewHandler(reconService, logger)
	userHandler := user.NewHandler(userService, logger)
	webhookHandler := webhook.NewHandler(userService, cfg.Auth.WebhookSecret, logger)

	auth := middleware.AuthMiddleware(cfg.Auth.JWTSecret, userService)

	// --- Operations ---
	router.GET("/health", Health(cfg.AppEnv, map[string]HealthCheck{
		"database": in.sqlDB.PingContext,
		"redis": func(ctx context.Context) error {
			return in.rdb.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbacHandler, auth)
		user.RegisterRoutes(api, userHandler, auth, rbacService)
		category.RegisterRoutes(api, categoryHandler, auth, rbacService)
		leave.RegisterRoutes(api, leaveHandler, auth, rbacService,
			middleware.Idempotency(in.rdb),
			middleware.RateLimitByUser(rate.Limit(1), 5),
		)
		audit.RegisterRoutes(api, auditHandler, auth, rbacService)
		document.RegisterRoutes(api, documentHandler, auth, rbacService)
		reconciliation.RegisterRoutes(api, reconHandler, auth, rbacService)
		webhook.RegisterRoutes(api, webhookHandler)
	}

	return nil
}
