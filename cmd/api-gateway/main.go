package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/bank-sampah-api/api/swagger"
	"github.com/noah-isme/bank-sampah-api/internal/handler"
	"github.com/noah-isme/bank-sampah-api/internal/middleware"
	"github.com/noah-isme/bank-sampah-api/internal/models"
	"github.com/noah-isme/bank-sampah-api/internal/repository"
	"github.com/noah-isme/bank-sampah-api/internal/service"
	"github.com/noah-isme/bank-sampah-api/pkg/cache"
	"github.com/noah-isme/bank-sampah-api/pkg/config"
	"github.com/noah-isme/bank-sampah-api/pkg/database"
	"github.com/noah-isme/bank-sampah-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/bank-sampah-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/bank-sampah-api/pkg/middleware/requestid"
	"github.com/noah-isme/bank-sampah-api/pkg/storage"
)

// @title Bank Sampah API
// @version 1.0.0
// @description School waste bank: bottle deposits, trashbag rewards and savings withdrawals
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		redisClient = nil
	}

	// Repositories.
	studentRepo := repository.NewStudentRepository(db)
	wasteTypeRepo := repository.NewWasteTypeRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	trashbagWithdrawalRepo := repository.NewTrashbagWithdrawalRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	savingsRepo := repository.NewSavingsRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	authSvc := service.NewAuthService(userRepo, studentRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	ledgerSvc := service.NewLedgerService(depositRepo, wasteTypeRepo, trashbagWithdrawalRepo, logr)
	studentSvc := service.NewStudentService(studentRepo, nil, logr)
	importSvc := service.NewImportService(studentRepo, cfg.Imports.MaxRows, logr)
	wasteTypeSvc := service.NewWasteTypeService(wasteTypeRepo, nil, logr)
	depositSvc := service.NewDepositService(depositRepo, wasteTypeRepo, studentRepo, savingsRepo, nil, logr)
	trashbagWithdrawalSvc := service.NewTrashbagWithdrawalService(trashbagWithdrawalRepo, ledgerSvc, nil, logr)
	withdrawalSvc := service.NewWithdrawalService(withdrawalRepo, savingsRepo, nil, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Deposits:            depositRepo,
		Students:            studentRepo,
		Savings:             savingsRepo,
		TrashbagWithdrawals: trashbagWithdrawalRepo,
		SavingsWithdrawals:  withdrawalRepo,
		Cache:               cacheSvc,
		Logger:              logr,
		Config:              service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	reportSvc := service.NewReportService(depositRepo, nil, nil, logr)

	var archiveSvc *service.ExportArchiveService
	exportStore, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		logr.Warn("export archive disabled", zap.Error(err))
	} else {
		signer := storage.NewSignedURLSigner(cfg.JWT.Secret, cfg.Exports.DownloadTTL)
		archiveSvc = service.NewExportArchiveService(exportStore, signer, logr, service.ExportArchiveConfig{
			DownloadTTL: cfg.Exports.DownloadTTL,
		})
		archiveSvc.Start(context.Background())
		defer archiveSvc.Stop()
		if pruned, err := archiveSvc.CleanupExpired(); err != nil {
			logr.Warn("failed to prune archived exports", zap.Error(err))
		} else if pruned > 0 {
			logr.Info("pruned stale archived exports", zap.Int("count", pruned))
		}
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, importSvc)
	wasteTypeHandler := handler.NewWasteTypeHandler(wasteTypeSvc)
	depositHandler := handler.NewDepositHandler(depositSvc, dashboardSvc)
	ledgerHandler := handler.NewLedgerHandler(ledgerSvc, depositSvc)
	trashbagWithdrawalHandler := handler.NewTrashbagWithdrawalHandler(trashbagWithdrawalSvc)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(reportSvc, archiveSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.LoginStudent)
		auth.POST("/admin/login", authHandler.LoginAdmin)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	secured := api.Group("")
	secured.Use(middleware.JWT(authSvc))

	admin := string(models.RoleAdmin)

	students := secured.Group("/students")
	{
		students.GET("", middleware.RBAC(admin), studentHandler.List)
		students.POST("", middleware.RBAC(admin), studentHandler.Create)
		students.POST("/import", middleware.RBAC(admin), studentHandler.Import)
		students.GET("/:id", middleware.RBAC(admin, middleware.SelfRole), studentHandler.Get)
		students.PUT("/:id", middleware.RBAC(admin), studentHandler.Update)
		students.DELETE("/:id", middleware.RBAC(admin), studentHandler.Delete)

		students.GET("/:id/ledger", middleware.RBAC(admin, middleware.SelfRole), ledgerHandler.Summary)
		students.GET("/:id/deposits", middleware.RBAC(admin, middleware.SelfRole), ledgerHandler.Deposits)
		students.GET("/:id/trashbag-withdrawals", middleware.RBAC(admin, middleware.SelfRole), trashbagWithdrawalHandler.ListByStudent)
		students.POST("/:id/trashbag-withdrawals", middleware.RBAC(admin, middleware.SelfRole), trashbagWithdrawalHandler.Create)
		students.GET("/:id/savings", middleware.RBAC(admin, middleware.SelfRole), withdrawalHandler.Balance)
		students.POST("/:id/withdrawals", middleware.RBAC(admin, middleware.SelfRole), withdrawalHandler.Create)
	}

	wasteTypes := secured.Group("/waste-types")
	{
		wasteTypes.GET("", wasteTypeHandler.List)
		wasteTypes.GET("/:id", wasteTypeHandler.Get)
		wasteTypes.POST("", middleware.RBAC(admin), wasteTypeHandler.Create)
		wasteTypes.PUT("/:id", middleware.RBAC(admin), wasteTypeHandler.Update)
		wasteTypes.DELETE("/:id", middleware.RBAC(admin), wasteTypeHandler.Delete)
	}

	deposits := secured.Group("/deposits")
	deposits.Use(middleware.RBAC(admin))
	{
		deposits.GET("", depositHandler.List)
		deposits.POST("", depositHandler.Create)
		deposits.DELETE("/:id", depositHandler.Delete)
	}

	trashbagWithdrawals := secured.Group("/trashbag-withdrawals")
	trashbagWithdrawals.Use(middleware.RBAC(admin))
	{
		trashbagWithdrawals.GET("", trashbagWithdrawalHandler.List)
		trashbagWithdrawals.PATCH("/:id/status", trashbagWithdrawalHandler.Transition)
		trashbagWithdrawals.PUT("/:id", trashbagWithdrawalHandler.Update)
		trashbagWithdrawals.DELETE("/:id", trashbagWithdrawalHandler.Delete)
	}

	withdrawals := secured.Group("/withdrawals")
	withdrawals.Use(middleware.RBAC(admin))
	{
		withdrawals.GET("", withdrawalHandler.List)
		withdrawals.PATCH("/:id/status", withdrawalHandler.Transition)
		withdrawals.DELETE("/:id", withdrawalHandler.Delete)
	}

	secured.GET("/dashboard/stats", middleware.RBAC(admin), dashboardHandler.Stats)
	secured.GET("/reports/deposits", middleware.RBAC(admin), reportHandler.Deposits)
	secured.GET("/reports/downloads", middleware.RBAC(admin), reportHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
