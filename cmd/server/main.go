package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	farmapp "github.com/farmledger/backend/internal/application/farm"
	financeapp "github.com/farmledger/backend/internal/application/finance"
	stockapp "github.com/farmledger/backend/internal/application/stock"
	"github.com/farmledger/backend/internal/infrastructure/auth"
	"github.com/farmledger/backend/internal/infrastructure/config"
	"github.com/farmledger/backend/internal/infrastructure/logger"
	"github.com/farmledger/backend/internal/infrastructure/persistence"
	"github.com/farmledger/backend/internal/infrastructure/telemetry"
	"github.com/farmledger/backend/internal/interfaces/http/handler"
	"github.com/farmledger/backend/internal/interfaces/http/middleware"
	"github.com/farmledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FarmLedger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	farmRepo := persistence.NewGormFarmRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	medicationRepo := persistence.NewGormMedicationRepository(db.DB)
	entryRepo := persistence.NewGormStockEntryRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db.DB)

	stockTxScope := persistence.NewGormStockTransactionScope(db.DB)
	financeTxScope := persistence.NewGormFinanceTransactionScope(db.DB)

	// Application services
	farmService := farmapp.NewFarmService(farmRepo)
	contactService := farmapp.NewContactService(contactRepo)
	stockService := stockapp.NewStockService(medicationRepo, entryRepo, withdrawalRepo, stockTxScope)
	categoryService := financeapp.NewCategoryService(categoryRepo)
	movementService := financeapp.NewMovementService(categoryRepo, movementRepo, installmentRepo, financeTxScope)
	reportService := financeapp.NewReportService(financeReportRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	farmHandler := handler.NewFarmHandler(farmService)
	contactHandler := handler.NewContactHandler(contactService)
	stockHandler := handler.NewStockHandler(stockService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	movementHandler := handler.NewMovementHandler(movementService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, recovery, request logging, security
	// headers, tracing, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check outside API versioning
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Authentication, then farm scope resolution for farm-bound routes
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))
	r.Use(middleware.FarmScopeMiddlewareWithConfig(middleware.FarmMiddlewareConfig{
		Authorizer: farmService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/farms",
		},
		Logger: log,
	}))

	// Farm management. The active farm header is not required here; these
	// routes are scoped by ownership instead.
	farmRoutes := router.NewDomainGroup("farm", "/farms")
	farmRoutes.POST("", farmHandler.Create)
	farmRoutes.GET("", farmHandler.List)
	farmRoutes.GET("/:id", farmHandler.Get)
	farmRoutes.PUT("/:id", farmHandler.Update)
	farmRoutes.POST("/:id/activate", farmHandler.Activate)
	farmRoutes.POST("/:id/deactivate", farmHandler.Deactivate)

	// Contacts
	contactRoutes := router.NewDomainGroup("contact", "/contacts")
	contactRoutes.POST("", contactHandler.Create)
	contactRoutes.GET("", contactHandler.List)
	contactRoutes.GET("/:id", contactHandler.Get)
	contactRoutes.PUT("/:id", contactHandler.Update)
	contactRoutes.DELETE("/:id", contactHandler.Delete)

	// Medication stock
	stockRoutes := router.NewDomainGroup("stock", "/stock")
	stockRoutes.POST("/medications", stockHandler.CreateMedication)
	stockRoutes.GET("/medications", stockHandler.ListMedications)
	stockRoutes.GET("/medications/:id", stockHandler.GetMedication)
	stockRoutes.PUT("/medications/:id", stockHandler.RenameMedication)
	stockRoutes.DELETE("/medications/:id", stockHandler.DeleteMedication)
	stockRoutes.POST("/medications/:id/entries", stockHandler.AddEntry)
	stockRoutes.GET("/medications/:id/entries", stockHandler.ListEntries)
	stockRoutes.DELETE("/medications/:id/entries/:entryId", stockHandler.DeleteEntry)
	stockRoutes.POST("/medications/:id/withdraw", stockHandler.Withdraw)
	stockRoutes.GET("/medications/:id/withdrawals", stockHandler.ListWithdrawals)
	stockRoutes.GET("/notifications", stockHandler.ExpiryNotifications)
	stockRoutes.GET("/dashboard", stockHandler.Dashboard)

	// Finance
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/categories", categoryHandler.Create)
	financeRoutes.GET("/categories", categoryHandler.List)
	financeRoutes.GET("/categories/:id", categoryHandler.Get)
	financeRoutes.PUT("/categories/:id", categoryHandler.Rename)
	financeRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	financeRoutes.POST("/movements", movementHandler.Create)
	financeRoutes.GET("/movements", movementHandler.List)
	financeRoutes.GET("/movements/:id", movementHandler.Get)
	financeRoutes.PUT("/movements/:id", movementHandler.Update)
	financeRoutes.DELETE("/movements/:id", movementHandler.Delete)
	financeRoutes.GET("/installments/pending", movementHandler.ListPendingInstallments)
	financeRoutes.POST("/installments/:id/settle", movementHandler.SettleInstallment)
	financeRoutes.POST("/installments/:id/reopen", movementHandler.ReopenInstallment)
	financeRoutes.GET("/reports/summary", reportHandler.Summary)
	financeRoutes.GET("/reports/monthly", reportHandler.MonthlySeries)
	financeRoutes.GET("/reports/categories", reportHandler.CategoryBreakdown)

	// System
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.Info)

	healthRoutes := router.NewDomainGroup("health", "/health")
	healthRoutes.GET("", systemHandler.Health)

	r.Register(farmRoutes).
		Register(contactRoutes).
		Register(stockRoutes).
		Register(financeRoutes).
		Register(systemRoutes).
		Register(healthRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
