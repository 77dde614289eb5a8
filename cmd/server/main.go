package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	partyapp "github.com/paymentecho/backend/internal/application/party"
	paymentapp "github.com/paymentecho/backend/internal/application/payment"
	"github.com/paymentecho/backend/internal/infrastructure/config"
	"github.com/paymentecho/backend/internal/infrastructure/i18n"
	"github.com/paymentecho/backend/internal/infrastructure/logger"
	"github.com/paymentecho/backend/internal/infrastructure/persistence"
	"github.com/paymentecho/backend/internal/infrastructure/seed"
	gqlschema "github.com/paymentecho/backend/internal/interfaces/graphql"
	"github.com/paymentecho/backend/internal/interfaces/http/handler"
	"github.com/paymentecho/backend/internal/interfaces/http/middleware"
	"github.com/paymentecho/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting payment backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Repositories
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	creditorRepo := persistence.NewGormCreditorRepository(db.DB)
	debtorRepo := persistence.NewGormDebtorRepository(db.DB)

	// Application services
	paymentService := paymentapp.NewService(paymentRepo, creditorRepo, debtorRepo)
	creditorService := partyapp.NewService(creditorRepo)
	debtorService := partyapp.NewService(debtorRepo)

	// Message translator for localized error responses
	translator, err := i18n.NewTranslator(cfg.I18n.DefaultLocale)
	if err != nil {
		log.Fatal("Failed to load translations", zap.Error(err))
	}

	// Optional development sample data
	if cfg.App.SeedSampleData {
		seeder := seed.NewSeeder(paymentRepo, creditorRepo, debtorRepo, log)
		if err := seeder.Run(context.Background()); err != nil {
			log.Fatal("Failed to seed sample data", zap.Error(err))
		}
	}

	// HTTP handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, translator)
	creditorHandler := handler.NewCreditorHandler(creditorService, translator)
	debtorHandler := handler.NewDebtorHandler(debtorService, translator)
	healthHandler := handler.NewHealthHandler(db)

	// GraphQL schema over the same services
	schema, err := gqlschema.New(paymentService, creditorService, debtorService, translator)
	if err != nil {
		log.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, request logging,
	// CORS, body size limit, locale resolution
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Locale(translator.DefaultLocale()))

	engine.GET("/healthz", healthHandler.Healthz)
	engine.POST("/graphql", gin.WrapH(schema.Handler()))

	router.NewRouter(engine).
		Register(router.PaymentRoutes{Handler: paymentHandler}).
		Register(router.CounterpartyRoutes{Prefix: "creditors", Handler: creditorHandler}).
		Register(router.CounterpartyRoutes{Prefix: "debtors", Handler: debtorHandler}).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
