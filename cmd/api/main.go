package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sun6bks/ticket-api/internal/cache"
	"github.com/sun6bks/ticket-api/internal/config"
	"github.com/sun6bks/ticket-api/internal/database"
	"github.com/sun6bks/ticket-api/internal/events"
	"github.com/sun6bks/ticket-api/internal/handler"
	"github.com/sun6bks/ticket-api/internal/middleware"
	"github.com/sun6bks/ticket-api/internal/repository"
	"github.com/sun6bks/ticket-api/internal/service"
	"github.com/sun6bks/ticket-api/internal/utils"
	"github.com/sun6bks/ticket-api/internal/worker"
	"github.com/sun6bks/ticket-api/pkg/midtrans"
)

// main is the application entrypoint for the ticket sales API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting ticket api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	orderCache := cache.NewOrderCache(redisClient)

	// 4. Initialize gateway client and JWT secret
	utils.SetJWTSecret(cfg.JWTSecret)
	gateway := midtrans.NewClient(cfg.Midtrans.ServerKey, cfg.Midtrans.IsProduction)
	if cfg.Midtrans.ServerKey == "" {
		log.Warn().Msg("MIDTRANS_SERVER_KEY is empty: every webhook signature will be rejected")
	}

	// 5. Initialize repositories
	trxRepo := repository.NewTransactionRepository(db)
	stockRepo := repository.NewStockRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	receiptRepo := repository.NewWebhookRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 6. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6a. Status event publisher (optional)
	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher.Start(ctx)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Status event publisher started")
	}

	// 7. Initialize services
	var statusPublisher service.StatusPublisher
	if publisher != nil {
		statusPublisher = publisher
	}
	reconcileSvc := service.NewReconcileService(
		trxRepo, stockRepo, ticketRepo, auditRepo, receiptRepo,
		gateway, orderCache, statusPublisher, cfg.Worker,
	)
	orderSvc := service.NewOrderService(trxRepo, categoryRepo, stockRepo, ticketRepo, gateway, orderCache, cfg.AppURL)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:           handler.NewHealthHandler(db),
		Order:            handler.NewOrderHandler(orderSvc, reconcileSvc),
		Webhook:          handler.NewWebhookHandler(reconcileSvc),
		Auth:             handler.NewAuthHandler(adminAuthSvc),
		AdminTransaction: handler.NewAdminTransactionHandler(trxRepo, ticketRepo, auditRepo, reconcileSvc),
		Cron:             handler.NewCronHandler(reconcileSvc, cfg.CronSecret),
	}

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware())

	// 10. Start reconcile worker
	go worker.NewReconcileWorker(reconcileSvc, cfg.Worker.SweepInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers and flush the publisher
	cancel()
	if publisher != nil {
		publisher.WaitClosed()
	}

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health           *handler.HealthHandler
	Order            *handler.OrderHandler
	Webhook          *handler.WebhookHandler
	Auth             *handler.AuthHandler
	AdminTransaction *handler.AdminTransactionHandler
	Cron             *handler.CronHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	// Gateway webhook endpoint (signature-authenticated, always answers 200)
	router.POST("/v1/webhooks/midtrans", handlers.Webhook.HandleNotification)

	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public order routes
	orders := router.Group("/v1/orders")
	{
		orders.POST("", handlers.Order.CreateOrder)
		orders.GET("/:orderId", handlers.Order.GetOrder)
		orders.POST("/:orderId/recheck", handlers.Order.RecheckOrder)
	}

	// Scheduler-triggered sweep (bearer CRON_SECRET). GET is registered too
	// because hosted cron services often only issue GETs.
	router.POST("/v1/internal/cron/reconcile", handlers.Cron.RunSweep)
	router.GET("/v1/internal/cron/reconcile", handlers.Cron.RunSweep)

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMiddleware.Handle())
	{
		admin.GET("/transactions", handlers.AdminTransaction.ListTransactions)
		admin.GET("/transactions/stats", handlers.AdminTransaction.GetStats)
		admin.GET("/transactions/:orderId", handlers.AdminTransaction.GetTransaction)
		admin.GET("/transactions/:orderId/audit-logs", handlers.AdminTransaction.GetAuditLogs)
		admin.POST("/transactions/:orderId/recheck", handlers.AdminTransaction.RecheckTransaction)
		admin.POST("/transactions/:orderId/override", handlers.AdminTransaction.OverrideTransaction)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
