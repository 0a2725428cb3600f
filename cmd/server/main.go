package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bank-ledger.backend/internal/config"
	"bank-ledger.backend/internal/infrastructure/datasources/postgres"
	"bank-ledger.backend/internal/infrastructure/jobs"
	"bank-ledger.backend/internal/infrastructure/models"
	"bank-ledger.backend/internal/infrastructure/repositories"
	"bank-ledger.backend/internal/interfaces/http/handlers"
	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/internal/usecases"
	"bank-ledger.backend/pkg/jwt"
	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	connectDB  = postgres.NewConnection
	migrate    = models.AutoMigrate
	runServer  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownCh = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	if cfg.Redis.URL == "" {
		logger.Warn(ctx, "Redis disabled, idempotency keys are not enforced")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(ctx, "Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database schema migrated")
	}

	r, job := buildApp(cfg, db)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go job.Start(jobCtx)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Bank ledger backend starting", zap.String("port", cfg.Server.Port))
		errCh <- runServer(srv)
	}()

	select {
	case err := <-errCh:
		job.Stop()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-shutdownCh():
		logger.Info(ctx, "Shutting down server")
	}

	job.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// buildApp wires repositories, usecases and handlers onto a router
func buildApp(cfg *config.Config, db *gorm.DB) (*gin.Engine, *jobs.LedgerReconciliationJob) {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenExpiry)

	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewLoanPaymentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	identityUsecase := usecases.NewIdentityUsecase(userRepo, customerRepo, cfg.Identity.AutoProvision)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo, accountRepo, loanRepo)
	accountUsecase := usecases.NewAccountUsecase(uow, accountRepo, txRepo, customerRepo, usecases.AccountConfig{
		MinInitialDeposit: cfg.Ledger.MinInitialDeposit,
		IDMaxAttempts:     cfg.Ledger.IDMaxAttempts,
	})
	transactionUsecase := usecases.NewTransactionUsecase(uow, accountRepo, txRepo, cfg.Ledger.IDMaxAttempts)
	loanUsecase := usecases.NewLoanUsecase(uow, loanRepo, paymentRepo, customerRepo, cfg.Ledger.IDMaxAttempts)
	reconciliationUsecase := usecases.NewReconciliationUsecase(uow, accountRepo, txRepo, loanRepo, paymentRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerOpsRoutes(r, handlers.NewHealthHandler(func(ctx context.Context) error {
		return db.WithContext(ctx).Exec("SELECT 1").Error
	}))
	registerAPIV1Routes(r, routeDeps{
		meHandler:          handlers.NewMeHandler(identityUsecase),
		customerHandler:    handlers.NewCustomerHandler(customerUsecase),
		accountHandler:     handlers.NewAccountHandler(accountUsecase),
		transactionHandler: handlers.NewTransactionHandler(transactionUsecase),
		loanHandler:        handlers.NewLoanHandler(loanUsecase),
		authMiddleware:     middleware.AuthMiddleware(jwtService, identityUsecase),
		idempotency:        middleware.IdempotencyMiddleware(),
	})

	job := jobs.NewLedgerReconciliationJob(reconciliationUsecase, cfg.Ledger.ReconcileInterval)
	return r, job
}
