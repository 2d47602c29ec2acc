package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adebayoisreal122/Banking-Backend/internal/command"
	"github.com/Adebayoisreal122/Banking-Backend/internal/config"
	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/handler"
	"github.com/Adebayoisreal122/Banking-Backend/internal/ledger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/logger"
	"github.com/Adebayoisreal122/Banking-Backend/internal/middleware"
	"github.com/Adebayoisreal122/Banking-Backend/internal/query"
	redisClient "github.com/Adebayoisreal122/Banking-Backend/internal/redis"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"github.com/Adebayoisreal122/Banking-Backend/internal/token"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, syncLogger := logger.Initialize(cfg.Server.GinMode != gin.ReleaseMode)
	defer syncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis backs the account view cache, the rate limiter and the event
	// stream. Without it the API still serves every request.
	var redis *redisClient.Client
	if cfg.Redis.Enabled {
		redis, err = redisClient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redis.Close()
	} else {
		zap.L().Warn("Redis disabled: no view cache, rate limiting or events")
	}

	router := newRouter(cfg, db, redis)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Banking API starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRouter(cfg *config.Config, db *sql.DB, redis *redisClient.Client) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	// --- CQRS wiring ---
	var publisher events.Publisher = events.NopPublisher{}
	if redis != nil {
		publisher = events.NewPublisher(redis.Client)
	}
	stream := cfg.Events.Stream
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	accountWriteRepo := repository.NewAccountWriteRepository(db)
	accountReadRepo := repository.NewAccountReadRepository(db, redis, cfg.Redis.ViewTTL)
	txnReadRepo := repository.NewTransactionReadRepository(db)
	loanReadRepo := repository.NewLoanReadRepository(db)
	billReadRepo := repository.NewBillReadRepository(db)

	issuer := ledger.NewAccountNumberIssuer(accountWriteRepo, cfg.Ledger.AccountNumberAttempts)
	orchestrator := ledger.NewOrchestrator(repository.NewLedgerStore(db), ledger.Config{
		LoanAnnualRate: cfg.Ledger.LoanRate,
	})

	authCommands := command.NewAuthCommandService(userRepo, issuer, tokens, publisher, stream, cfg.Auth.BcryptCost)
	accountCommands := command.NewAccountCommandService(accountWriteRepo, accountReadRepo, issuer, publisher, stream)
	ledgerCommands := command.NewLedgerCommandService(orchestrator, accountReadRepo, publisher, stream)

	authQueries := query.NewAuthQueryService(userRepo, tokens)
	accountQueries := query.NewAccountQueryService(accountReadRepo, txnReadRepo, loanReadRepo)
	txnQueries := query.NewTransactionQueryService(txnReadRepo, accountReadRepo,
		cfg.Ledger.DefaultTransactionLimit, cfg.Ledger.MaxTransactionLimit)
	loanQueries := query.NewLoanQueryService(loanReadRepo)
	billQueries := query.NewBillQueryService(billReadRepo, cfg.Ledger.BillListLimit)

	h := handlers{
		auth:        handler.NewAuthHandler(authCommands, authQueries),
		account:     handler.NewAccountHandler(accountCommands, accountQueries),
		transaction: handler.NewTransactionHandler(ledgerCommands, txnQueries),
		loan:        handler.NewLoanHandler(ledgerCommands, loanQueries),
		bill:        handler.NewBillHandler(ledgerCommands, billQueries),
	}

	limits := rateLimits{}
	if cfg.RateLimit.Enabled && redis != nil {
		counter := redisClient.NewWindowCounter(redis.Client, "ratelimit")
		limits.general = middleware.RateLimitMiddleware(counter, "api", cfg.RateLimit.GeneralLimit, cfg.RateLimit.Window)
		limits.auth = middleware.RateLimitMiddleware(counter, "auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.Window)
	}

	return registerRoutes(h, middleware.AuthMiddleware(tokens), limits)
}
