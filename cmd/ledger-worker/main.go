package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/Adebayoisreal122/Banking-Backend/internal/command"
	"github.com/Adebayoisreal122/Banking-Backend/internal/config"
	"github.com/Adebayoisreal122/Banking-Backend/internal/events"
	"github.com/Adebayoisreal122/Banking-Backend/internal/logger"
	redisClient "github.com/Adebayoisreal122/Banking-Backend/internal/redis"
	"github.com/Adebayoisreal122/Banking-Backend/internal/repository"
	"go.uber.org/zap"
)

// The ledger worker consumes balance.updated events and checks each touched
// account's stored balance against the sum of its transactions.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, syncLogger := logger.Initialize(cfg.Server.GinMode != "release")
	defer syncLogger()

	if !cfg.Redis.Enabled {
		zap.L().Fatal("The ledger worker needs Redis; set REDIS_ENABLED=true")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := redisClient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	reconcileSvc := command.NewReconcileService(repository.NewReconciler(db))

	subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
		Group:    cfg.Events.Group,
		Consumer: cfg.Events.Consumer,
		Stream:   cfg.Events.Stream,
		Handler:  reconcileSvc.HandleLedgerEvent,
	})

	zap.L().Info("Ledger worker started",
		zap.String("stream", cfg.Events.Stream),
		zap.String("group", cfg.Events.Group),
		zap.String("consumer", cfg.Events.Consumer),
	)
	if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zap.L().Error("Subscriber stopped", zap.Error(err))
	}
	zap.L().Info("Ledger worker stopped")
}
