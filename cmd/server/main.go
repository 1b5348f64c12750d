// cmd/server is the application entry point: it loads configuration, connects
// the backing stores, wires the layers, and runs the HTTP server until a
// shutdown signal arrives.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventhub/event-server/internal/api"
	"github.com/eventhub/event-server/internal/core/ports"
	"github.com/eventhub/event-server/internal/core/service"
	mongodb "github.com/eventhub/event-server/internal/infrastructure/db/mongo"
	redisdb "github.com/eventhub/event-server/internal/infrastructure/db/redis"
	"github.com/eventhub/event-server/internal/infrastructure/email"
	"github.com/eventhub/event-server/internal/notify"
	"github.com/eventhub/event-server/internal/pkg/config"
	"github.com/eventhub/event-server/internal/realtime"
	"github.com/eventhub/event-server/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	eventRepo := mongodb.NewEventRepository(db)

	// --- Outbound mail ---
	var mailer ports.Mailer = email.NopMailer{}
	if cfg.Email.APIKey != "" {
		mailer = email.NewResendMailer(cfg.Email.APIKey, cfg.Email.From, log)
	} else {
		log.Warn().Msg("no mail API key configured, welcome emails disabled")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := service.NewUserService(userRepo, mailer, log)
	events := service.NewEventService(eventRepo, log)

	// --- Realtime fan-out ---
	registry := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(registry, log)
	dedup := redisdb.NewNotificationDeduper(rdb)
	dispatcher := notify.NewDispatcher(cfg.NotifyWorkers, broadcaster, dedup, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Users:    users,
		Events:   events,
		Tokens:   tokens,
		Notifier: dispatcher,
		Registry: registry,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
