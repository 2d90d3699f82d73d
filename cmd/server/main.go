package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/services"
	"github.com/DavLiendoProgramming/blog-api/internal/config"
	"github.com/DavLiendoProgramming/blog-api/internal/delivery/handler"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"github.com/DavLiendoProgramming/blog-api/internal/infrastructure"
	"github.com/DavLiendoProgramming/blog-api/internal/infrastructure/db/postgres"
	messaging "github.com/DavLiendoProgramming/blog-api/libs/go/messaging/nats"
	"github.com/nats-io/nats.go"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := infrastructure.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.Open(cfg.Database.Driver, cfg.Database.DSN, gormLogLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisService := infrastructure.NewRedisService(infrastructure.NewRedisClient(ctx, cfg.Redis, logger))
	defer redisService.Close()

	var denylist repositories.TokenDenylist = postgres.NewRevokedTokenRepository(db)
	if redisService.Enabled() {
		denylist = redisService
	}

	var nc *nats.Conn
	if cfg.NatsURL != "" {
		nc, err = messaging.Connect(cfg.NatsURL, "blog-api", logger)
		if err != nil {
			logger.Warn("nats unavailable, events disabled", "error", err)
			nc = nil
		}
	}
	publisher := messaging.NewPublisher(nc)
	defer publisher.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	idempotency := services.NewIdempotencyStore(postgres.NewIdempotencyRepository(db), []byte(cfg.IdempotencySecret))

	tokens := infrastructure.NewJWTService([]byte(cfg.JWT.Secret), denylist,
		infrastructure.WithIssuer(cfg.JWT.Issuer),
		infrastructure.WithTTL(cfg.JWT.TTL),
	)
	mailer := infrastructure.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom, logger)

	userService := services.NewUserService(userRepo, idempotency, tokens, redisService, mailer, publisher, cfg.ProfileCacheTTL, logger)
	postService := services.NewPostService(postRepo, userRepo, idempotency, publisher, logger)

	h := handler.NewHandler(
		userService,
		userService,
		postService,
		services.NewSessionGuard(tokens, userRepo),
		infrastructure.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
	)
	e := handler.NewServer(h, handler.ServerOptions{RequestTimeout: cfg.RequestTimeout}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting blog-api", "port", cfg.Port, "env", cfg.Env, "db", cfg.Database.Driver, "redis", redisService.Enabled())
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "info", "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
