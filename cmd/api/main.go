package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/pressroom/pkg/app"
	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/cache"
	"github.com/ghuser/pressroom/pkg/config"
	"github.com/ghuser/pressroom/pkg/database"
	"github.com/ghuser/pressroom/pkg/events"
	"github.com/ghuser/pressroom/pkg/httpx"
	"github.com/ghuser/pressroom/pkg/logger"
	"github.com/ghuser/pressroom/pkg/telemetry"
	commentsvcs "github.com/ghuser/pressroom/services/comment/application/services"
	"github.com/ghuser/pressroom/services/gateway"
	postsvcs "github.com/ghuser/pressroom/services/post/application/services"
	usersvcs "github.com/ghuser/pressroom/services/user/application/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional — log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer db.Close()
	log.Info("database pool connected")

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	bus := events.NewBus(log, cfg.SessionSendBuffer)
	defer bus.Close()

	tokens := auth.NewTokens([]byte(cfg.JWTSecret), cfg.TokenTTL)

	application := &app.Application{
		Config: cfg,
		Db:     db,
		Logger: log,
		Bus:    bus,
		Redis:  redisClient,
		Tokens: tokens,
	}

	posts := postsvcs.New(application)
	users := usersvcs.New(application)
	comments := commentsvcs.New(application)

	gw, err := gateway.New(log, bus, tokens, posts.Post, users.User, comments.Comment)
	if err != nil {
		log.Error("failed to build gateway", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
		auth.Middleware(tokens, log),
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Database: db,
		Redis:    redisClient,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	gw.Routes(r)

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	// Streaming sessions first, then the listener, then the bus (deferred).
	gw.Sessions().CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
