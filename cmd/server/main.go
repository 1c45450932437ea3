package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rishabhkalra96/invoice-dashboard/config"
	"github.com/rishabhkalra96/invoice-dashboard/internal/health"
	"github.com/rishabhkalra96/invoice-dashboard/internal/infrastructure/postgres"
	ctxlog "github.com/rishabhkalra96/invoice-dashboard/internal/log"
	"github.com/rishabhkalra96/invoice-dashboard/internal/metrics"
	httptransport "github.com/rishabhkalra96/invoice-dashboard/internal/transport/http"
	"github.com/rishabhkalra96/invoice-dashboard/internal/transport/http/handler"
	"github.com/rishabhkalra96/invoice-dashboard/internal/usecase"
	"github.com/rishabhkalra96/invoice-dashboard/internal/viewcache"
	"github.com/robfig/cron/v3"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	// View cache: shared Redis store when configured, in-process otherwise.
	var cache viewcache.Cache
	var cachePinger health.Pinger
	janitor := cron.New()
	if cfg.RedisAddr != "" {
		store := viewcache.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.ViewCacheTTL)
		cache = store
		cachePinger = store
	} else {
		store := viewcache.NewMemory(cfg.ViewCacheTTL)
		if _, err := janitor.AddFunc("@every 1m", store.Sweep); err != nil {
			stop()
			log.Fatalf("cache janitor: %v", err)
		}
		cache = store
		cachePinger = store
	}
	janitor.Start()
	defer janitor.Stop()

	// Invoices
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceUsecase := usecase.NewInvoiceUsecase(invoiceRepo, customerRepo, cache, logger)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUsecase, cache, handler.Templates(), logger)

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, usecase.AuthConfig{
		SessionSecret: []byte(cfg.SessionSecret),
		SessionTTL:    cfg.SessionTTL,
	})
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(map[string]health.Pinger{
		"postgres":  pool,
		"viewcache": cachePinger,
	}, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, invoiceHandler, authHandler, []byte(cfg.SessionSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
