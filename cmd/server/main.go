package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	prom "github.com/prometheus/client_golang/prometheus"

	httpadapter "resume-studio/internal/adapter/http"
	repo "resume-studio/internal/adapter/repository"
	"resume-studio/internal/config"
	"resume-studio/internal/infrastructure/migration"
	"resume-studio/internal/metrics"
	"resume-studio/internal/usecase"
	"resume-studio/pkg/ai"
	infra "resume-studio/pkg/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := sessionStore(ctx, cfg, logger)

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	aiClient := ai.NewClient(cfg.AIServiceURL, cfg.AITimeout, cfg.DefaultLanguage, logger)
	renderer := infra.NewChromedpRenderer(cfg.ChromePath)
	studio := usecase.NewStudio(store, aiClient, renderer, usecase.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		RenderAttempts:  cfg.RenderAttempts,
		Metrics:         recorder,
		Logger:          logger,
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.HTTPHandler(reg)))
	httpadapter.NewHandler(studio, logger).Register(app)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
	logger.Info("server stopped")
}

// sessionStore uses Postgres when configured and reachable. Otherwise
// sessions live in memory and are lost on restart.
func sessionStore(ctx context.Context, cfg config.Config, logger *slog.Logger) usecase.SessionStore {
	if cfg.DatabaseURL == "" {
		logger.Info("no DATABASE_URL set, keeping sessions in memory")
		return repo.NewMemoryRepo()
	}
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("sessions DB not available, keeping sessions in memory", "error", err)
		return repo.NewMemoryRepo()
	}
	if err := migration.RunMigrations(ctx, pool); err != nil {
		logger.Warn("migrations failed, keeping sessions in memory", "error", err)
		pool.Close()
		return repo.NewMemoryRepo()
	}
	return repo.NewSessionsRepo(pool)
}
