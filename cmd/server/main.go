// @title Essay Coach API
// @version 1.0
// @description Backend API for the essay writing coach
// @contact.name API Support
// @contact.email support@example.com
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"essaycoach-be/config"
	_ "essaycoach-be/docs"
	"essaycoach-be/internal/cache"
	"essaycoach-be/internal/database"
	"essaycoach-be/internal/handlers"
	"essaycoach-be/internal/logger"
	"essaycoach-be/internal/metrics"
	"essaycoach-be/internal/repository"
	"essaycoach-be/internal/router"
	"essaycoach-be/internal/services"
	"essaycoach-be/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg.OTel)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
	}()
	logger.Setup(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	mongodb, err := database.NewMongoDB(ctx, cfg.MongoDBURI, cfg.MongoDBDatabase)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(); err != nil {
			slog.Warn("mongodb disconnect failed", "error", err)
		}
	}()

	deps := map[string]handlers.Pinger{"mongodb": mongodb}

	var (
		records repository.RecordStore
		drafts  repository.DraftStore
	)
	switch cfg.RecordStore {
	case config.StoreSQLite:
		store, err := repository.OpenSQLiteRecordStore(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite record store: %w", err)
		}
		defer store.Close()
		records, drafts = store, store
		deps["sqlite"] = store
	case config.StoreMemory:
		store := repository.NewMemoryRecordStore()
		records, drafts = store, store
	default:
		records = repository.NewMongoRecordStore(mongodb.Database)
		drafts = repository.NewMongoDraftStore(mongodb.Database)
	}
	slog.Info("record store selected", "backend", cfg.RecordStore)

	var statsCache cache.StatsCache
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			// the cache only backs the rollup fallback
			slog.Warn("redis unavailable, rollup cache disabled", "error", err)
		} else {
			defer client.Close()
			redisCache := cache.NewRedisStatsCache(client, cfg.StatsCacheTTL)
			statsCache = redisCache
			deps["redis"] = redisCache
		}
	}

	m := metrics.New()

	userRepo := repository.NewUserRepository(mongodb.Database)
	postRepo := repository.NewPostRepository(mongodb.Database)
	postStatsRepo := repository.NewPostStatisticsRepository(mongodb.Database)

	analysis := services.NewAnalysisService(cfg.Groq, cfg.Analysis, m)
	statsService := services.NewStatisticsService(services.StatisticsServiceConfig{
		Records:     records,
		Drafts:      drafts,
		Cache:       statsCache,
		Analysis:    analysis,
		Metrics:     m,
		Concurrency: cfg.Analysis.Concurrency,
	})
	essayService := services.NewEssayService(drafts, records, postRepo, statsService)
	progressService := services.NewProgressService(postRepo, postStatsRepo)

	services.StartDraftSweeper(ctx, cfg.SweepInterval, cfg.DraftTTL, records, drafts, m)

	engine := router.SetupRoutes(router.RouterConfig{
		Config:     cfg,
		Auth:       handlers.NewAuthHandler(cfg, userRepo),
		Essay:      handlers.NewEssayHandler(essayService, userRepo),
		Analysis:   handlers.NewAnalysisHandler(analysis, statsService),
		Statistics: handlers.NewStatisticsHandler(statsService, progressService),
		Health:     handlers.NewHealthHandler(deps),
		Metrics:    m.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "database", cfg.MongoDBDatabase, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
