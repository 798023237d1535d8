package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/dancepractice/practice-api/api/swagger"
	"github.com/dancepractice/practice-api/internal/handler"
	"github.com/dancepractice/practice-api/internal/repository"
	"github.com/dancepractice/practice-api/internal/router"
	"github.com/dancepractice/practice-api/internal/service"
	"github.com/dancepractice/practice-api/internal/validation"
	"github.com/dancepractice/practice-api/pkg/cache"
	"github.com/dancepractice/practice-api/pkg/config"
	"github.com/dancepractice/practice-api/pkg/database"
	"github.com/dancepractice/practice-api/pkg/export"
	"github.com/dancepractice/practice-api/pkg/logger"
)

// @title Dance Practice API
// @version 1.0.0
// @description Scheduling backend for partner dance practice sessions
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, cfg.Database, 0, logr); err != nil {
			logr.Fatal("auto migration failed", zap.Error(err))
		}
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	// A nil *redis.Client stored in the interface would not compare equal to nil.
	var redisClient redis.UniversalClient
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validation.New()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	noteRepo := repository.NewSessionNoteRepository(db)
	preferenceRepo := repository.NewSchedulePreferenceRepository(db)
	reportRepo := repository.NewAbuseReportRepository(db)

	userSvc := service.NewUserService(userRepo, locationRepo, cacheSvc, validate, metrics, logr)
	locationSvc := service.NewLocationService(locationRepo, cacheSvc, validate, metrics, logr)
	sessionSvc := service.NewSessionService(sessionRepo, userRepo, locationRepo, cacheSvc, validate, metrics, logr)
	noteSvc := service.NewSessionNoteService(noteRepo, sessionRepo, userRepo, validate, metrics, logr)
	preferenceSvc := service.NewSchedulePreferenceService(preferenceRepo, userRepo, locationRepo, validate, metrics, logr)
	reportSvc := service.NewAbuseReportService(reportRepo, userRepo, sessionRepo, export.NewCSVExporter(), export.NewPDFExporter(), validate, metrics, logr)

	engine := router.New(router.Config{
		APIPrefix:           cfg.APIPrefix,
		AllowedOrigins:      cfg.CORS.AllowedOrigins,
		MetricsPath:         cfg.Metrics.Path,
		EnableMetrics:       cfg.Metrics.Enabled,
		EnableDocs:          cfg.Docs.Enabled,
		Logger:              logr,
		Recorder:            metrics,
		Users:               handler.NewUserHandler(userSvc),
		Locations:           handler.NewLocationHandler(locationSvc),
		Sessions:            handler.NewSessionHandler(sessionSvc),
		SessionNotes:        handler.NewSessionNoteHandler(noteSvc),
		SchedulePreferences: handler.NewSchedulePreferenceHandler(preferenceSvc),
		AbuseReports:        handler.NewAbuseReportHandler(reportSvc),
		System:              handler.NewMetricsHandler(metrics, db),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logr.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env, "cache", cacheSvc.Enabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
	logr.Info("server stopped")
}
