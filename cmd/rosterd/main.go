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

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/handler"
	"github.com/noah-isme/sma-roster/internal/repository"
	"github.com/noah-isme/sma-roster/internal/server"
	"github.com/noah-isme/sma-roster/internal/service"
	"github.com/noah-isme/sma-roster/pkg/cache"
	"github.com/noah-isme/sma-roster/pkg/config"
	"github.com/noah-isme/sma-roster/pkg/database"
	"github.com/noah-isme/sma-roster/pkg/logger"
)

// @title SMA Student Roster API
// @version 1.0.0
// @description Student roster endpoint dispatching on the action parameter
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, student cache disabled", zap.Error(err))
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Students.CacheTTL, logr, redisClient != nil)
	students := service.NewStudentService(
		repository.NewStudentRepository(db),
		cacheSvc,
		metrics,
		validator.New(),
		logr,
		service.StudentServiceConfig{
			DefaultPageSize: cfg.Students.DefaultPageSize,
			MaxPageSize:     cfg.Students.MaxPageSize,
			CacheTTL:        cfg.Students.CacheTTL,
		},
	)

	router := server.NewRouter(cfg, server.Deps{
		Students: handler.NewStudentHandler(students, metrics, logr),
		Metrics:  handler.NewMetricsHandler(metrics, db),
		Recorder: metrics,
		Tokens:   service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration),
		Logger:   logr,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "auth", cfg.JWT.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
