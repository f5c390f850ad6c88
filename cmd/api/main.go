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
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/curriculum-api/api/swagger"
	"github.com/noah-isme/curriculum-api/internal/handler"
	internalmiddleware "github.com/noah-isme/curriculum-api/internal/middleware"
	"github.com/noah-isme/curriculum-api/internal/repository"
	"github.com/noah-isme/curriculum-api/internal/service"
	"github.com/noah-isme/curriculum-api/pkg/cache"
	"github.com/noah-isme/curriculum-api/pkg/config"
	"github.com/noah-isme/curriculum-api/pkg/database"
	"github.com/noah-isme/curriculum-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/curriculum-api/pkg/middleware/cors"
	recoverymiddleware "github.com/noah-isme/curriculum-api/pkg/middleware/recovery"
	reqidmiddleware "github.com/noah-isme/curriculum-api/pkg/middleware/requestid"
)

// @title Curriculum API
// @version 1.0.0
// @description Session-authenticated curriculum management
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var (
		sessions  service.SessionRepository = repository.NewMemorySessionRepository()
		listCache service.CurriculumCache
	)
	if cfg.Session.Store == config.SessionStoreRedis || cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisClient.Close()

		if cfg.Session.Store == config.SessionStoreRedis {
			sessions = repository.NewRedisSessionRepository(redisClient)
		}
		if cfg.Cache.Enabled {
			listCache = repository.NewCurriculumCacheRepository(redisClient, logr)
		}
	}
	if cfg.Session.Store == config.SessionStoreMemory {
		logr.Warn("using in-memory session store; sessions are lost on restart")
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	userRepo := repository.NewUserRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)

	authSvc := service.NewAuthService(userRepo, sessions, validate, logr, metrics, service.AuthConfig{
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
		Audit:         cfg.Audit.Enabled,
	})
	curriculumSvc := service.NewCurriculumService(curriculumRepo, listCache, cfg.Cache.TTL, validate, logr, metrics)
	exportSvc := service.NewExportService(curriculumSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(recoverymiddleware.Middleware(logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	deps := handler.RouterDeps{
		APIPrefix:  cfg.APIPrefix,
		CookieName: cfg.Session.CookieName,
		Auth:       authSvc,
		Session: handler.NewAuthHandler(authSvc, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			TTL:    cfg.Session.TTL,
		}),
		Curriculum:    handler.NewCurriculumHandler(curriculumSvc, exportSvc),
		Metrics:       handler.NewMetricsHandler(metrics),
		Guard:         internalmiddleware.NewGuard(metrics),
		Logger:        logr,
		ExposeMetrics: cfg.Metrics.Enabled,
		ExposeDocs:    cfg.Env != config.EnvProduction,
	}
	if cfg.Audit.Enabled {
		deps.Auditor = userRepo
	}
	handler.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
