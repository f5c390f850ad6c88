package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/repository"
	"github.com/noah-isme/curriculum-api/internal/service"
	"github.com/noah-isme/curriculum-api/pkg/cache"
	"github.com/noah-isme/curriculum-api/pkg/config"
	"github.com/noah-isme/curriculum-api/pkg/database"
	"github.com/noah-isme/curriculum-api/pkg/logger"
	"github.com/noah-isme/curriculum-api/pkg/spreadsheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	file := flag.String("file", cfg.Import.File, "spreadsheet to import (.xlsx or .csv)")
	sheet := flag.String("sheet", cfg.Import.Sheet, "worksheet name; defaults to the first sheet")
	flag.Parse()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := spreadsheet.Read(*file, *sheet)
	if err != nil {
		logr.Error("failed to read spreadsheet", zap.String("file", *file), zap.Error(err))
		os.Exit(1)
	}
	logr.Info("spreadsheet loaded", zap.String("file", *file), zap.Int("rows", len(data.Rows)), zap.Strings("columns", data.Headers))

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Error("failed to connect database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// The API may be serving a cached list; imported rows must invalidate it.
	var listCache service.CurriculumCache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Error("failed to connect redis", zap.Error(err))
			db.Close()
			os.Exit(1)
		}
		defer redisClient.Close()
		listCache = repository.NewCurriculumCacheRepository(redisClient, logr)
	}

	curriculumSvc := service.NewCurriculumService(repository.NewCurriculumRepository(db), listCache, cfg.Cache.TTL, validator.New(), logr, nil)
	importSvc := service.NewImportService(curriculumSvc, logr, nil)

	summary, err := importSvc.Import(ctx, data)
	if err != nil {
		logr.Error("import aborted", zap.Error(err))
		db.Close()
		os.Exit(1)
	}

	for _, rowErr := range summary.Errors {
		logr.Warn("row skipped", zap.Int("row", rowErr.Row), zap.String("reason", rowErr.Reason))
	}
	logr.Info("import complete",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)
}
