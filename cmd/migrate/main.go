package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/pkg/config"
	"github.com/dancepractice/practice-api/pkg/database"
	"github.com/dancepractice/practice-api/pkg/logger"
)

func main() {
	target := flag.Int("to", 0, "schema version to migrate to; 0 means latest")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := database.Migrate(ctx, cfg.Database, int32(*target), logr); err != nil {
		logr.Fatal("migration failed", zap.Error(err), zap.String("database", cfg.Database.Name))
	}
}
