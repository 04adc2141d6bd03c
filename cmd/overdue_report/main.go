package main

import (
	"context"
	"os"
	"time"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/config"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/database"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/jobs"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/notification"
)

// overdue_report runs a single overdue scan, for hosts that schedule it with
// system cron instead of the in-process scheduler.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := jobs.NewOverdueReporter(db, notification.NewLogNotifier(), nil).Run(ctx)
	if err != nil {
		logger.Error("overdue scan failed", "error", err)
		os.Exit(1)
	}
	logger.Info("overdue report completed", "overdue", res.Overdue, "notified", res.Notified, "failed", res.Failed)
	if res.Failed > 0 {
		os.Exit(2)
	}
}
