package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/cache"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/config"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/database"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/jobs"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/metrics"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/borrow"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/notification"
	jwtsvc "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/jwt"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/scheduler"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		// Redis only backs the login throttle and report cache.
		logger.Warn("redis unavailable, continuing without cache", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New()
	lost, damaged, late := cfg.PenaltyAmounts()

	router := server.NewRouter(server.Options{
		DB:      db,
		SQLDB:   sqlDB,
		Redis:   rdb,
		JWT:     jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Metrics: m,
		PenaltyRates: borrow.PenaltyRates{
			Lost:    lost,
			Damaged: damaged,
			Late:    late,
		},
		CORSOrigins:      cfg.CORSAllowedOrigins,
		ReportCacheTTL:   cfg.ReportCacheTTL,
		LoginMaxAttempts: cfg.LoginMaxAttempts,
		LoginWindow:      cfg.LoginWindow,
	})

	if cfg.SchedulerEnabled {
		reporter := jobs.NewOverdueReporter(db, notification.NewLogNotifier(), m)
		sched, err := scheduler.New(reporter, cfg.OverdueScanSpec)
		if err != nil {
			logger.Error("failed to configure scheduler", "error", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
