// Package server assembles the HTTP engine from the feature modules.
package server

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/cache"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/health"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/metrics"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/middleware"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/auth"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/borrow"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/equipment"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/penalty"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/report"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/modules/user"
	jwtsvc "github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/jwt"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

type Options struct {
	DB      *gorm.DB
	SQLDB   *sql.DB
	Redis   *redis.Client
	JWT     *jwtsvc.Service
	Metrics *metrics.Metrics

	PenaltyRates     borrow.PenaltyRates
	CORSOrigins      []string
	ReportCacheTTL   time.Duration
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.Metrics(opts.Metrics))
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	health.NewHandler(opts.SQLDB, opts.Redis).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	limiter := cache.NewLoginLimiter(opts.Redis, opts.LoginMaxAttempts, opts.LoginWindow)
	reportCache := cache.NewJSONCache(opts.Redis, "sportequip:report:", opts.ReportCacheTTL)

	authHandler := auth.NewHandler(auth.NewService(repository.NewUserRepository(opts.DB), opts.JWT, limiter))
	reportService := report.NewService(opts.DB, reportCache)

	borrowOpts := []borrow.Option{
		borrow.WithMetrics(opts.Metrics),
		borrow.WithInvalidator(reportService),
	}
	if !opts.PenaltyRates.IsZero() {
		borrowOpts = append(borrowOpts, borrow.WithPenaltyRates(opts.PenaltyRates))
	}
	borrowHandler := borrow.NewHandler(borrow.NewService(opts.DB, borrowOpts...))
	penaltyHandler := penalty.NewHandler(penalty.NewService(opts.DB, opts.Metrics, penalty.WithInvalidator(reportService)))
	equipmentHandler := equipment.NewHandler(equipment.NewService(opts.DB))
	userHandler := user.NewHandler(user.NewService(opts.DB))
	reportHandler := report.NewHandler(reportService)

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(opts.JWT))
		{
			borrowHandler.RegisterRoutes(protected)
			penaltyHandler.RegisterRoutes(protected)
			equipmentHandler.RegisterRoutes(protected)
			userHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
		}
	}

	return r
}
