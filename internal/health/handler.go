package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/response"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	redis   *redis.Client
	timeout time.Duration
}

// NewHandler builds the probes. rdb may be nil when Redis is not configured.
func NewHandler(db Pinger, rdb *redis.Client) *Handler {
	return &Handler{db: db, redis: rdb, timeout: 3 * time.Second}
}

type Status struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "University Sporting Equipment API is running."})
}

// Health is the liveness probe; it never touches dependencies.
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, Status{Status: "ok", Timestamp: time.Now().UTC()})
}

// Ready pings the database and, when configured, Redis.
func (h *Handler) Ready(c *gin.Context) {
	status := Status{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "error"
		status.Checks["database"] = "failed: " + err.Error()
	} else {
		status.Checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status.Status = "error"
			status.Checks["redis"] = "failed: " + err.Error()
		} else {
			status.Checks["redis"] = "ok"
		}
	}

	if status.Status == "error" {
		response.ErrorWithDetails(c, http.StatusServiceUnavailable, "NOT_READY", "Service not ready", status.Checks)
		return
	}
	response.Success(c, http.StatusOK, status)
}
