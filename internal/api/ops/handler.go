// Package ops exposes the operational HTTP surface: liveness, readiness and
// Prometheus metrics.
package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/internal/repository"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// DatabaseChecker reports database health.
type DatabaseChecker interface {
	Health() error
}

// RedisChecker reports Redis health.
type RedisChecker interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Handler handles operational HTTP requests.
type Handler struct {
	db      DatabaseChecker
	redis   RedisChecker
	metrics *config.MetricsConfig
	log     *logger.Logger
}

// NewHandler creates a new operational handler.
func NewHandler(db *repository.DB, redisClient *redis.Client, metricsCfg *config.MetricsConfig, log *logger.Logger) *Handler {
	return &Handler{
		db:      db,
		redis:   redisClient,
		metrics: metricsCfg,
		log:     log,
	}
}

// NewHandlerWithInterfaces creates a new operational handler with interface
// dependencies (useful for testing).
func NewHandlerWithInterfaces(db DatabaseChecker, redisClient RedisChecker, metricsCfg *config.MetricsConfig, log *logger.Logger) *Handler {
	return &Handler{
		db:      db,
		redis:   redisClient,
		metrics: metricsCfg,
		log:     log,
	}
}

// Router builds the gin engine with all operational routes registered.
func (h *Handler) Router(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)

	if h.metrics == nil || h.metrics.Enabled {
		path := "/metrics"
		if h.metrics != nil && h.metrics.Path != "" {
			path = h.metrics.Path
		}
		router.GET(path, gin.WrapH(promhttp.Handler()))
	}

	return router
}

// Liveness reports that the process is up.
// GET /healthz.
func (h *Handler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness reports whether the service can reach its backing stores.
// GET /readyz.
func (h *Handler) Readiness(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.Health(); err != nil {
		h.log.Warn().Err(err).Msg("Database health check failed")
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Warn().Err(err).Msg("Redis health check failed")
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"checks": checks})
}
