package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/engine/infra/postgres"
)

type healthStatus struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

// registerHealth mounts GET /health. The database is load-bearing, so its
// failure makes the endpoint report 503; the cache is advisory and only
// degrades the reported status.
func registerHealth(r *gin.Engine, store *postgres.Store, redisCache *cache.RedisCache) {
	r.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		status := healthStatus{Status: "ok", Postgres: "up", Redis: "up"}
		code := http.StatusOK
		if err := store.HealthCheck(ctx); err != nil {
			status.Status = "unavailable"
			status.Postgres = "down"
			code = http.StatusServiceUnavailable
		}
		if err := redisCache.HealthCheck(ctx); err != nil {
			status.Redis = "down"
			if status.Status == "ok" {
				status.Status = "degraded"
			}
		}
		c.JSON(code, status)
	})
}
