package handler

import (
	"context"
	"net/http"
	"time"

	"purobeach/internal/infra"
	"purobeach/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports DB and Redis connectivity, the incident-webhook circuit
// breaker state and the depth of each dead letter queue, so the back-office
// dashboard can surface stuck background jobs. Never exposes credentials.
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		dlq := gin.H{}
		if redisStatus == "connected" {
			for _, q := range []string{worker.QueueIncidencias, worker.QueueAuditoria, worker.QueueEmail} {
				if n, err := worker.DLQLength(ctx, rdb, q); err == nil {
					dlq[q] = n
				}
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":          status == http.StatusOK,
			"db":          dbStatus,
			"redis":       redisStatus,
			"incidencias": cb.State().String(),
			"dlq":         dlq,
		})
	}
}
