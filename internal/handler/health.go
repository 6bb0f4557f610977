package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthHandler struct {
	pool *pgxpool.Pool
}

func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Health reports database connectivity and whether the pricing catalog
// holds any payment methods. An empty catalog is not an outage: the
// service answers, the simulator just has nothing to offer.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.pool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"catalog":  "unknown",
		})
		return
	}

	catalog := "ready"
	var hasMethods bool
	err := h.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM payment_methods WHERE enabled)").Scan(&hasMethods)
	if err != nil {
		catalog = "unavailable"
	} else if !hasMethods {
		catalog = "empty"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"catalog":  catalog,
	})
}
