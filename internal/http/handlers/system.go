package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything Health can ping (the MySQL pool).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports the service as up and whether the session database answers.
func (h *Handlers) Health(c *gin.Context) {
	dbStatus := "sin configurar"
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "sin conexión"})
			return
		}
		dbStatus = "ok"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "SkyReserva en línea", "database": dbStatus})
}
