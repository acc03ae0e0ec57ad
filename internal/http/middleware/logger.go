package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one access line per request. Query strings are left out: they
// can carry search input the traveler typed.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		var userID int64
		if rc, ok := CurrentUser(c); ok {
			userID = rc.UserID
		}
		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f user_id=%d ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			userID,
			c.ClientIP(),
		)
	}
}
