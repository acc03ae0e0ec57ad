package middleware

import (
	"context"
	"net/http"
	"strings"

	"skyreserva/internal/domain"

	"github.com/gin-gonic/gin"
)

const userKey = "auth_user"

// Authenticator resolves a bearer token to the signed-in traveler.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (domain.RequestContext, error)
}

// RequireAuth rejects requests without a valid bearer token for an open session.
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "token requerido")
			return
		}
		rc, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if domain.IsUnauthorized(err) {
				abortUnauthorized(c, err.Error())
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "error interno",
				"code":       "internal_error",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(userKey, rc)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}

// CurrentUser returns the traveler set by RequireAuth.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}
