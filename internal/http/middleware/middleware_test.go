package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"skyreserva/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	rc  domain.RequestContext
	err error
	got string
}

func (s *stubAuth) Authenticate(ctx context.Context, token string) (domain.RequestContext, error) {
	s.got = token
	return s.rc, s.err
}

func newEngine(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), CORS(nil))
	r.GET("/me", RequireAuth(a), func(c *gin.Context) {
		rc, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": rc.UserID, "request_id": GetRequestID(c)})
	})
	return r
}

func TestRequestIDGeneratedOrPropagated(t *testing.T) {
	r := newEngine(&stubAuth{rc: domain.RequestContext{UserID: 1}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRequireAuth(t *testing.T) {
	a := &stubAuth{rc: domain.RequestContext{UserID: 7, SessionID: "s"}}
	r := newEngine(a)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", a.got)
	assert.Contains(t, w.Body.String(), `"user_id":7`)

	a.err = domain.UnauthorizedError{Msg: "sesión expirada"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "sesión expirada")
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(&stubAuth{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
