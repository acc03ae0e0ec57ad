package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"skyreserva/internal/domain"
	"skyreserva/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "bad_request", "cuerpo vacío", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "payload no válido", err.Error())
		return false
	}
	return true
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "bad_request", name+" no válido", nil)
		return 0, false
	}
	return id, true
}

// currentUser returns the signed-in traveler. Routes using it sit behind RequireAuth.
func currentUser(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no autorizado", nil)
	}
	return rc, ok
}
