package handlers

import (
	"net/http"

	"skyreserva/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.sessions(c).Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.sessions(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// POST /api/auth/refresh
func (h *Handlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.sessions(c).Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.sessions(c).Logout(c.Request.Context(), rc.SessionID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/me
func (h *Handlers) Me(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.User{ID: rc.UserID, Name: rc.Name, Email: rc.Email})
}
