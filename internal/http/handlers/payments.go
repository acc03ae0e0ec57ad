package handlers

import (
	"net/http"

	"skyreserva/internal/forms"

	"github.com/gin-gonic/gin"
)

type startPaymentRequest struct {
	OrderID int64 `json:"orden_id" binding:"required"`
	forms.StartPayment
}

type startMultiPaymentRequest struct {
	OrderIDs []int64 `json:"ordenes_ids"`
	forms.StartPayment
}

type verifyRequest struct {
	Code string `json:"codigo"`
}

// POST /api/payments/start
func (h *Handlers) StartPayment(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req startPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := h.payments(c).Start(c.Request.Context(), rc, req.OrderID, req.StartPayment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/payments/verify
func (h *Handlers) VerifyPayment(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req verifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := h.payments(c).Verify(c.Request.Context(), rc, req.Code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/payments/multiple/start
func (h *Handlers) StartMultiPayment(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req startMultiPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := h.payments(c).StartMultiple(c.Request.Context(), rc, req.OrderIDs, req.StartPayment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/payments/multiple/verify
func (h *Handlers) VerifyMultiPayment(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req verifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := h.payments(c).VerifyMultiple(c.Request.Context(), rc, req.Code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
