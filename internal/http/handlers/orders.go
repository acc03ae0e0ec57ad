package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type deliveryRequest struct {
	DeliveryType string `json:"tipo_entrega" binding:"required"`
}

// GET /api/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := h.orders(c).List(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/cart
func (h *Handlers) Cart(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.orders(c).Cart(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// POST /api/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.orders(c).Cancel(c.Request.Context(), rc.UserID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Orden cancelada"})
}

// PUT /api/orders/:id/delivery
func (h *Handlers) SetOrderDelivery(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req deliveryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.orders(c).SetDelivery(c.Request.Context(), rc.UserID, id, req.DeliveryType); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tipo de entrega actualizado"})
}

// GET /api/reservations/:id/passengers
func (h *Handlers) ReservationPassengers(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := h.orders(c).ReservationPassengers(c.Request.Context(), rc.UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
