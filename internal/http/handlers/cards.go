package handlers

import (
	"net/http"

	"skyreserva/internal/forms"

	"github.com/gin-gonic/gin"
)

type cardActiveRequest struct {
	Active *bool `json:"activa" binding:"required"`
}

// GET /api/cards
func (h *Handlers) ListCards(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	cards, err := h.cards(c).List(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GET /api/cards/active lists the cards a payment may use.
func (h *Handlers) ActiveCards(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	cards, err := h.cards(c).Active(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	body := gin.H{"tarjetas": cards}
	if len(cards) == 0 {
		body["message"] = forms.MsgNoActiveCards
	}
	c.JSON(http.StatusOK, body)
}

// POST /api/cards
func (h *Handlers) AddCard(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var form forms.Card
	if !BindJSONOrError(c, &form) {
		return
	}
	card, err := h.cards(c).Add(c.Request.Context(), rc.UserID, form)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// PUT /api/cards/:id/active
func (h *Handlers) SetCardActive(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req cardActiveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.cards(c).SetActive(c.Request.Context(), rc.UserID, id, *req.Active); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tarjeta actualizada"})
}

// DELETE /api/cards/:id
func (h *Handlers) DeleteCard(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.cards(c).Delete(c.Request.Context(), rc.UserID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
