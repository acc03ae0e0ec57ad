package handlers

import (
	"net/http"

	"skyreserva/internal/forms"

	"github.com/gin-gonic/gin"
)

// GET /api/cities
func (h *Handlers) Cities(c *gin.Context) {
	cities, err := h.flights(c).Cities(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GET /api/flights/search?origen=&destino=&fecha=&orden=
func (h *Handlers) SearchFlights(c *gin.Context) {
	var q forms.Search
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "parámetros de búsqueda no válidos", err.Error())
		return
	}
	res, err := h.flights(c).Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/flights/:id
func (h *Handlers) GetFlight(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	f, err := h.flights(c).Flight(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}
