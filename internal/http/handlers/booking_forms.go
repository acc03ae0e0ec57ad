package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"skyreserva/internal/booking"
	"skyreserva/internal/domain"

	"github.com/gin-gonic/gin"
)

type openFormRequest struct {
	FlightID int64 `json:"flight_id" binding:"required"`
}

type categoryRequest struct {
	FlightCategoryID int64 `json:"vlcat_id" binding:"required"`
}

type seatsRequest struct {
	Count int `json:"cantidad" binding:"required"`
}

// POST /api/booking-forms
func (h *Handlers) OpenBookingForm(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req openFormRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	view, err := h.bookings(c).Open(c.Request.Context(), rc.UserID, req.FlightID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /api/booking-forms/:id
func (h *Handlers) GetBookingForm(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.bookings(c).State(rc.UserID, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/booking-forms/:id/category
func (h *Handlers) SelectBookingCategory(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req categoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	view, err := h.bookings(c).SelectCategory(rc.UserID, c.Param("id"), req.FlightCategoryID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/booking-forms/:id/seats
func (h *Handlers) SetBookingSeats(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var req seatsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	view, err := h.bookings(c).SetSeats(rc.UserID, c.Param("id"), req.Count)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/booking-forms/:id/passengers/:index (1-based)
func (h *Handlers) EditBookingPassenger(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		respondError(c, http.StatusBadRequest, "bad_request", "index no válido", nil)
		return
	}
	var edit booking.PassengerEdit
	if !BindJSONOrError(c, &edit) {
		return
	}
	view, err := h.bookings(c).EditPassenger(rc.UserID, c.Param("id"), index, edit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/booking-forms/:id/confirm
func (h *Handlers) ConfirmBooking(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	receipt, err := h.bookings(c).Confirm(c.Request.Context(), rc.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrDuplicateSubmission) {
			c.JSON(http.StatusAccepted, gin.H{"status": "procesando", "message": err.Error()})
			return
		}
		var step *booking.StepError
		if errors.As(err, &step) {
			respondError(c, upstreamStatus(domain.UpstreamStatus(err)), "upstream_error", stepMessage(step), gin.H{
				"step":      step.Step,
				"passenger": step.Passenger,
				"orden_id":  receipt.OrderID,
				"res_id":    receipt.ReservationID,
			})
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reserva creada exitosamente", "reserva": receipt})
}

// stepMessage is the remote message of the failed call, or its fallback.
func stepMessage(step *booking.StepError) string {
	if step.Err != nil {
		return step.Err.Error()
	}
	return step.Error()
}

// DELETE /api/booking-forms/:id
func (h *Handlers) CloseBookingForm(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.bookings(c).Close(rc.UserID, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
