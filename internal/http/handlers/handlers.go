package handlers

import (
	"skyreserva/internal/http/middleware"
	"skyreserva/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers holds the services behind the HTTP API. Each request works on a copy
// of a service carrying its request id.
type Handlers struct {
	DB       Pinger
	Sessions services.SessionService
	Flights  services.FlightService
	Bookings services.BookingService
	Orders   services.OrderService
	Cards    services.CardService
	Payments services.PaymentService
	Docs     services.DocsService
}

func (h *Handlers) sessions(c *gin.Context) services.SessionService {
	s := h.Sessions
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handlers) flights(c *gin.Context) services.FlightService {
	s := h.Flights
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handlers) bookings(c *gin.Context) services.BookingService {
	s := h.Bookings
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handlers) orders(c *gin.Context) services.OrderService {
	s := h.Orders
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handlers) cards(c *gin.Context) services.CardService {
	s := h.Cards
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handlers) payments(c *gin.Context) services.PaymentService {
	s := h.Payments
	s.RequestID = middleware.GetRequestID(c)
	s.Orders.RequestID = s.RequestID
	s.Cards.RequestID = s.RequestID
	return s
}

func (h *Handlers) docs(c *gin.Context) services.DocsService {
	s := h.Docs
	s.RequestID = middleware.GetRequestID(c)
	return s
}
