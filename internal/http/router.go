package api

import (
	"log"
	stdhttp "net/http"

	intconfig "skyreserva/internal/config"
	h "skyreserva/internal/http/handlers"
	"skyreserva/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", hs.Login)
		auth.POST("/register", hs.Register)
		auth.POST("/refresh", hs.Refresh)

		// Catalogue
		api.GET("/cities", hs.Cities)
		api.GET("/flights/search", hs.SearchFlights)
		api.GET("/flights/:id", hs.GetFlight)

		private := api.Group("")
		private.Use(middleware.RequireAuth(&hs.Sessions))

		private.POST("/auth/logout", hs.Logout)
		private.GET("/me", hs.Me)

		// Booking forms
		forms := private.Group("/booking-forms")
		forms.POST("", hs.OpenBookingForm)
		forms.GET("/:id", hs.GetBookingForm)
		forms.PUT("/:id/category", hs.SelectBookingCategory)
		forms.PUT("/:id/seats", hs.SetBookingSeats)
		forms.PUT("/:id/passengers/:index", hs.EditBookingPassenger)
		forms.POST("/:id/confirm", hs.ConfirmBooking)
		forms.DELETE("/:id", hs.CloseBookingForm)

		// Orders
		orders := private.Group("/orders")
		orders.GET("", hs.ListOrders)
		orders.GET("/cart", hs.Cart)
		orders.POST("/:id/cancel", hs.CancelOrder)
		orders.PUT("/:id/delivery", hs.SetOrderDelivery)
		private.GET("/reservations/:id/passengers", hs.ReservationPassengers)

		// Cards
		cards := private.Group("/cards")
		cards.GET("", hs.ListCards)
		cards.GET("/active", hs.ActiveCards)
		cards.POST("", hs.AddCard)
		cards.PUT("/:id/active", hs.SetCardActive)
		cards.DELETE("/:id", hs.DeleteCard)

		// Payments
		payments := private.Group("/payments")
		payments.POST("/start", hs.StartPayment)
		payments.POST("/verify", hs.VerifyPayment)
		payments.POST("/multiple/start", hs.StartMultiPayment)
		payments.POST("/multiple/verify", hs.VerifyMultiPayment)

		// Tickets & invoices
		private.GET("/tickets", hs.ListTickets)
		private.GET("/tickets/:id/pdf", hs.TicketPDF)
		private.GET("/invoices", hs.ListInvoices)
		private.GET("/invoices/:number/pdf", hs.InvoicePDF)
	}

	return r
}
