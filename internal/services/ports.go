package services

import (
	"context"
	"time"

	"skyreserva/internal/apiclient"
	"skyreserva/internal/booking"
	"skyreserva/internal/domain/models"
)

// The interfaces below are the slices of *apiclient.Client each service needs.

type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
}

type FlightAPI interface {
	Cities(ctx context.Context) ([]models.City, error)
	Flight(ctx context.Context, id int64) (models.Flight, error)
	FlightsByFare(ctx context.Context, q apiclient.FlightQuery) ([]models.Flight, error)
	FlightsBySchedule(ctx context.Context, q apiclient.FlightQuery) ([]models.Flight, error)
}

type OrderAPI interface {
	booking.Backend
	OrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	Order(ctx context.Context, id int64) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
	UpdateOrderDelivery(ctx context.Context, id int64, deliveryType string) error
	PassengersByReservation(ctx context.Context, reservationID int64) ([]models.Passenger, error)
}

type CardAPI interface {
	CardsByUser(ctx context.Context, userID int64) ([]models.Card, error)
	AddCard(ctx context.Context, req models.AddCardRequest) (models.Card, error)
	UpdateCard(ctx context.Context, id int64, req models.UpdateCardRequest) error
	DeleteCard(ctx context.Context, id int64) error
}

type PaymentAPI interface {
	StartPayment(ctx context.Context, req models.StartPaymentRequest) (models.StartPaymentResponse, error)
	VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) (models.VerifyPaymentResponse, error)
	StartMultiPayment(ctx context.Context, req models.StartMultiPaymentRequest) (models.StartMultiPaymentResponse, error)
	VerifyMultiPayment(ctx context.Context, req models.VerifyMultiPaymentRequest) (models.VerifyMultiPaymentResponse, error)
}

type TicketAPI interface {
	TicketsByUser(ctx context.Context, userID int64) ([]models.Ticket, error)
	InvoicesByUser(ctx context.Context, userID int64) ([]models.Invoice, error)
}

// SessionStore is implemented by repositories.SessionRepository.
type SessionStore interface {
	Create(ctx context.Context, s models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	GetBySelector(ctx context.Context, selector string) (models.Session, error)
	Rotate(ctx context.Context, id, oldSelector, newSelector, newHash string, expiresAt, now time.Time) error
	Revoke(ctx context.Context, id string, now time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
