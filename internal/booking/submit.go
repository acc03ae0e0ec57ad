package booking

import (
	"context"
	"fmt"
	"strings"

	"skyreserva/internal/domain/models"
)

// Backend is the slice of the remote flight API that a booking submission drives.
type Backend interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error)
	AddPassenger(ctx context.Context, req models.AddPassengerRequest) (models.Passenger, error)
}

const (
	StepCreateOrder       = "crear_orden"
	StepCreateReservation = "crear_reserva"
	StepAddPassenger      = "agregar_pasajero"
)

// Submission is a validated snapshot of a booking form.
type Submission struct {
	UserID     int64
	FlightID   int64
	CategoryID int64
	Seats      int
	Passengers []PassengerDraft
}

// Receipt lists what the remote API created. On failure it still carries the ids
// created before the failing step; nothing is rolled back.
type Receipt struct {
	OrderID       int64              `json:"orden_id"`
	ReservationID int64              `json:"res_id"`
	Passengers    []models.Passenger `json:"pasajeros"`
}

// StepError reports which step of the chain failed. Passenger is the 1-based
// passenger being added when Step is StepAddPassenger.
type StepError struct {
	Step      string
	Passenger int
	Err       error
}

func (e *StepError) Error() string {
	if e.Passenger > 0 {
		return fmt.Sprintf("%s (pasajero %d): %v", e.Step, e.Passenger, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Submit runs create order -> create reservation -> add each passenger, strictly in
// order. The first failing call aborts the remaining steps.
func Submit(ctx context.Context, api Backend, s Submission) (Receipt, error) {
	var rc Receipt

	order, err := api.CreateOrder(ctx, models.CreateOrderRequest{UserID: s.UserID})
	if err != nil {
		return rc, &StepError{Step: StepCreateOrder, Err: err}
	}
	rc.OrderID = order.ID

	res, err := api.CreateReservation(ctx, models.CreateReservationRequest{
		OrderID:    rc.OrderID,
		FlightID:   s.FlightID,
		CategoryID: s.CategoryID,
		Seats:      s.Seats,
	})
	if err != nil {
		return rc, &StepError{Step: StepCreateReservation, Err: err}
	}
	rc.ReservationID = res.ID

	for i, p := range s.Passengers {
		age, _ := parseAge(p.AgeYears)
		created, err := api.AddPassenger(ctx, models.AddPassengerRequest{
			ReservationID: rc.ReservationID,
			Name:          strings.TrimSpace(p.Name),
			Document:      strings.TrimSpace(p.IDDocument),
			Age:           age,
			Type:          string(p.Category),
		})
		if err != nil {
			return rc, &StepError{Step: StepAddPassenger, Passenger: i + 1, Err: err}
		}
		rc.Passengers = append(rc.Passengers, created)
	}

	return rc, nil
}
