package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"skyreserva/internal/booking"
	"skyreserva/internal/domain"
	"skyreserva/internal/utils"

	"github.com/google/uuid"
)

type openForm struct {
	form    *booking.Form
	owner   int64
	touched time.Time
}

// FormRegistry holds the booking forms travelers currently have open, keyed by
// form id. A form is only visible to the user who opened it.
type FormRegistry struct {
	mu    sync.Mutex
	forms map[string]*openForm
	now   func() time.Time
}

func NewFormRegistry() *FormRegistry {
	return &FormRegistry{forms: map[string]*openForm{}, now: time.Now}
}

func (r *FormRegistry) put(owner int64, f *booking.Form) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[id] = &openForm{form: f, owner: owner, touched: r.now()}
	return id
}

func (r *FormRegistry) get(owner int64, id string) (*booking.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	of, ok := r.forms[id]
	if !ok || of.owner != owner {
		return nil, domain.NotFoundError{Resource: "formulario de reserva"}
	}
	of.touched = r.now()
	return of.form, nil
}

func (r *FormRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
}

// Prune closes forms idle for longer than ttl. Forms with a confirmation in
// flight are kept until it finishes.
func (r *FormRegistry) Prune(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-ttl)
	n := 0
	for id, of := range r.forms {
		if of.touched.Before(cutoff) && !of.form.State().Submitting {
			delete(r.forms, id)
			n++
		}
	}
	return n
}

func (r *FormRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

type FormView struct {
	ID string `json:"id"`
	booking.FormState
}

// BookingService drives open booking forms: seat category, seat count, passenger
// edits and the final confirmation against the flight API.
type BookingService struct {
	API       OrderAPI
	Flights   FlightAPI
	Forms     *FormRegistry
	RequestID string
}

func (s BookingService) Open(ctx context.Context, userID, flightID int64) (FormView, error) {
	if flightID <= 0 {
		return FormView{}, domain.ValidationError{Field: "flight_id", Msg: "id no válido"}
	}
	flight, err := s.Flights.Flight(ctx, flightID)
	if err != nil {
		return FormView{}, err
	}
	f := booking.NewForm(flight)
	id := s.Forms.put(userID, f)
	utils.LogEvent(s.RequestID, "booking", "open", fmt.Sprintf("form=%s user_id=%d vl_id=%d", id, userID, flightID))
	return FormView{ID: id, FormState: f.State()}, nil
}

func (s BookingService) State(userID int64, id string) (FormView, error) {
	f, err := s.Forms.get(userID, id)
	if err != nil {
		return FormView{}, err
	}
	return FormView{ID: id, FormState: f.State()}, nil
}

func (s BookingService) SelectCategory(userID int64, id string, flightCategoryID int64) (FormView, error) {
	return s.edit(userID, id, func(f *booking.Form) error { return f.SelectCategory(flightCategoryID) })
}

func (s BookingService) SetSeats(userID int64, id string, n int) (FormView, error) {
	return s.edit(userID, id, func(f *booking.Form) error { return f.SetSeatCount(n) })
}

func (s BookingService) EditPassenger(userID int64, id string, index int, edit booking.PassengerEdit) (FormView, error) {
	return s.edit(userID, id, func(f *booking.Form) error { return f.EditPassenger(index, edit) })
}

func (s BookingService) edit(userID int64, id string, apply func(*booking.Form) error) (FormView, error) {
	f, err := s.Forms.get(userID, id)
	if err != nil {
		return FormView{}, err
	}
	if err := apply(f); err != nil {
		return FormView{}, err
	}
	return FormView{ID: id, FormState: f.State()}, nil
}

// Confirm submits the form. The chain keeps running if the caller goes away; a
// second confirmation while one is running returns booking.ErrDuplicateSubmission.
func (s BookingService) Confirm(ctx context.Context, userID int64, id string) (booking.Receipt, error) {
	f, err := s.Forms.get(userID, id)
	if err != nil {
		return booking.Receipt{}, err
	}

	rc, err := f.Confirm(context.WithoutCancel(ctx), s.API, userID)
	switch {
	case errors.Is(err, booking.ErrDuplicateSubmission):
		utils.LogEvent(s.RequestID, "booking", "confirm", "duplicate dropped form="+id)
		return booking.Receipt{}, err
	case err != nil:
		var step *booking.StepError
		if errors.As(err, &step) {
			utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf(
				"form=%s failed step=%s orden_id=%d res_id=%d pasajeros=%d err=%v",
				id, step.Step, rc.OrderID, rc.ReservationID, len(rc.Passengers), step.Err))
		}
		return rc, err
	}

	s.Forms.remove(id)
	utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf(
		"form=%s orden_id=%d res_id=%d pasajeros=%d", id, rc.OrderID, rc.ReservationID, len(rc.Passengers)))
	return rc, nil
}

func (s BookingService) Close(userID int64, id string) error {
	f, err := s.Forms.get(userID, id)
	if err != nil {
		return err
	}
	if f.State().Submitting {
		return domain.ConflictError{Resource: "reserva", Msg: booking.ErrDuplicateSubmission.Error()}
	}
	s.Forms.remove(id)
	return nil
}
