package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/utils"
)

// MaxSeatsPerBooking caps the seat selector regardless of availability.
const MaxSeatsPerBooking = 9

// ErrDuplicateSubmission is returned by Confirm when another confirmation of the
// same form is already running. Callers drop the attempt without side effects.
var ErrDuplicateSubmission = errors.New("ya se está procesando una reserva")

// Form is the state of one open booking dialog: chosen seat category, seat count and
// one passenger draft per seat. It owns the Guard for its submissions.
type Form struct {
	mu         sync.Mutex
	guard      Guard
	flight     models.Flight
	category   *models.FlightCategory
	seats      int
	passengers []PassengerDraft
}

// PassengerEdit carries the fields changed by one edit; nil fields are left as they are.
// There is no category field: the category follows the age.
type PassengerEdit struct {
	Name       *string `json:"nombre"`
	IDDocument *string `json:"cedula"`
	AgeYears   *string `json:"edad"`
}

type PassengerView struct {
	PassengerDraft
	CategoryLabel string `json:"tipo_label"`
}

type FormState struct {
	Flight     models.Flight          `json:"vuelo"`
	Category   *models.FlightCategory `json:"categoria,omitempty"`
	Seats      int                    `json:"cantidad_asientos"`
	MaxSeats   int                    `json:"max_asientos"`
	Subtotal   string                 `json:"subtotal"`
	Passengers []PassengerView        `json:"pasajeros"`
	Submitting bool                   `json:"procesando"`
}

func NewForm(flight models.Flight) *Form {
	return &Form{
		flight:     flight,
		seats:      1,
		passengers: []PassengerDraft{NewDraft()},
	}
}

func (f *Form) Flight() models.Flight {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flight
}

// SelectCategory picks a seat category offered on the flight and starts over with
// one seat and one empty passenger.
func (f *Form) SelectCategory(flightCategoryID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}

	cat, ok := f.flight.FindCategory(flightCategoryID)
	if !ok {
		return domain.NotFoundError{Resource: "categoría de asiento"}
	}
	f.category = &cat
	f.seats = 1
	f.passengers = []PassengerDraft{NewDraft()}
	return nil
}

// SetSeatCount resizes the passenger list to n, keeping rows already filled in.
func (f *Form) SetSeatCount(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	if f.category == nil {
		return domain.ValidationError{Field: "categoria", Msg: "Selecciona una categoría de asiento"}
	}

	limit := f.maxSeats()
	if n < 1 || n > limit {
		return domain.ValidationError{
			Field: "cantidad",
			Msg:   fmt.Sprintf("La cantidad de asientos debe estar entre 1 y %d", limit),
		}
	}
	f.seats = n
	f.passengers = Resize(f.passengers, n)
	return nil
}

// EditPassenger applies an edit to the 1-based passenger index.
func (f *Form) EditPassenger(index int, edit PassengerEdit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	if index < 1 || index > len(f.passengers) {
		return domain.NotFoundError{Resource: fmt.Sprintf("pasajero %d", index)}
	}

	d := &f.passengers[index-1]
	if edit.Name != nil {
		d.Name = *edit.Name
	}
	if edit.IDDocument != nil {
		d.IDDocument = *edit.IDDocument
	}
	if edit.AgeYears != nil {
		d.SetAge(*edit.AgeYears)
	}
	return nil
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := FormState{
		Flight:     f.flight,
		Seats:      f.seats,
		MaxSeats:   f.maxSeats(),
		Subtotal:   utils.FormatMoney(0),
		Passengers: make([]PassengerView, len(f.passengers)),
		Submitting: f.guard.InFlight(),
	}
	if f.category != nil {
		cat := *f.category
		st.Category = &cat
		st.Subtotal = utils.FormatMoney(cat.BasePrice.Times(f.seats).Float())
	}
	for i, p := range f.passengers {
		st.Passengers[i] = PassengerView{PassengerDraft: p, CategoryLabel: p.Category.Label()}
	}
	return st
}

// Confirm validates the whole passenger list and, if it passes, runs the booking
// chain against api. The guard is taken before the snapshot so that edits racing a
// confirmation are rejected instead of silently left out. On failure the guard is
// released and the form stays usable; on success it stays set.
func (f *Form) Confirm(ctx context.Context, api Backend, userID int64) (Receipt, error) {
	if !f.guard.TryBegin() {
		return Receipt{}, ErrDuplicateSubmission
	}

	sub, err := f.snapshot(userID)
	if err == nil {
		err = ValidatePassengers(sub.Passengers)
	}
	if err != nil {
		f.guard.End()
		return Receipt{}, err
	}

	rc, err := Submit(ctx, api, sub)
	if err != nil {
		f.guard.End()
		return rc, err
	}
	return rc, nil
}

func (f *Form) snapshot(userID int64) (Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.category == nil {
		return Submission{}, domain.ValidationError{Field: "categoria", Msg: "Selecciona una categoría de asiento"}
	}
	passengers := make([]PassengerDraft, len(f.passengers))
	copy(passengers, f.passengers)
	return Submission{
		UserID:     userID,
		FlightID:   f.flight.ID,
		CategoryID: f.category.SeatCategoryID(),
		Seats:      f.seats,
		Passengers: passengers,
	}, nil
}

func (f *Form) editable() error {
	if f.guard.InFlight() {
		return domain.ConflictError{Resource: "reserva", Msg: ErrDuplicateSubmission.Error()}
	}
	return nil
}

func (f *Form) maxSeats() int {
	if f.category == nil {
		return 0
	}
	return min(f.category.AvailableSeats, MaxSeatsPerBooking)
}
