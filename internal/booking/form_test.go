package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu          sync.Mutex
	calls       []string
	passengers  []models.AddPassengerRequest
	reservation models.CreateReservationRequest
	failStep    string
	failAfter   int
	block       chan struct{}
}

func (b *fakeBackend) record(step string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, step)
}

func (b *fakeBackend) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	b.record(StepCreateOrder)
	if b.block != nil {
		<-b.block
	}
	if b.failStep == StepCreateOrder {
		return models.Order{}, domain.UpstreamError{Status: 500, Fallback: "Error al crear la orden"}
	}
	return models.Order{ID: 10, UserID: req.UserID}, nil
}

func (b *fakeBackend) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error) {
	b.record(StepCreateReservation)
	b.reservation = req
	if b.failStep == StepCreateReservation {
		return models.Reservation{}, domain.UpstreamError{Status: 400, Message: "No hay asientos disponibles"}
	}
	return models.Reservation{ID: 20, OrderID: req.OrderID}, nil
}

func (b *fakeBackend) AddPassenger(ctx context.Context, req models.AddPassengerRequest) (models.Passenger, error) {
	b.record(StepAddPassenger)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failStep == StepAddPassenger && len(b.passengers) == b.failAfter {
		return models.Passenger{}, domain.UpstreamError{Status: 400, Message: "Cédula duplicada"}
	}
	b.passengers = append(b.passengers, req)
	return models.Passenger{ID: int64(100 + len(b.passengers)), ReservationID: req.ReservationID, Name: req.Name, Type: req.Type, Age: req.Age}, nil
}

func testFlight() models.Flight {
	return models.Flight{
		ID:     5,
		Number: "SR101",
		Categories: []models.FlightCategory{
			{ID: 51, BasePrice: 120.5, AvailableSeats: 4, Category: models.SeatCategory{ID: 1, Name: "Económica"}},
			{ID: 52, BasePrice: 300, AvailableSeats: 40, Category: models.SeatCategory{ID: 2, Name: "Business"}},
		},
	}
}

func strp(s string) *string { return &s }

func fill(t *testing.T, f *Form, index int, name, doc, age string) {
	t.Helper()
	require.NoError(t, f.EditPassenger(index, PassengerEdit{Name: strp(name), IDDocument: strp(doc), AgeYears: strp(age)}))
}

func TestFormSeatCountPreservesFirstPassenger(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	fill(t, f, 1, "Ana Ruiz", "AB12345", "30")
	first := f.State().Passengers[0].PassengerDraft

	for _, n := range []int{2, 1, 2} {
		require.NoError(t, f.SetSeatCount(n))
		st := f.State()
		require.Len(t, st.Passengers, n)
		assert.Equal(t, first, st.Passengers[0].PassengerDraft)
	}
	assert.Equal(t, "241.00", f.State().Subtotal)
}

func TestFormSeatCountBounds(t *testing.T) {
	f := NewForm(testFlight())
	assert.True(t, domain.IsValidation(f.SetSeatCount(1)), "category must be chosen first")

	require.NoError(t, f.SelectCategory(51))
	assert.Equal(t, 4, f.State().MaxSeats)
	assert.True(t, domain.IsValidation(f.SetSeatCount(5)))
	assert.True(t, domain.IsValidation(f.SetSeatCount(0)))

	require.NoError(t, f.SelectCategory(52))
	assert.Equal(t, MaxSeatsPerBooking, f.State().MaxSeats)
	assert.NoError(t, f.SetSeatCount(9))
	assert.True(t, domain.IsValidation(f.SetSeatCount(10)))

	assert.True(t, domain.IsNotFound(f.SelectCategory(999)))
}

func TestFormSelectCategoryResetsPassengers(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(52))
	require.NoError(t, f.SetSeatCount(3))
	fill(t, f, 2, "Luis Mora", "0912345", "8")

	require.NoError(t, f.SelectCategory(51))
	st := f.State()
	assert.Equal(t, 1, st.Seats)
	require.Len(t, st.Passengers, 1)
	assert.Equal(t, NewDraft(), st.Passengers[0].PassengerDraft)
}

func TestFormAgeEditDerivesCategory(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	require.NoError(t, f.EditPassenger(1, PassengerEdit{AgeYears: strp("1")}))

	p := f.State().Passengers[0]
	assert.Equal(t, CategoryInfant, p.Category)
	assert.Equal(t, "Infante (0-1 años)", p.CategoryLabel)
	assert.True(t, domain.IsNotFound(f.EditPassenger(2, PassengerEdit{})))
}

func TestFormConfirmRunsChainInOrder(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	require.NoError(t, f.SetSeatCount(2))
	fill(t, f, 1, " Ana Ruiz ", "AB12345", "30")
	fill(t, f, 2, "Luis Mora", "0912345", "8")

	api := &fakeBackend{}
	rc, err := f.Confirm(context.Background(), api, 77)
	require.NoError(t, err)

	assert.Equal(t, []string{StepCreateOrder, StepCreateReservation, StepAddPassenger, StepAddPassenger}, api.calls)
	assert.Equal(t, models.CreateReservationRequest{OrderID: 10, FlightID: 5, CategoryID: 1, Seats: 2}, api.reservation)
	require.Len(t, api.passengers, 2)
	assert.Equal(t, models.AddPassengerRequest{ReservationID: 20, Name: "Ana Ruiz", Document: "AB12345", Age: 30, Type: "adulto"}, api.passengers[0])
	assert.Equal(t, "niño", api.passengers[1].Type)
	assert.Equal(t, int64(10), rc.OrderID)
	assert.Equal(t, int64(20), rc.ReservationID)
	assert.Len(t, rc.Passengers, 2)

	// success keeps the guard set: the same form cannot book twice
	_, err = f.Confirm(context.Background(), api, 77)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.True(t, domain.IsConflict(f.SetSeatCount(1)))
}

func TestFormConfirmValidationFailureMakesNoCalls(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	fill(t, f, 1, "Al", "12345", "30")

	api := &fakeBackend{}
	_, err := f.Confirm(context.Background(), api, 77)
	requireRule(t, err, 1, RuleNameTooShort)
	assert.Empty(t, api.calls)
	assert.False(t, f.State().Submitting)

	fill(t, f, 1, "Alba", "12345", "30")
	_, err = f.Confirm(context.Background(), api, 77)
	assert.NoError(t, err)
}

func TestFormConfirmWithoutCategory(t *testing.T) {
	f := NewForm(testFlight())
	_, err := f.Confirm(context.Background(), &fakeBackend{}, 1)
	assert.True(t, domain.IsValidation(err))
	assert.False(t, f.State().Submitting)
}

func TestFormConfirmAbortsOnStepFailureAndReleasesGuard(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	require.NoError(t, f.SetSeatCount(3))
	fill(t, f, 1, "Ana Ruiz", "AB12345", "30")
	fill(t, f, 2, "Luis Mora", "0912345", "8")
	fill(t, f, 3, "Sofía Mora", "0912346", "1")

	api := &fakeBackend{failStep: StepAddPassenger, failAfter: 1}
	rc, err := f.Confirm(context.Background(), api, 77)
	require.Error(t, err)

	var step *StepError
	require.True(t, errors.As(err, &step))
	assert.Equal(t, StepAddPassenger, step.Step)
	assert.Equal(t, 2, step.Passenger)
	assert.Equal(t, "Cédula duplicada", upstreamMessage(err))
	assert.Equal(t, int64(10), rc.OrderID)
	assert.Len(t, rc.Passengers, 1)
	assert.Len(t, api.calls, 4, "third passenger must not be sent")

	assert.False(t, f.State().Submitting)
	assert.NoError(t, f.SetSeatCount(2))
}

func TestFormConfirmReservationFailure(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	fill(t, f, 1, "Ana Ruiz", "AB12345", "30")

	api := &fakeBackend{failStep: StepCreateReservation}
	_, err := f.Confirm(context.Background(), api, 77)
	require.Error(t, err)
	assert.Equal(t, []string{StepCreateOrder, StepCreateReservation}, api.calls)
	assert.Equal(t, "No hay asientos disponibles", upstreamMessage(err))
}

func TestFormConfirmDropsConcurrentDuplicate(t *testing.T) {
	f := NewForm(testFlight())
	require.NoError(t, f.SelectCategory(51))
	fill(t, f, 1, "Ana Ruiz", "AB12345", "30")

	api := &fakeBackend{block: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := f.Confirm(context.Background(), api, 77)
		done <- err
	}()

	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.calls) == 1
	}, time.Second, time.Millisecond)

	_, err := f.Confirm(context.Background(), api, 77)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.True(t, f.State().Submitting)

	close(api.block)
	require.NoError(t, <-done)
	assert.Len(t, api.calls, 3)
}

func upstreamMessage(err error) string {
	var up domain.UpstreamError
	if errors.As(err, &up) {
		return up.Error()
	}
	return ""
}
