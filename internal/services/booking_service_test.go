package services

import (
	"context"
	"testing"
	"time"

	"skyreserva/internal/booking"
	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func bookingFixture() (*fakeAPI, BookingService) {
	api := newFakeAPI()
	api.flights[10] = models.Flight{
		ID:     10,
		Number: "SR100",
		Categories: []models.FlightCategory{
			{ID: 3, CategoryID: 1, BasePrice: 120.5, AvailableSeats: 4, Category: models.SeatCategory{ID: 1, Name: "Económica"}},
		},
	}
	svc := BookingService{API: api, Flights: api, Forms: NewFormRegistry()}
	return api, svc
}

func TestBookingFlowConfirmsAndClosesForm(t *testing.T) {
	api, svc := bookingFixture()
	ctx := context.Background()

	view, err := svc.Open(ctx, 7, 10)
	require.NoError(t, err)
	require.NotEmpty(t, view.ID)

	_, err = svc.SelectCategory(7, view.ID, 3)
	require.NoError(t, err)
	view, err = svc.SetSeats(7, view.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "241.00", view.Subtotal)

	_, err = svc.EditPassenger(7, view.ID, 1, booking.PassengerEdit{Name: strp("Ana Ruiz"), IDDocument: strp("1712345678"), AgeYears: strp("34")})
	require.NoError(t, err)
	view, err = svc.EditPassenger(7, view.ID, 2, booking.PassengerEdit{Name: strp("Leo Ruiz"), IDDocument: strp("1798765432"), AgeYears: strp("1")})
	require.NoError(t, err)
	assert.Equal(t, booking.CategoryInfant, view.Passengers[1].Category)

	rc, err := svc.Confirm(ctx, 7, view.ID)
	require.NoError(t, err)
	assert.NotZero(t, rc.OrderID)
	assert.Len(t, rc.Passengers, 2)
	assert.Equal(t, []string{"order", "reservation", "passenger", "passenger"}, api.calls)

	_, err = svc.State(7, view.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 0, svc.Forms.Len())
}

func TestBookingFormsArePrivate(t *testing.T) {
	_, svc := bookingFixture()
	view, err := svc.Open(context.Background(), 7, 10)
	require.NoError(t, err)

	_, err = svc.State(8, view.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.Confirm(context.Background(), 8, view.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(svc.Close(8, view.ID)))
	assert.NoError(t, svc.Close(7, view.ID))
}

func TestBookingConfirmInvalidKeepsForm(t *testing.T) {
	api, svc := bookingFixture()
	view, err := svc.Open(context.Background(), 7, 10)
	require.NoError(t, err)
	_, err = svc.SelectCategory(7, view.ID, 3)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), 7, view.ID)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, api.calls)

	st, err := svc.State(7, view.ID)
	require.NoError(t, err)
	assert.False(t, st.Submitting)
}

func TestBookingOpenUnknownFlight(t *testing.T) {
	_, svc := bookingFixture()
	_, err := svc.Open(context.Background(), 7, 99)
	assert.True(t, domain.IsUpstream(err))
	assert.Equal(t, 0, svc.Forms.Len())
}

func TestFormRegistryPrune(t *testing.T) {
	_, svc := bookingFixture()
	now := time.Now()
	svc.Forms.now = func() time.Time { return now }

	old, err := svc.Open(context.Background(), 7, 10)
	require.NoError(t, err)
	now = now.Add(time.Hour)
	fresh, err := svc.Open(context.Background(), 7, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Forms.Prune(30*time.Minute))
	_, err = svc.State(7, old.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.State(7, fresh.ID)
	assert.NoError(t, err)
}
