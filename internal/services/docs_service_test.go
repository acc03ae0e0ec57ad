package services

import (
	"bytes"
	"context"
	"testing"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsServiceGenerate(t *testing.T) {
	api := newFakeAPI()
	api.tickets = []models.Ticket{{
		ID:     4,
		Code:   "BIL-0004",
		Status: "emitido",
		Reservation: models.Reservation{
			Flight: &models.Flight{
				Number:      "SR100",
				Airline:     models.Airline{Name: "SkyReserva"},
				Origin:      models.City{Name: "Quito", AirportCode: "UIO"},
				Destination: models.City{Name: "Guayaquil", AirportCode: "GYE"},
			},
			Category: &models.SeatCategory{Name: "Económica"},
		},
		Passenger: models.Passenger{Name: "Ana Ruiz", Document: "1712345678", Age: 34, Type: "adulto"},
		Invoice:   &models.Invoice{Number: "FAC-1"},
	}}
	api.invoices = []models.Invoice{{Number: "FAC-1", Subtotal: 100, Taxes: 12, Total: 112}}
	svc := DocsService{API: api}
	ctx := context.Background()

	pdf, filename, err := svc.GenerateTicket(ctx, 7, 4)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "BILLETE_BIL-0004_Ana_Ruiz.pdf", filename)

	invoice, invName, err := svc.GenerateInvoice(ctx, 7, "FAC-1")
	require.NoError(t, err)
	assert.NotEmpty(t, invoice)
	assert.Equal(t, "FACTURA_FAC-1.pdf", invName)

	_, _, err = svc.GenerateTicket(ctx, 7, 5)
	assert.True(t, domain.IsNotFound(err))
	_, _, err = svc.GenerateInvoice(ctx, 7, "FAC-9")
	assert.True(t, domain.IsNotFound(err))
}

func TestTicketBadge(t *testing.T) {
	assert.Equal(t, "EMITIDO", TicketBadge("emitido"))
	assert.Equal(t, "USADO", TicketBadge("Usado"))
	assert.Equal(t, "CANCELADO", TicketBadge("cancelado"))
	assert.Equal(t, "?", TicketBadge(""))
}
