package apiclient

import (
	"context"
	"net/http"

	"skyreserva/internal/domain/models"
)

func (c *Client) TicketsByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	var out []models.Ticket
	err := c.do(ctx, call{method: http.MethodGet, path: idPath("/billetes/usuario", userID), out: &out, fallback: "Error al cargar billetes"})
	return out, err
}

func (c *Client) InvoicesByUser(ctx context.Context, userID int64) ([]models.Invoice, error) {
	var out []models.Invoice
	err := c.do(ctx, call{method: http.MethodGet, path: idPath("/facturas/usuario", userID), out: &out, fallback: "Error al cargar facturas"})
	return out, err
}
