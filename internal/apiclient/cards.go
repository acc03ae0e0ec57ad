package apiclient

import (
	"context"
	"net/http"

	"skyreserva/internal/domain/models"
)

func (c *Client) CardsByUser(ctx context.Context, userID int64) ([]models.Card, error) {
	var out []models.Card
	err := c.do(ctx, call{method: http.MethodGet, path: idPath("/tarjetas/usuario", userID), out: &out, fallback: "Error al cargar tarjetas"})
	return out, err
}

func (c *Client) AddCard(ctx context.Context, req models.AddCardRequest) (models.Card, error) {
	var out models.Card
	err := c.do(ctx, call{method: http.MethodPost, path: "/tarjetas/", body: req, out: &out, fallback: "Error al agregar tarjeta"})
	return out, err
}

func (c *Client) UpdateCard(ctx context.Context, id int64, req models.UpdateCardRequest) error {
	return c.do(ctx, call{method: http.MethodPut, path: idPath("/tarjetas", id), body: req, fallback: "Error al actualizar tarjeta"})
}

func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: idPath("/tarjetas", id), fallback: "Error al eliminar tarjeta"})
}
