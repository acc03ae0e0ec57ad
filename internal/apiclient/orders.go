package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"skyreserva/internal/domain/models"
)

func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	var out models.CreateOrderResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/ordenes/", body: req, out: &out, fallback: "Error al crear la reserva"})
	return out.Order, err
}

func (c *Client) OrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, call{method: http.MethodGet, path: idPath("/ordenes/usuario", userID), out: &out, fallback: "Error al cargar órdenes"})
	return out, err
}

func (c *Client) Order(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{method: http.MethodGet, path: idPath("/ordenes", id), out: &out, fallback: "Error al cargar la orden"})
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     idPath("/ordenes", id) + "/estado",
		body:     models.UpdateOrderStatusRequest{Status: status},
		fallback: "Error al cancelar orden",
	})
}

func (c *Client) UpdateOrderDelivery(ctx context.Context, id int64, deliveryType string) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     idPath("/ordenes", id) + "/tipo-entrega",
		body:     models.UpdateDeliveryRequest{DeliveryType: deliveryType},
		fallback: "Error al actualizar el tipo de entrega",
	})
}

func (c *Client) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (models.Reservation, error) {
	var out models.CreateReservationResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/reservas/", body: req, out: &out, fallback: "Error al crear la reserva"})
	return out.Reservation, err
}

func (c *Client) AddPassenger(ctx context.Context, req models.AddPassengerRequest) (models.Passenger, error) {
	var out models.Passenger
	err := c.do(ctx, call{method: http.MethodPost, path: "/pasajeros/", body: req, out: &out, fallback: "Error al crear la reserva"})
	return out, err
}

func (c *Client) PassengersByReservation(ctx context.Context, reservationID int64) ([]models.Passenger, error) {
	v := url.Values{}
	v.Set("res_id", strconv.FormatInt(reservationID, 10))
	var out []models.Passenger
	err := c.do(ctx, call{method: http.MethodGet, path: "/pasajeros/", query: v, out: &out, fallback: "Error al cargar pasajeros"})
	return out, err
}
