package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"skyreserva/internal/domain/models"
)

type FlightQuery struct {
	Origin      int64
	Destination int64
	Date        string
	Order       string
}

func (q FlightQuery) values() url.Values {
	v := url.Values{}
	v.Set("origen", strconv.FormatInt(q.Origin, 10))
	v.Set("destino", strconv.FormatInt(q.Destination, 10))
	v.Set("fecha", q.Date)
	return v
}

func (c *Client) Cities(ctx context.Context) ([]models.City, error) {
	var out []models.City
	err := c.do(ctx, call{method: http.MethodGet, path: "/ciudades/", out: &out, fallback: "Error al cargar ciudades"})
	return out, err
}

func (c *Client) Flight(ctx context.Context, id int64) (models.Flight, error) {
	var out models.Flight
	err := c.do(ctx, call{method: http.MethodGet, path: idPath("/vuelos", id), out: &out, fallback: "Error al cargar el vuelo"})
	return out, err
}

// FlightsByFare lists flights for a route and date ordered by fare ("asc" unless q.Order says otherwise).
func (c *Client) FlightsByFare(ctx context.Context, q FlightQuery) ([]models.Flight, error) {
	v := q.values()
	order := q.Order
	if order == "" {
		order = "asc"
	}
	v.Set("orden", order)
	var out []models.Flight
	err := c.do(ctx, call{method: http.MethodGet, path: "/vuelos/tarifas", query: v, out: &out, fallback: "Error al buscar vuelos"})
	return out, err
}

func (c *Client) FlightsBySchedule(ctx context.Context, q FlightQuery) ([]models.Flight, error) {
	var out []models.Flight
	err := c.do(ctx, call{method: http.MethodGet, path: "/vuelos/horarios", query: q.values(), out: &out, fallback: "Error al buscar vuelos"})
	return out, err
}
